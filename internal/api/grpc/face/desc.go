package face

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "pinepoint.v1.WatchFaceService"
	// GetFrameMethod is the full method name of GetFrame.
	GetFrameMethod = "/" + ServiceName + "/GetFrame"
	// GetScheduleMethod is the full method name of GetSchedule.
	GetScheduleMethod = "/" + ServiceName + "/GetSchedule"
)

// WatchFaceServer is the server API of the watch-face service.
type WatchFaceServer interface {
	GetFrame(ctx context.Context, at *timestamppb.Timestamp) (*structpb.Struct, error)
	GetSchedule(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes WatchFaceService for grpc.Server registration.
//
//nolint:gochecknoglobals // gRPC registration requires a descriptor value.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WatchFaceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetFrame",
			Handler:    getFrameHandler,
		},
		{
			MethodName: "GetSchedule",
			Handler:    getScheduleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pinepoint/v1/face.proto",
}

// RegisterWatchFaceServer registers srv on the provided registrar.
func RegisterWatchFaceServer(registrar grpc.ServiceRegistrar, srv WatchFaceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

//nolint:forcetypeassert // grpc guarantees srv implements HandlerType.
func getFrameHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(timestamppb.Timestamp)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(WatchFaceServer).GetFrame(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetFrameMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WatchFaceServer).GetFrame(ctx, req.(*timestamppb.Timestamp))
	}

	return interceptor(ctx, in, info, handler)
}

//nolint:forcetypeassert // grpc guarantees srv implements HandlerType.
func getScheduleHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(WatchFaceServer).GetSchedule(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetScheduleMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WatchFaceServer).GetSchedule(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}
