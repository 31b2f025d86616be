// Package face implements the gRPC transport for the watch-face query service.
//
// The service is described by a hand-written grpc.ServiceDesc whose messages
// are protobuf well-known types, so no generated code is required:
//
//	service WatchFaceService {
//	  rpc GetFrame(google.protobuf.Timestamp) returns (google.protobuf.Struct);
//	  rpc GetSchedule(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
package face
