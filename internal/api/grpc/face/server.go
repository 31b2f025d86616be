package face

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/oshokin/pinepoint/internal/domain/cue"
	domain "github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/schedule"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	// Frame computes the frame for at; a zero time means now.
	Frame(ctx context.Context, at time.Time) domain.Frame
	Schedule(ctx context.Context) schedule.Boundaries
}

// Server implements WatchFaceServer.
type Server struct {
	// service provides the face computation.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetFrame returns the frame for the requested instant. An unset timestamp means now.
func (s *Server) GetFrame(ctx context.Context, at *timestamppb.Timestamp) (*structpb.Struct, error) {
	var instant time.Time

	if at != nil && (at.GetSeconds() != 0 || at.GetNanos() != 0) {
		if err := at.CheckValid(); err != nil {
			return nil, status.Error(codes.InvalidArgument, "invalid timestamp")
		}

		instant = at.AsTime()
	}

	result, err := FrameToStruct(s.service.Frame(ctx, instant))
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode frame")
	}

	return result, nil
}

// GetSchedule returns the boundary table and the cue thresholds.
func (s *Server) GetSchedule(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	boundaries := s.service.Schedule(ctx)

	minutes := make([]any, 0, len(boundaries))
	clocks := make([]any, 0, len(boundaries))

	for i, c := range boundaries.Clocks() {
		minutes = append(minutes, boundaries[i])
		clocks = append(clocks, c.String())
	}

	thresholds := make([]any, 0, len(cue.Thresholds()))
	for _, threshold := range cue.Thresholds() {
		thresholds = append(thresholds, threshold)
	}

	result, err := structpb.NewStruct(map[string]any{
		"boundaries":     minutes,
		"boundary_times": clocks,
		"cue_thresholds": thresholds,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode schedule")
	}

	return result, nil
}

// FrameToStruct converts a frame into its protobuf Struct form.
func FrameToStruct(f domain.Frame) (*structpb.Struct, error) {
	fields := map[string]any{
		"time":          f.Time.Format(time.RFC3339),
		"clock":         f.Clock.String(),
		"clock_text":    f.ClockText,
		"minutes_left":  f.MinutesLeft,
		"next_boundary": f.NextBoundary,
		"cells_to_fill": f.CellsToFill,
	}

	if f.Cue != nil {
		segments := make([]any, 0, len(f.Cue.Segments))
		for _, ms := range f.Cue.Milliseconds() {
			segments = append(segments, ms)
		}

		fields["cue_ms"] = segments
	}

	return structpb.NewStruct(fields)
}
