package face

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	domain "github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/schedule"
)

// fakeService implements the Service interface for unit testing the transport.
type fakeService struct {
	// face computes frames.
	face *domain.Face
	// now is returned for a zero instant.
	now time.Time
	// requested records the last instant passed to Frame.
	requested time.Time
}

// Frame records the instant and computes the frame.
func (f *fakeService) Frame(_ context.Context, at time.Time) domain.Frame {
	f.requested = at
	if at.IsZero() {
		at = f.now
	}

	return f.face.Compute(at)
}

// Schedule returns the face boundaries.
func (f *fakeService) Schedule(context.Context) schedule.Boundaries {
	return f.face.Boundaries()
}

// newFake returns a fake service in UTC pinned at 09:00.
func newFake() *fakeService {
	return &fakeService{
		face: domain.New(domain.WithLocation(time.UTC)),
		now:  time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC),
	}
}

// TestServer_GetFrame_UnsetMeansNow passes a zero instant to the service.
func TestServer_GetFrame_UnsetMeansNow(t *testing.T) {
	t.Parallel()

	svc := newFake()
	s := NewServer(svc)

	got, err := s.GetFrame(context.Background(), new(timestamppb.Timestamp))
	require.NoError(t, err)
	require.True(t, svc.requested.IsZero())
	require.InDelta(t, 32, got.GetFields()["minutes_left"].GetNumberValue(), 0)
	require.Equal(t, "09:00 AM", got.GetFields()["clock_text"].GetStringValue())
	require.NotContains(t, got.GetFields(), "cue_ms")
}

// TestServer_GetFrame_At computes the frame for the requested instant.
func TestServer_GetFrame_At(t *testing.T) {
	t.Parallel()

	s := NewServer(newFake())

	at := timestamppb.New(time.Date(2026, time.October, 16, 9, 17, 0, 0, time.UTC))

	got, err := s.GetFrame(context.Background(), at)
	require.NoError(t, err)
	require.InDelta(t, 15, got.GetFields()["minutes_left"].GetNumberValue(), 0)

	cue := got.GetFields()["cue_ms"].GetListValue().GetValues()
	require.Len(t, cue, 3)
	require.InDelta(t, 500, cue[0].GetNumberValue(), 0)
	require.InDelta(t, 200, cue[2].GetNumberValue(), 0)
}

// TestServer_GetFrame_Validation rejects timestamps outside the valid range.
func TestServer_GetFrame_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(newFake())

	_, err := s.GetFrame(context.Background(), &timestamppb.Timestamp{Seconds: 1 << 62})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.GetFrame(context.Background(), &timestamppb.Timestamp{Seconds: 1, Nanos: -1})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_GetSchedule lists boundaries and thresholds.
func TestServer_GetSchedule(t *testing.T) {
	t.Parallel()

	s := NewServer(newFake())

	got, err := s.GetSchedule(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)

	boundaries := got.GetFields()["boundaries"].GetListValue().GetValues()
	require.Len(t, boundaries, len(schedule.DefaultBoundaries))
	require.InDelta(t, 572, boundaries[0].GetNumberValue(), 0)

	times := got.GetFields()["boundary_times"].GetListValue().GetValues()
	require.Equal(t, "09:32", times[0].GetStringValue())
	require.Equal(t, "15:05", times[len(times)-1].GetStringValue())

	require.Len(t, got.GetFields()["cue_thresholds"].GetListValue().GetValues(), 6)
}

// TestServiceDesc_Handlers drives the descriptor handlers with and without an interceptor.
func TestServiceDesc_Handlers(t *testing.T) {
	t.Parallel()

	s := NewServer(newFake())
	at := timestamppb.New(time.Date(2026, time.October, 16, 9, 32, 0, 0, time.UTC))

	dec := func(msg proto.Message) func(any) error {
		return func(out any) error {
			proto.Merge(out.(proto.Message), msg) //nolint:forcetypeassert // Test decoder.

			return nil
		}
	}

	require.Equal(t, ServiceName, ServiceDesc.ServiceName)
	require.Len(t, ServiceDesc.Methods, 2)

	out, err := ServiceDesc.Methods[0].Handler(s, context.Background(), dec(at), nil)
	require.NoError(t, err)
	require.InDelta(t, 0, out.(*structpb.Struct).GetFields()["minutes_left"].GetNumberValue(), 0)

	var seen string

	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod

		return h(ctx, req)
	}

	_, err = ServiceDesc.Methods[1].Handler(s, context.Background(), dec(new(emptypb.Empty)), interceptor)
	require.NoError(t, err)
	require.Equal(t, GetScheduleMethod, seen)
}
