package rpc

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"faithtrack/internal/modules/feedback/dto"
	feedbackin "faithtrack/internal/modules/feedback/port/in"
	apperrors "faithtrack/internal/platform/errors"
)

// Server exposes the feedback usecase over gRPC.
type Server struct {
	usecase feedbackin.Usecase
}

func NewServer(usecase feedbackin.Usecase) *Server {
	return &Server{usecase: usecase}
}

// NewGRPCServer returns a grpc.Server with the feedback service registered
// and every call logged.
func NewGRPCServer(usecase feedbackin.Usecase, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(loggingInterceptor(logger.Named("rpc"))))
	srv := grpc.NewServer(opts...)
	RegisterFeedbackServer(srv, NewServer(usecase))
	return srv
}

// Serve blocks until lis fails or ctx is cancelled, then drains in-flight
// calls.
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			srv.GracefulStop()
		case <-done:
		}
	}()
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Server) Analyze(ctx context.Context, in *ResolutionRequest) (*ReportResponse, error) {
	out, err := s.usecase.Analyze(ctx, in.ResolutionID)
	if err != nil {
		return nil, err
	}
	return fromReport(out), nil
}

func (s *Server) Suggest(ctx context.Context, in *ResolutionRequest) (*SuggestResponse, error) {
	out, err := s.usecase.Suggest(ctx, in.ResolutionID)
	if err != nil {
		return nil, err
	}
	return &SuggestResponse{ResolutionID: out.ResolutionID, Status: out.Status, Suggestions: out.Suggestions}, nil
}

func (s *Server) Verse(ctx context.Context, in *VerseRequest) (*VerseResponse, error) {
	out, err := s.usecase.Verse(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	return &VerseResponse{Category: out.Category, Text: out.Text, Reference: out.Reference}, nil
}

func (s *Server) Dashboard(ctx context.Context, in *DashboardRequest) (*DashboardResponse, error) {
	out, err := s.usecase.Dashboard(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	resp := &DashboardResponse{
		UserID:      out.UserID,
		Total:       out.Total,
		AvgProgress: out.AvgProgress,
		Completed:   out.Completed,
		OnPace:      out.OnPace,
	}
	for _, c := range out.Categories {
		resp.Categories = append(resp.Categories, CategorySummary{Category: c.Category, Count: c.Count, AvgProgress: c.AvgProgress})
	}
	for _, item := range out.Resolutions {
		resp.Resolutions = append(resp.Resolutions, DashboardItem{
			ResolutionID: item.ResolutionID,
			Title:        item.Title,
			Category:     item.Category,
			Percent:      item.Percent,
			Status:       item.Status,
		})
	}
	return resp, nil
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		err = toStatus(err)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if code == codes.Internal {
			logger.Error("rpc failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("rpc", fields...)
		}
		return resp, err
	}
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNoUser):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func fromReport(out dto.ReportOutput) *ReportResponse {
	resp := &ReportResponse{
		ResolutionID:    out.ResolutionID,
		Title:           out.Title,
		Category:        out.Category,
		Unit:            out.Unit,
		Status:          out.Status,
		Message:         out.Message,
		PercentComplete: out.PercentComplete,
	}
	if out.Pace != nil {
		resp.Pace = &Pace{
			DaysLeft:        out.Pace.DaysLeft,
			DaysElapsed:     out.Pace.DaysElapsed,
			TotalDays:       out.Pace.TotalDays,
			CurrentPace:     out.Pace.CurrentPace,
			RequiredPace:    out.Pace.RequiredPace,
			ProjectedFinish: out.Pace.ProjectedFinish,
			Reachable:       out.Pace.Reachable,
		}
	}
	return resp
}
