package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"faithtrack/internal/modules/feedback/dto"
	apperrors "faithtrack/internal/platform/errors"
)

// Client talks to a running faithtrack server and returns the same dto
// values the local usecase does.
type Client struct {
	conn *grpc.ClientConn
	api  FeedbackClient
}

func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn, api: NewFeedbackClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Analyze(ctx context.Context, resolutionID string) (dto.ReportOutput, error) {
	resp, err := c.api.Analyze(ctx, &ResolutionRequest{ResolutionID: resolutionID})
	if err != nil {
		return dto.ReportOutput{}, fromStatus(err)
	}
	out := dto.ReportOutput{
		ResolutionID:    resp.ResolutionID,
		Title:           resp.Title,
		Category:        resp.Category,
		Unit:            resp.Unit,
		Status:          resp.Status,
		Message:         resp.Message,
		PercentComplete: resp.PercentComplete,
	}
	if resp.Pace != nil {
		out.Pace = &dto.PaceOutput{
			DaysLeft:        resp.Pace.DaysLeft,
			DaysElapsed:     resp.Pace.DaysElapsed,
			TotalDays:       resp.Pace.TotalDays,
			CurrentPace:     resp.Pace.CurrentPace,
			RequiredPace:    resp.Pace.RequiredPace,
			ProjectedFinish: resp.Pace.ProjectedFinish,
			Reachable:       resp.Pace.Reachable,
		}
	}
	return out, nil
}

func (c *Client) Suggest(ctx context.Context, resolutionID string) (dto.SuggestionsOutput, error) {
	resp, err := c.api.Suggest(ctx, &ResolutionRequest{ResolutionID: resolutionID})
	if err != nil {
		return dto.SuggestionsOutput{}, fromStatus(err)
	}
	return dto.SuggestionsOutput{ResolutionID: resp.ResolutionID, Status: resp.Status, Suggestions: resp.Suggestions}, nil
}

func (c *Client) Verse(ctx context.Context, category string) (dto.VerseOutput, error) {
	resp, err := c.api.Verse(ctx, &VerseRequest{Category: category})
	if err != nil {
		return dto.VerseOutput{}, fromStatus(err)
	}
	return dto.VerseOutput{Category: resp.Category, Text: resp.Text, Reference: resp.Reference}, nil
}

func (c *Client) Dashboard(ctx context.Context, userRef string) (dto.DashboardOutput, error) {
	resp, err := c.api.Dashboard(ctx, &DashboardRequest{UserID: userRef})
	if err != nil {
		return dto.DashboardOutput{}, fromStatus(err)
	}
	out := dto.DashboardOutput{
		UserID:      resp.UserID,
		Total:       resp.Total,
		AvgProgress: resp.AvgProgress,
		Completed:   resp.Completed,
		OnPace:      resp.OnPace,
	}
	for _, cat := range resp.Categories {
		out.Categories = append(out.Categories, dto.CategorySummaryOutput{Category: cat.Category, Count: cat.Count, AvgProgress: cat.AvgProgress})
	}
	for _, item := range resp.Resolutions {
		out.Resolutions = append(out.Resolutions, dto.DashboardItemOutput{
			ResolutionID: item.ResolutionID,
			Title:        item.Title,
			Category:     item.Category,
			Percent:      item.Percent,
			Status:       item.Status,
		})
	}
	return out, nil
}

// fromStatus turns well-known status codes back into application errors.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), apperrors.ErrNotFound)
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", st.Message(), apperrors.ErrInvalidInput)
	default:
		return err
	}
}
