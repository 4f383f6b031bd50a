package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	serviceName     = "faithtrack.feedback.v1.Feedback"
	jsonCodecName   = "json"
	methodAnalyze   = "/" + serviceName + "/Analyze"
	methodSuggest   = "/" + serviceName + "/Suggest"
	methodVerse     = "/" + serviceName + "/Verse"
	methodDashboard = "/" + serviceName + "/Dashboard"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type ResolutionRequest struct {
	ResolutionID string `json:"resolution_id"`
}

type VerseRequest struct {
	Category string `json:"category"`
}

type DashboardRequest struct {
	UserID string `json:"user_id"`
}

type Pace struct {
	DaysLeft        int     `json:"days_left"`
	DaysElapsed     int     `json:"days_elapsed"`
	TotalDays       int     `json:"total_days"`
	CurrentPace     float64 `json:"current_pace"`
	RequiredPace    float64 `json:"required_pace"`
	ProjectedFinish string  `json:"projected_finish"`
	Reachable       bool    `json:"reachable"`
}

type ReportResponse struct {
	ResolutionID    string `json:"resolution_id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Unit            string `json:"unit"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	PercentComplete int    `json:"percent_complete"`
	Pace            *Pace  `json:"pace,omitempty"`
}

type SuggestResponse struct {
	ResolutionID string   `json:"resolution_id"`
	Status       string   `json:"status"`
	Suggestions  []string `json:"suggestions"`
}

type VerseResponse struct {
	Category  string `json:"category"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

type CategorySummary struct {
	Category    string `json:"category"`
	Count       int    `json:"count"`
	AvgProgress int    `json:"avg_progress"`
}

type DashboardItem struct {
	ResolutionID string `json:"resolution_id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Percent      int    `json:"percent"`
	Status       string `json:"status"`
}

type DashboardResponse struct {
	UserID      string            `json:"user_id"`
	Total       int               `json:"total"`
	AvgProgress int               `json:"avg_progress"`
	Completed   int               `json:"completed"`
	OnPace      int               `json:"on_pace"`
	Categories  []CategorySummary `json:"categories"`
	Resolutions []DashboardItem   `json:"resolutions"`
}

type FeedbackServer interface {
	Analyze(ctx context.Context, in *ResolutionRequest) (*ReportResponse, error)
	Suggest(ctx context.Context, in *ResolutionRequest) (*SuggestResponse, error)
	Verse(ctx context.Context, in *VerseRequest) (*VerseResponse, error)
	Dashboard(ctx context.Context, in *DashboardRequest) (*DashboardResponse, error)
}

type FeedbackClient interface {
	Analyze(ctx context.Context, in *ResolutionRequest) (*ReportResponse, error)
	Suggest(ctx context.Context, in *ResolutionRequest) (*SuggestResponse, error)
	Verse(ctx context.Context, in *VerseRequest) (*VerseResponse, error)
	Dashboard(ctx context.Context, in *DashboardRequest) (*DashboardResponse, error)
}

type feedbackClient struct {
	conn grpc.ClientConnInterface
}

func NewFeedbackClient(conn grpc.ClientConnInterface) FeedbackClient {
	return &feedbackClient{conn: conn}
}

func (c *feedbackClient) Analyze(ctx context.Context, in *ResolutionRequest) (*ReportResponse, error) {
	out := &ReportResponse{}
	if err := c.conn.Invoke(ctx, methodAnalyze, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedbackClient) Suggest(ctx context.Context, in *ResolutionRequest) (*SuggestResponse, error) {
	out := &SuggestResponse{}
	if err := c.conn.Invoke(ctx, methodSuggest, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedbackClient) Verse(ctx context.Context, in *VerseRequest) (*VerseResponse, error) {
	out := &VerseResponse{}
	if err := c.conn.Invoke(ctx, methodVerse, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedbackClient) Dashboard(ctx context.Context, in *DashboardRequest) (*DashboardResponse, error) {
	out := &DashboardResponse{}
	if err := c.conn.Invoke(ctx, methodDashboard, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unaryMethod builds a MethodDesc that decodes Req and forwards it through
// the server's interceptor chain to call.
func unaryMethod[Req any, Resp any](name string, call func(ctx context.Context, in *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				typed, ok := req.(*Req)
				if !ok {
					return nil, fmt.Errorf("invalid request type %T", req)
				}
				return call(ctx, typed)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func RegisterFeedbackServer(server grpc.ServiceRegistrar, impl FeedbackServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*FeedbackServer)(nil),
		Methods: []grpc.MethodDesc{
			unaryMethod("Analyze", impl.Analyze),
			unaryMethod("Suggest", impl.Suggest),
			unaryMethod("Verse", impl.Verse),
			unaryMethod("Dashboard", impl.Dashboard),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "faithtrack/feedback/v1/feedback.proto",
	}, impl)
}
