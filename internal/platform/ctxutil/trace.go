package ctxutil

import "context"

type traceDataKey struct{}

// RouteResource is one entity addressed by the matched route, e.g.
// {"question_id", "<uuid>"}.
type RouteResource struct {
	Key string
	ID  string
}

type TraceData struct {
	TraceID   string
	RequestID string
	Route     string
	Resources []RouteResource
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}
