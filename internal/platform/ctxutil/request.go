package ctxutil

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData is the authenticated identity attached by the auth gate.
type RequestData struct {
	UserID      uuid.UUID
	Subject     string
	TokenString string
	TokenID     string
	ExpiresAt   time.Time
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
