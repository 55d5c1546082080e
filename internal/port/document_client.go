package port

import (
	"context"
	"encoding/json"

	"narrabridge/internal/domain"
)

// DocumentClient sends built payloads to the document service.
// Implementations issue exactly one request per call and never retry.
type DocumentClient interface {
	Send(ctx context.Context, baseURL string, payload *domain.Payload) (json.RawMessage, error)
}
