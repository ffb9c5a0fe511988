package agents

import (
	"context"
)

// Responder answers a single user query
type Responder interface {
	Name() string
	Respond(ctx context.Context, query string) (string, error)
}
