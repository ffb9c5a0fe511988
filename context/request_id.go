// Package context provides context utilities for request tracking
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey int

const (
	// RequestIDKey is the context key for request IDs
	RequestIDKey contextKey = iota
	// ThreadIDKey is the context key for conversation thread IDs
	ThreadIDKey
)

// NewRequestID generates a new unique request ID
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID adds a request ID to the context
func WithRequestID(parent stdctx.Context, requestID string) stdctx.Context {
	return stdctx.WithValue(parent, RequestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context
func RequestIDFromContext(ctx stdctx.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// NewThreadID generates a new conversation thread ID
func NewThreadID() string {
	return "thread_" + uuid.New().String()
}

// WithThreadID adds a conversation thread ID to the context
func WithThreadID(parent stdctx.Context, threadID string) stdctx.Context {
	return stdctx.WithValue(parent, ThreadIDKey, threadID)
}

// ThreadIDFromContext extracts the conversation thread ID from the context
func ThreadIDFromContext(ctx stdctx.Context) string {
	if threadID, ok := ctx.Value(ThreadIDKey).(string); ok {
		return threadID
	}
	return ""
}
