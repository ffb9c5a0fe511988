// Package apiv1 defines the wire types and connect handler wiring for
// the mathdesk.v1.AgentService. Messages are plain structs carried by
// a JSON codec instead of generated protobuf types.
package apiv1

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

// Procedure paths for the AgentService
const (
	AgentServiceName = "mathdesk.v1.AgentService"

	AgentServiceSendMessageProcedure = "/mathdesk.v1.AgentService/SendMessage"
	AgentServiceListAgentsProcedure  = "/mathdesk.v1.AgentService/ListAgents"
)

// SendMessageRequest asks an agent to answer one message
type SendMessageRequest struct {
	Message   string `json:"message"`
	AgentType string `json:"agent_type"`
	ThreadID  string `json:"thread_id,omitempty"`
}

// SendMessageResponse carries the agent's answer
type SendMessageResponse struct {
	ThreadID string `json:"thread_id,omitempty"`
	AgentID  string `json:"agent_id"`
	Response string `json:"response"`
}

// ListAgentsRequest lists the deployed agents
type ListAgentsRequest struct{}

// AgentInfo describes one deployed agent
type AgentInfo struct {
	Key         string    `json:"key"`
	AssistantID string    `json:"assistant_id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	DeployedAt  time.Time `json:"deployed_at"`
}

// ListAgentsResponse carries the deployment records
type ListAgentsResponse struct {
	Agents []AgentInfo `json:"agents"`
}

// AgentService is the service contract the server implements
type AgentService interface {
	SendMessage(ctx context.Context, req *connect.Request[SendMessageRequest]) (*connect.Response[SendMessageResponse], error)
	ListAgents(ctx context.Context, req *connect.Request[ListAgentsRequest]) (*connect.Response[ListAgentsResponse], error)
}

// NewAgentServiceHandler builds the http handler for an AgentService
// implementation. The returned path is the service mount prefix.
func NewAgentServiceHandler(svc AgentService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect.WithCodec(jsonCodec{}))

	mux := http.NewServeMux()
	mux.Handle(AgentServiceSendMessageProcedure, connect.NewUnaryHandler(
		AgentServiceSendMessageProcedure,
		svc.SendMessage,
		opts...,
	))
	mux.Handle(AgentServiceListAgentsProcedure, connect.NewUnaryHandler(
		AgentServiceListAgentsProcedure,
		svc.ListAgents,
		opts...,
	))
	return "/" + AgentServiceName + "/", mux
}

// NewClientOptions returns the options a connect client needs to talk
// to the service with the JSON wire types.
func NewClientOptions() []connect.ClientOption {
	return []connect.ClientOption{connect.WithCodec(jsonCodec{})}
}
