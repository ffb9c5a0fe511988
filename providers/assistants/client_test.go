package assistants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAssistantsServer creates a test server that mocks the hosted
// assistants endpoints. runPolls counts GetRun calls so tests can
// simulate in_progress -> completed transitions.
func mockAssistantsServer(runPolls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Header.Get("api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "missing api key"})
			return
		}
		if r.URL.Query().Get("api-version") == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "missing api-version"})
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/openai")
		switch {
		case path == "/assistants" && r.Method == http.MethodPost:
			var req AssistantRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(Assistant{
				ID:           "asst_123",
				Name:         req.Name,
				Model:        req.Model,
				Instructions: req.Instructions,
			})
		case path == "/assistants" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(AssistantList{
				Data: []Assistant{
					{ID: "asst_123", Name: "calculator"},
					{ID: "asst_456", Name: "chat"},
				},
			})
		case path == "/assistants/asst_123" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(Assistant{ID: "asst_123", Name: "calculator"})
		case path == "/assistants/asst_123" && r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(DeletedResponse{ID: "asst_123", Deleted: true})
		case path == "/threads":
			json.NewEncoder(w).Encode(Thread{ID: "thread_abc"})
		case path == "/threads/thread_abc/messages" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(Message{ID: "msg_1", Role: "user"})
		case path == "/threads/thread_abc/messages" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(MessageList{
				Data: []Message{
					{
						ID:   "msg_2",
						Role: "assistant",
						Content: []MessageContent{
							{Type: "text", Text: MessageText{Value: "Result: 4"}},
						},
					},
					{ID: "msg_1", Role: "user"},
				},
			})
		case path == "/threads/thread_abc/runs" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_abc", AssistantID: "asst_123", Status: RunStatusQueued})
		case path == "/threads/thread_abc/runs/run_1":
			status := RunStatusCompleted
			if runPolls != nil && atomic.AddInt32(runPolls, 1) < 3 {
				status = RunStatusInProgress
			}
			json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_abc", Status: status})
		case path == "/threads/thread_abc/runs/run_failed":
			json.NewEncoder(w).Encode(Run{
				ID: "run_failed", ThreadID: "thread_abc", Status: RunStatusFailed,
				LastError: &struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				}{Code: "server_error", Message: "boom"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		}
	}))
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(server.URL, "test-key", "2024-05-01-preview", 10*time.Millisecond)
}

func TestAssistantLifecycle(t *testing.T) {
	server := mockAssistantsServer(nil)
	defer server.Close()
	client := newTestClient(server)
	ctx := context.Background()

	assistant, err := client.CreateAssistant(ctx, AssistantRequest{
		Name:         "calculator",
		Model:        "gpt-35-turbo",
		Instructions: "You are a calculator.",
	})
	require.NoError(t, err)
	assert.Equal(t, "asst_123", assistant.ID)
	assert.Equal(t, "calculator", assistant.Name)

	fetched, err := client.GetAssistant(ctx, "asst_123")
	require.NoError(t, err)
	assert.Equal(t, assistant.ID, fetched.ID)

	all, err := client.ListAssistants(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = client.DeleteAssistant(ctx, "asst_123")
	assert.NoError(t, err)
}

func TestThreadAndMessages(t *testing.T) {
	server := mockAssistantsServer(nil)
	defer server.Close()
	client := newTestClient(server)
	ctx := context.Background()

	thread, err := client.CreateThread(ctx)
	require.NoError(t, err)
	assert.Equal(t, "thread_abc", thread.ID)

	_, err = client.CreateMessage(ctx, thread.ID, "what is 2 + 2")
	require.NoError(t, err)

	messages, err := client.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	reply, ok := AssistantReply(messages)
	assert.True(t, ok)
	assert.Equal(t, "Result: 4", reply)
}

func TestWaitForRunPollsUntilCompleted(t *testing.T) {
	var polls int32
	server := mockAssistantsServer(&polls)
	defer server.Close()
	client := newTestClient(server)
	ctx := context.Background()

	run, err := client.CreateRun(ctx, "thread_abc", "asst_123")
	require.NoError(t, err)
	assert.Equal(t, RunStatusQueued, run.Status)

	done, err := client.WaitForRun(ctx, "thread_abc", run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusCompleted, done.Status)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(3))
}

func TestWaitForRunFailure(t *testing.T) {
	server := mockAssistantsServer(nil)
	defer server.Close()
	client := newTestClient(server)

	run, err := client.WaitForRun(context.Background(), "thread_abc", "run_failed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, RunStatusFailed, run.Status)
}

func TestMissingAPIKeyRejected(t *testing.T) {
	server := mockAssistantsServer(nil)
	defer server.Close()
	client := newTestClient(server)
	client.APIKey = ""

	_, err := client.CreateThread(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAssistantReplyNoAssistantMessage(t *testing.T) {
	_, ok := AssistantReply([]Message{{Role: "user"}})
	assert.False(t, ok)
}
