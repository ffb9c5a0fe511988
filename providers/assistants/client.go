// Package assistants is a REST client for a hosted OpenAI-compatible
// assistants API (Azure OpenAI convention: api-key header plus an
// api-version query parameter). It covers assistant lifecycle,
// threads, messages and run polling.
package assistants

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/va6996/mathdesk/log"
)

// Client is the assistants API client
type Client struct {
	Endpoint     string
	APIKey       string
	APIVersion   string
	HTTPClient   *http.Client
	PollInterval time.Duration
	// RunTimeout bounds WaitForRun; zero means no deadline beyond the
	// caller's context.
	RunTimeout time.Duration
}

// NewClient creates a new assistants client for the given resource
// endpoint, e.g. https://myresource.openai.azure.com
func NewClient(endpoint, apiKey, apiVersion string, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Client{
		Endpoint:     strings.TrimRight(endpoint, "/"),
		APIKey:       apiKey,
		APIVersion:   apiVersion,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		PollInterval: pollInterval,
	}
}

// Assistant is a hosted agent definition
type Assistant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

// AssistantRequest is the payload for creating an assistant
type AssistantRequest struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

// AssistantList wraps the list response
type AssistantList struct {
	Data []Assistant `json:"data"`
}

// DeletedResponse reports a deletion
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Thread is a hosted conversation thread
type Thread struct {
	ID string `json:"id"`
}

// Message is one message on a thread
type Message struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []MessageContent `json:"content"`
}

// MessageContent is one content part of a message
type MessageContent struct {
	Type string      `json:"type"`
	Text MessageText `json:"text"`
}

// MessageText holds the text value of a content part
type MessageText struct {
	Value string `json:"value"`
}

// MessageList wraps the message list response, newest first
type MessageList struct {
	Data []Message `json:"data"`
}

// Run is one execution of an assistant over a thread
type Run struct {
	ID          string `json:"id"`
	ThreadID    string `json:"thread_id"`
	AssistantID string `json:"assistant_id"`
	Status      string `json:"status"`
	LastError   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

// Terminal run statuses; queued and in_progress keep polling.
const (
	RunStatusQueued     = "queued"
	RunStatusInProgress = "in_progress"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
	RunStatusCancelled  = "cancelled"
	RunStatusExpired    = "expired"
)

// do issues one API request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	u := fmt.Sprintf("%s/openai%s?api-version=%s", c.Endpoint, path, url.QueryEscape(c.APIVersion))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api-key", c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("assistants API %s %s failed with status %d: %s", method, path, resp.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateAssistant provisions a hosted assistant
func (c *Client) CreateAssistant(ctx context.Context, req AssistantRequest) (*Assistant, error) {
	var assistant Assistant
	if err := c.do(ctx, http.MethodPost, "/assistants", req, &assistant); err != nil {
		return nil, err
	}
	log.Infof(ctx, "Created assistant %s (%s)", assistant.Name, assistant.ID)
	return &assistant, nil
}

// GetAssistant fetches a hosted assistant by ID
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	var assistant Assistant
	if err := c.do(ctx, http.MethodGet, "/assistants/"+id, nil, &assistant); err != nil {
		return nil, err
	}
	return &assistant, nil
}

// ListAssistants returns all hosted assistants
func (c *Client) ListAssistants(ctx context.Context) ([]Assistant, error) {
	var list AssistantList
	if err := c.do(ctx, http.MethodGet, "/assistants", nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// DeleteAssistant removes a hosted assistant
func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	var deleted DeletedResponse
	if err := c.do(ctx, http.MethodDelete, "/assistants/"+id, nil, &deleted); err != nil {
		return err
	}
	if !deleted.Deleted {
		return fmt.Errorf("assistant %s was not deleted", id)
	}
	return nil
}

// CreateThread starts a new conversation thread
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var thread Thread
	if err := c.do(ctx, http.MethodPost, "/threads", struct{}{}, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateMessage appends a user message to a thread
func (c *Client) CreateMessage(ctx context.Context, threadID, content string) (*Message, error) {
	payload := map[string]string{"role": "user", "content": content}
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/messages", payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the messages on a thread, newest first
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	var list MessageList
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CreateRun starts a run of an assistant over a thread
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error) {
	payload := map[string]string{"assistant_id": assistantID}
	var run Run
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs", payload, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches the current state of a run
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// WaitForRun polls a run until it reaches a terminal status or the
// context is cancelled.
func (c *Client) WaitForRun(ctx context.Context, threadID, runID string) (*Run, error) {
	if c.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.RunTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		run, err := c.GetRun(ctx, threadID, runID)
		if err != nil {
			return nil, err
		}

		switch run.Status {
		case RunStatusQueued, RunStatusInProgress:
			log.Debugf(ctx, "Run %s still %s", runID, run.Status)
		case RunStatusCompleted:
			return run, nil
		case RunStatusFailed:
			if run.LastError != nil {
				return run, fmt.Errorf("run %s failed: %s: %s", runID, run.LastError.Code, run.LastError.Message)
			}
			return run, fmt.Errorf("run %s failed", runID)
		default:
			return run, fmt.Errorf("run %s ended with status %s", runID, run.Status)
		}

		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}
	}
}

// AssistantReply returns the newest assistant message text on a
// thread, if any.
func AssistantReply(messages []Message) (string, bool) {
	for _, msg := range messages {
		if msg.Role != "assistant" {
			continue
		}
		var parts []string
		for _, content := range msg.Content {
			if content.Type == "text" && content.Text.Value != "" {
				parts = append(parts, content.Text.Value)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n"), true
		}
	}
	return "", false
}
