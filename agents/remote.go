package agents

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
	"github.com/va6996/mathdesk/providers/assistants"
)

// RemoteAgent talks to a deployed hosted assistant: it posts the
// message on a thread, runs the assistant and returns the newest
// assistant reply. Thread activity is recorded in the store so the
// server can resume conversations across requests.
type RemoteAgent struct {
	client     *assistants.Client
	db         *gorm.DB
	deployment *orm.AgentDeployment
}

var _ Responder = (*RemoteAgent)(nil)

// NewRemoteAgent creates a RemoteAgent for a stored deployment
func NewRemoteAgent(client *assistants.Client, db *gorm.DB, deployment *orm.AgentDeployment) *RemoteAgent {
	return &RemoteAgent{
		client:     client,
		db:         db,
		deployment: deployment,
	}
}

func (a *RemoteAgent) Name() string {
	return a.deployment.Name
}

// Respond runs the query on a fresh thread
func (a *RemoteAgent) Respond(ctx context.Context, query string) (string, error) {
	reply, _, err := a.RespondOnThread(ctx, "", query)
	return reply, err
}

// RespondOnThread runs the query on an existing thread, creating one
// when threadID is empty, and reports the thread ID actually used.
func (a *RemoteAgent) RespondOnThread(ctx context.Context, threadID, query string) (string, string, error) {
	if threadID == "" {
		thread, err := a.client.CreateThread(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to create thread: %w", err)
		}
		threadID = thread.ID
		log.Infof(ctx, "RemoteAgent: started thread %s for %s", threadID, a.deployment.AgentKey)
	}

	if _, err := a.client.CreateMessage(ctx, threadID, query); err != nil {
		return "", threadID, fmt.Errorf("failed to post message: %w", err)
	}

	run, err := a.client.CreateRun(ctx, threadID, a.deployment.AssistantID)
	if err != nil {
		return "", threadID, fmt.Errorf("failed to start run: %w", err)
	}

	if _, err := a.client.WaitForRun(ctx, threadID, run.ID); err != nil {
		return "", threadID, err
	}

	messages, err := a.client.ListMessages(ctx, threadID)
	if err != nil {
		return "", threadID, fmt.Errorf("failed to list messages: %w", err)
	}

	a.recordActivity(ctx, threadID)

	reply, ok := assistants.AssistantReply(messages)
	if !ok {
		return "", threadID, fmt.Errorf("no assistant reply on thread %s", threadID)
	}
	return reply, threadID, nil
}

func (a *RemoteAgent) recordActivity(ctx context.Context, threadID string) {
	if a.db == nil {
		return
	}
	if err := orm.TouchThread(a.db, threadID, a.deployment.AgentKey, a.deployment.AssistantID); err != nil {
		log.Warnf(ctx, "RemoteAgent: failed to record thread activity: %v", err)
	}
}
