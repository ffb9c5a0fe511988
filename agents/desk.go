package agents

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
	"github.com/va6996/mathdesk/providers/assistants"
)

// Desk routes a request to the right agent by type. Calculator
// requests are always answered locally; chat goes to a deployed hosted
// assistant when one exists, falling back to the local ChatAgent.
type Desk struct {
	calculator *CalculatorAgent
	chat       *ChatAgent
	assistants *assistants.Client
	db         *gorm.DB
}

// DeskReply is one routed answer
type DeskReply struct {
	AgentID  string
	ThreadID string
	Response string
}

// NewDesk creates a new Desk. The assistants client and db are
// optional; without them chat is served locally.
func NewDesk(calculator *CalculatorAgent, chat *ChatAgent, client *assistants.Client, db *gorm.DB) *Desk {
	return &Desk{
		calculator: calculator,
		chat:       chat,
		assistants: client,
		db:         db,
	}
}

// SendMessage routes one message to the named agent type. threadID is
// only meaningful for remote agents and is echoed back (possibly
// freshly created) so the caller can continue the conversation.
func (d *Desk) SendMessage(ctx context.Context, agentType, threadID, message string) (*DeskReply, error) {
	switch agentType {
	case KeyCalculator:
		response, err := d.calculator.Respond(ctx, message)
		if err != nil {
			return nil, err
		}
		return &DeskReply{AgentID: "local:" + KeyCalculator, ThreadID: threadID, Response: response}, nil

	case KeyChat:
		if remote := d.remoteFor(ctx, KeyChat); remote != nil {
			response, usedThread, err := remote.RespondOnThread(ctx, threadID, message)
			if err != nil {
				return nil, err
			}
			return &DeskReply{AgentID: remote.deployment.AssistantID, ThreadID: usedThread, Response: response}, nil
		}
		if d.chat == nil {
			return nil, fmt.Errorf("chat agent is not configured")
		}
		response, err := d.chat.Respond(ctx, message)
		if err != nil {
			return nil, err
		}
		return &DeskReply{AgentID: "local:" + KeyChat, ThreadID: threadID, Response: response}, nil

	default:
		return nil, fmt.Errorf("unknown agent type %q, expected %q or %q", agentType, KeyCalculator, KeyChat)
	}
}

// remoteFor builds a RemoteAgent when assistants are configured and a
// deployment record exists for the key.
func (d *Desk) remoteFor(ctx context.Context, key string) *RemoteAgent {
	if d.assistants == nil || d.db == nil {
		return nil
	}
	deployment, err := orm.GetDeployment(d.db, key)
	if err != nil {
		log.Debugf(ctx, "Desk: no deployment for %s, serving locally", key)
		return nil
	}
	return NewRemoteAgent(d.assistants, d.db, deployment)
}
