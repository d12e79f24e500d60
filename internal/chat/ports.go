package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/agent"
)

// Exchange is one /chat round trip as stored in the exchange log. The
// caller's credential is never part of it.
type Exchange struct {
	ID        uuid.UUID
	Message   string
	Reply     string
	CRID      string
	Path      string
	CreatedAt time.Time
}

// Repo stores chat exchanges.
type Repo interface {
	SaveExchange(ctx context.Context, e *Exchange) error
}

// Orchestrator runs the agent path first, stub path as fallback. *agent.Orchestrator
// satisfies it.
type Orchestrator interface {
	RunAgent(ctx context.Context, message, auth string) (agent.Result, error)
	RunStub(ctx context.Context, message, auth string) agent.Result
}

var _ Orchestrator = (*agent.Orchestrator)(nil)

// Service never fails: every request ends with a reply.
type Service interface {
	Handle(ctx context.Context, message, auth string) agent.Result
}
