package chat

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/agent"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/textutil"
)

const saveTimeout = 3 * time.Second

type service struct {
	orch Orchestrator
	repo Repo
}

// NewService wires the orchestrator with an optional exchange log; a nil
// repo disables storage.
func NewService(orch Orchestrator, repo Repo) Service {
	if repo == nil {
		repo = nopRepo{}
	}
	return &service{orch: orch, repo: repo}
}

func (s *service) Handle(ctx context.Context, message, auth string) agent.Result {
	log.Printf("[chat] message=%q auth=%t", textutil.Short(message), auth != "")

	res, err := s.orch.RunAgent(ctx, message, auth)
	if err != nil {
		log.Printf("[chat] agent path failed, falling back to stub: %v", err)
		res = s.orch.RunStub(ctx, message, auth)
	}

	s.save(ctx, message, res)
	return res
}

// save runs detached from the request context so a client hang-up does not
// drop the record; failures are only logged.
func (s *service) save(ctx context.Context, message string, res agent.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	e := &Exchange{
		ID:        uuid.New(),
		Message:   message,
		Reply:     res.Reply,
		CRID:      res.CRID,
		Path:      res.Path,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveExchange(ctx, e); err != nil {
		log.Printf("[db] save exchange %s: %v", e.ID, err)
	}
}

type nopRepo struct{}

func (nopRepo) SaveExchange(context.Context, *Exchange) error { return nil }
