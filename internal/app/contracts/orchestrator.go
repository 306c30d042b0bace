package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

// TurnOutcome is what the orchestrator hands back for one processed turn.
// Reply and Options are already appended to the session transcript by the
// time the outcome is returned.
type TurnOutcome struct {
	Reply       string
	Options     []models.TurnOption
	Escalated   bool
	ReportReady bool
}

// ConversationOrchestrator is the top-level phase state machine. It mutates
// the session aggregate in memory only; persistence is the caller's job and
// happens after a successful return, giving at-most-one-effective-transition
// semantics per turn.
type ConversationOrchestrator interface {
	// Greet produces the initial system turn and moves the session out of
	// the greeting phase.
	Greet(ctx context.Context, session *models.Session) (*TurnOutcome, error)
	// HandleTurn processes one respondent input. Recoverable single-turn
	// failures (invalid answers, model errors after retry) are absorbed into
	// a safe re-prompt outcome without advancing the phase.
	HandleTurn(ctx context.Context, session *models.Session, input string) (*TurnOutcome, error)
	// ReentryTurn builds the context-aware turn shown after a resume: a
	// short acknowledgment plus the next pending question.
	ReentryTurn(ctx context.Context, session *models.Session) (*TurnOutcome, error)
	// CanPause reports whether the session's current phase permits pausing.
	CanPause(session *models.Session) error
	// CanFinish reports whether the session may proceed to report synthesis.
	// Finishing is blocked while a safety check-in or a mandatory risk item
	// is pending.
	CanFinish(session *models.Session) error
}
