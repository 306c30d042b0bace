package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"time"
)

// SessionRepository persists the Session aggregate. SaveSession must replace
// the whole aggregate atomically; callers hold the per-session lock across
// the read-modify-write.
type SessionRepository interface {
	InsertSession(ctx context.Context, session *models.Session) error
	FindSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
	FindSessionByResumeTokenID(ctx context.Context, tokenID string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	// SweepExpired transitions paused sessions past their expiry to expired
	// and abandons stale active sessions. It is idempotent.
	SweepExpired(ctx context.Context, now time.Time, staleActiveAge time.Duration) (int64, error)
}

type IntakeUsecase interface {
	StartSession(ctx context.Context) (*responses.StartSession, error)
	SubmitTurn(ctx context.Context, sessionID string, request *requests.SubmitTurn) (*responses.SubmitTurn, error)
	PauseSession(ctx context.Context, sessionID string) (*responses.PauseSession, error)
	ResumeSession(ctx context.Context, request *requests.ResumeSession) (*responses.ResumeSession, error)
	FinishSession(ctx context.Context, sessionID string) (*responses.SessionReports, error)
	GetReports(ctx context.Context, sessionID string) (*responses.SessionReports, error)
	SweepExpired(ctx context.Context) (int64, error)
}
