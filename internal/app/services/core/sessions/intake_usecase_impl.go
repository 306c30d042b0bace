package sessions

import (
	"context"
	"errors"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type intakeUsecase struct {
	Log            *zap.Logger
	SessionRepo    contracts.SessionRepository
	Orchestrator   contracts.ConversationOrchestrator
	ReportUsecase  contracts.ReportUsecase
	RedisRepo      contracts.RedisRepository
	Locker         contracts.LockerService
	InternalConfig *config.InternalConfig
}

func NewIntakeUsecase(
	logger *zap.Logger,
	sessionRepo contracts.SessionRepository,
	orchestrator contracts.ConversationOrchestrator,
	reportUsecase contracts.ReportUsecase,
	redisRepo contracts.RedisRepository,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
) contracts.IntakeUsecase {
	return &intakeUsecase{
		Log:            logger,
		SessionRepo:    sessionRepo,
		Orchestrator:   orchestrator,
		ReportUsecase:  reportUsecase,
		RedisRepo:      redisRepo,
		Locker:         lockerService,
		InternalConfig: internalConfig,
	}
}

func (uc *intakeUsecase) StartSession(ctx context.Context) (*responses.StartSession, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:               uuid.NewString(),
		Status:           models.SessionStatusActive,
		Phase:            models.PhaseGreeting,
		Tags:             make(map[string]bool),
		OfferedScreeners: make(map[string]bool),
		Risk:             models.RiskState{Tier: models.RiskTierNone},
		TimeModel:        models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	outcome, err := uc.Orchestrator.Greet(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := uc.SessionRepo.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	uc.Log.Info("intakeUsecase.StartSession created",
		zap.String(constvars.LoggingSessionIDKey, session.ID),
	)

	return &responses.StartSession{
		SessionID: session.ID,
		Greeting:  outcome.Reply,
	}, nil
}

func (uc *intakeUsecase) SubmitTurn(ctx context.Context, sessionID string, request *requests.SubmitTurn) (*responses.SubmitTurn, error) {
	var response *responses.SubmitTurn
	err := uc.withSessionLock(ctx, sessionID, func() error {
		session, err := uc.loadActiveSession(ctx, sessionID)
		if err != nil {
			return err
		}

		outcome, err := uc.Orchestrator.HandleTurn(ctx, session, request.Text)
		if err != nil {
			return err
		}

		session.UpdatedAt = time.Now().UTC()
		if err := uc.SessionRepo.SaveSession(ctx, session); err != nil {
			return err
		}

		response = &responses.SubmitTurn{
			SessionID: session.ID,
			Phase:     session.Phase,
			Reply:     outcome.Reply,
			Options:   outcome.Options,
			Escalated: outcome.Escalated,
			Completed: outcome.ReportReady,
		}
		return nil
	})
	return response, err
}

func (uc *intakeUsecase) PauseSession(ctx context.Context, sessionID string) (*responses.PauseSession, error) {
	var response *responses.PauseSession
	err := uc.withSessionLock(ctx, sessionID, func() error {
		session, err := uc.loadActiveSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := uc.Orchestrator.CanPause(session); err != nil {
			return err
		}

		now := time.Now().UTC()
		expiresAt := now.Add(time.Duration(uc.InternalConfig.Intake.PauseExpiryInMinutes) * time.Minute)
		token, tokenID, err := utils.GenerateResumeToken(session.ID, uc.InternalConfig.JWT.Secret, expiresAt)
		if err != nil {
			return exceptions.ErrTokenGenerate(err)
		}

		session.Status = models.SessionStatusPaused
		session.ResumeTokenID = tokenID
		session.PausedAt = &now
		session.ExpiresAt = &expiresAt
		session.UpdatedAt = now
		if err := uc.SessionRepo.SaveSession(ctx, session); err != nil {
			return err
		}

		// Secondary index for resume lookups; the TTL makes redis clean up
		// after itself, mongo remains the source of truth.
		redisKey := constvars.RedisResumeTokenPrefix + tokenID
		if err := uc.RedisRepo.Set(ctx, redisKey, session.ID, time.Until(expiresAt)); err != nil {
			uc.Log.Warn("intakeUsecase.PauseSession token index write failed",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
		}

		uc.Log.Info("intakeUsecase.PauseSession paused",
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.String(constvars.LoggingPhaseKey, string(session.Phase)),
		)

		response = &responses.PauseSession{ResumeToken: token, ExpiresAt: expiresAt}
		return nil
	})
	return response, err
}

func (uc *intakeUsecase) ResumeSession(ctx context.Context, request *requests.ResumeSession) (*responses.ResumeSession, error) {
	tokenID, sessionID, err := utils.ParseResumeToken(request.ResumeToken, uc.InternalConfig.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, exceptions.ErrResumeTokenExpired(err)
		}
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if indexed, err := uc.lookupTokenIndex(ctx, tokenID); err == nil && indexed != "" {
		sessionID = indexed
	}

	var response *responses.ResumeSession
	err = uc.withSessionLock(ctx, sessionID, func() error {
		session, err := uc.SessionRepo.FindSessionByResumeTokenID(ctx, tokenID)
		if err != nil {
			return err
		}
		if session == nil {
			return exceptions.ErrResumeTokenNotFound(nil)
		}

		now := time.Now().UTC()
		switch {
		case session.Status == models.SessionStatusExpired:
			return exceptions.ErrExpiredSession(nil)
		case session.Status != models.SessionStatusPaused:
			return exceptions.ErrResumeTokenNotFound(fmt.Errorf("session %s is %s", session.ID, session.Status))
		case session.ExpiresAt != nil && now.After(*session.ExpiresAt):
			// The sweep has not caught this one yet; expire it now rather
			// than silently reviving it.
			session.Status = models.SessionStatusExpired
			session.UpdatedAt = now
			if saveErr := uc.SessionRepo.SaveSession(ctx, session); saveErr != nil {
				return saveErr
			}
			return exceptions.ErrExpiredSession(nil)
		}

		session.Status = models.SessionStatusActive
		session.ResumeTokenID = ""
		session.PausedAt = nil
		session.ExpiresAt = nil

		outcome, err := uc.Orchestrator.ReentryTurn(ctx, session)
		if err != nil {
			// The session stays paused; the client can retry the resume.
			return err
		}

		session.UpdatedAt = now
		if err := uc.SessionRepo.SaveSession(ctx, session); err != nil {
			return err
		}

		redisKey := constvars.RedisResumeTokenPrefix + tokenID
		if err := uc.RedisRepo.Delete(ctx, redisKey); err != nil {
			uc.Log.Warn("intakeUsecase.ResumeSession token index delete failed",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
		}

		uc.Log.Info("intakeUsecase.ResumeSession resumed",
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.String(constvars.LoggingPhaseKey, string(session.Phase)),
		)

		response = &responses.ResumeSession{
			SessionID:   session.ID,
			ReentryTurn: outcome.Reply,
			Options:     outcome.Options,
		}
		return nil
	})
	return response, err
}

func (uc *intakeUsecase) FinishSession(ctx context.Context, sessionID string) (*responses.SessionReports, error) {
	var response *responses.SessionReports
	err := uc.withSessionLock(ctx, sessionID, func() error {
		session, err := uc.SessionRepo.FindSessionByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return exceptions.ErrSessionNotFound(nil)
		}
		if session.Status == models.SessionStatusCompleted && session.Reports != nil {
			response = buildReportsResponse(session)
			return nil
		}
		if session.IsTerminal() {
			return exceptions.ErrSessionTerminal(nil)
		}
		if session.Status == models.SessionStatusPaused {
			return exceptions.ErrSessionPaused(nil)
		}
		if err := uc.Orchestrator.CanFinish(session); err != nil {
			return err
		}

		if session.Phase != models.PhaseReportPending {
			session.EndedEarly = true
		}

		reports, err := uc.ReportUsecase.SynthesizeReports(ctx, session)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		session.Reports = reports
		session.Status = models.SessionStatusCompleted
		session.Phase = models.PhaseTerminal
		session.ActiveScreenerID = ""
		session.ActiveAnswers = nil
		session.UpdatedAt = now
		if err := uc.SessionRepo.SaveSession(ctx, session); err != nil {
			return err
		}

		uc.Log.Info("intakeUsecase.FinishSession completed",
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.String(constvars.LoggingRiskTierKey, string(session.Risk.Tier)),
			zap.Bool(constvars.LoggingSuccessKey, !reports.NeedsReview),
		)

		response = buildReportsResponse(session)
		return nil
	})
	return response, err
}

func (uc *intakeUsecase) GetReports(ctx context.Context, sessionID string) (*responses.SessionReports, error) {
	session, err := uc.SessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	if session.Reports == nil {
		return nil, exceptions.ErrReportNotReady(nil)
	}
	return buildReportsResponse(session), nil
}

func (uc *intakeUsecase) SweepExpired(ctx context.Context) (int64, error) {
	staleAge := time.Duration(uc.InternalConfig.Intake.StaleActiveAgeInMinutes) * time.Minute
	return uc.SessionRepo.SweepExpired(ctx, time.Now().UTC(), staleAge)
}

// withSessionLock serializes all mutation of one session. A held lock means
// another turn is mid-flight and the caller should retry, not queue.
func (uc *intakeUsecase) withSessionLock(ctx context.Context, sessionID string, fn func() error) error {
	lockKey := constvars.RedisSessionLockPrefix + sessionID
	lockExpiration := time.Duration(uc.InternalConfig.Intake.LockExpirationInSeconds) * time.Second

	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockExpiration)
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrSessionBusy(nil)
	}
	defer func() {
		if unlockErr := uc.Locker.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("intakeUsecase.withSessionLock unlock failed",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	return fn()
}

func (uc *intakeUsecase) loadActiveSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := uc.SessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	if session.IsTerminal() {
		return nil, exceptions.ErrSessionTerminal(nil)
	}
	if session.Status == models.SessionStatusPaused {
		return nil, exceptions.ErrSessionPaused(nil)
	}
	return session, nil
}

func (uc *intakeUsecase) lookupTokenIndex(ctx context.Context, tokenID string) (string, error) {
	stored, err := uc.RedisRepo.Get(ctx, constvars.RedisResumeTokenPrefix+tokenID)
	if err != nil {
		return "", err
	}
	return strings.Trim(stored, `"`), nil
}

func buildReportsResponse(session *models.Session) *responses.SessionReports {
	return &responses.SessionReports{
		SessionID:   session.ID,
		Respondent:  session.Reports.Respondent,
		Clinician:   session.Reports.Clinician,
		NeedsReview: session.Reports.NeedsReview,
	}
}
