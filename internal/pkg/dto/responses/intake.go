package responses

import (
	"intake-service/internal/app/models"
	"time"
)

type StartSession struct {
	SessionID string `json:"sessionId"`
	Greeting  string `json:"greeting"`
}

type SubmitTurn struct {
	SessionID string              `json:"sessionId"`
	Phase     models.Phase        `json:"phase"`
	Reply     string              `json:"reply"`
	Options   []models.TurnOption `json:"options,omitempty"`
	Escalated bool                `json:"escalated,omitempty"`
	Completed bool                `json:"completed,omitempty"`
}

type PauseSession struct {
	ResumeToken string    `json:"resumeToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ResumeSession struct {
	SessionID   string              `json:"sessionId"`
	ReentryTurn string              `json:"reentryTurn"`
	Options     []models.TurnOption `json:"options,omitempty"`
}

type SessionReports struct {
	SessionID   string         `json:"sessionId"`
	Respondent  *models.Report `json:"respondent,omitempty"`
	Clinician   *models.Report `json:"clinician,omitempty"`
	NeedsReview bool           `json:"needsReview"`
}
