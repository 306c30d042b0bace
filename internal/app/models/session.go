package models

import "time"

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusPaused    SessionStatus = "paused"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusAbandoned SessionStatus = "abandoned"
	SessionStatusExpired   SessionStatus = "expired"
)

type Phase string

const (
	PhaseGreeting             Phase = "greeting"
	PhaseFreeExploration      Phase = "free_exploration"
	PhaseScreenerIntroPending Phase = "screener_intro_pending"
	PhaseScreenerActive       Phase = "screener_active"
	PhaseRiskEscalated        Phase = "risk_escalated"
	PhaseReportPending        Phase = "report_pending"
	PhaseTerminal             Phase = "terminal"
)

const (
	TurnRoleRespondent = "respondent"
	TurnRoleSystem     = "system"
)

// TurnOption is a discrete choice offered by a system turn, reducible to a
// stable short code for client-side selection round-tripping.
type TurnOption struct {
	Code  string `json:"code" bson:"code"`
	Label string `json:"label" bson:"label"`
}

// ConversationTurn is one entry of the append-only transcript. ScreenerID and
// ItemID are set when a system turn posed a screener question.
type ConversationTurn struct {
	Role       string       `json:"role" bson:"role"`
	Text       string       `json:"text" bson:"text"`
	Timestamp  time.Time    `json:"timestamp" bson:"timestamp"`
	ScreenerID string       `json:"screenerId,omitempty" bson:"screenerId,omitempty"`
	ItemID     string       `json:"itemId,omitempty" bson:"itemId,omitempty"`
	Options    []TurnOption `json:"options,omitempty" bson:"options,omitempty"`
}

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Session is the aggregate persisted atomically per turn. All mutation
// happens under the per-session lock.
type Session struct {
	ID               string             `json:"id" bson:"_id"`
	ResumeTokenID    string             `json:"-" bson:"resumeTokenId,omitempty"`
	Status           SessionStatus      `json:"status" bson:"status"`
	Phase            Phase              `json:"phase" bson:"phase"`
	ResumePhase      Phase              `json:"-" bson:"resumePhase,omitempty"`
	Turns            []ConversationTurn `json:"turns" bson:"turns"`
	Tags             map[string]bool    `json:"tags" bson:"tags"`
	Results          []ScreenerResult   `json:"results" bson:"results"`
	Risk             RiskState          `json:"risk" bson:"risk"`
	ScreenerQueue    []string           `json:"screenerQueue" bson:"screenerQueue"`
	OfferedScreeners map[string]bool    `json:"-" bson:"offeredScreeners"`
	ActiveScreenerID string             `json:"activeScreenerId,omitempty" bson:"activeScreenerId,omitempty"`
	ActiveItemIndex  int                `json:"activeItemIndex" bson:"activeItemIndex"`
	ActiveAnswers    []ItemAnswer       `json:"-" bson:"activeAnswers,omitempty"`
	ExplorationTurns int                `json:"explorationTurns" bson:"explorationTurns"`
	EndedEarly       bool               `json:"endedEarly" bson:"endedEarly"`
	PausedAt         *time.Time         `json:"pausedAt,omitempty" bson:"pausedAt,omitempty"`
	ExpiresAt        *time.Time         `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	Reports          *SessionReports    `json:"reports,omitempty" bson:"reports,omitempty"`
	TimeModel        `bson:",inline"`
}

// IsTerminal reports whether the session accepts no further turns.
func (s *Session) IsTerminal() bool {
	switch s.Status {
	case SessionStatusCompleted, SessionStatusAbandoned, SessionStatusExpired:
		return true
	}
	return false
}

// AddTags merges newly detected symptom tags into the session's tag set.
// Tags are only ever added, never retracted, within a session.
func (s *Session) AddTags(tags map[string]bool) {
	if s.Tags == nil {
		s.Tags = make(map[string]bool, len(tags))
	}
	for tag, present := range tags {
		if present {
			s.Tags[tag] = true
		}
	}
}

// AppendTurn appends to the transcript preserving strict arrival order.
func (s *Session) AppendTurn(turn ConversationTurn) {
	s.Turns = append(s.Turns, turn)
}

// LastSystemTurn returns the most recent system turn, or nil.
func (s *Session) LastSystemTurn() *ConversationTurn {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == TurnRoleSystem {
			return &s.Turns[i]
		}
	}
	return nil
}
