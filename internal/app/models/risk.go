package models

type RiskTier string

const (
	RiskTierNone     RiskTier = "none"
	RiskTierLow      RiskTier = "low"
	RiskTierModerate RiskTier = "moderate"
	RiskTierHigh     RiskTier = "high"
)

// RiskAnswer records one yes/no answer on the risk instrument branch.
type RiskAnswer struct {
	ItemID      string `json:"itemId" bson:"itemId"`
	Affirmative bool   `json:"affirmative" bson:"affirmative"`
}

// RiskState is owned exclusively by the risk escalation engine and is only
// written through its transition function.
type RiskState struct {
	ItemIndex           int          `json:"itemIndex" bson:"itemIndex"`
	Answers             []RiskAnswer `json:"answers" bson:"answers"`
	Tier                RiskTier     `json:"tier" bson:"tier"`
	EscalationTriggered bool         `json:"escalationTriggered" bson:"escalationTriggered"`
	SafetyAcknowledged  bool         `json:"safetyAcknowledged" bson:"safetyAcknowledged"`
	BranchClosed        bool         `json:"branchClosed" bson:"branchClosed"`
}

// AwaitingSafetyAck reports whether the crisis override is active: an
// escalation was triggered and the respondent has not yet confirmed safety.
func (s *RiskState) AwaitingSafetyAck() bool {
	return s.EscalationTriggered && !s.SafetyAcknowledged
}
