package contracts

import "intake-service/internal/app/models"

// RiskEngine drives the risk instrument's branch-dependent question
// sequencing. RiskState is written only through Apply and AcknowledgeSafety;
// callers serialize those calls under the session lock.
type RiskEngine interface {
	InstrumentID() string
	NewState() models.RiskState
	// CurrentItem returns the item the branch is waiting on, or nil once the
	// branch has closed.
	CurrentItem(state *models.RiskState) *models.ScreenerItem
	// Apply records the answer for itemID, advancing the branch. Answers for
	// any item other than the current one fail with a sequence error.
	Apply(state *models.RiskState, itemID string, affirmative bool) error
	AcknowledgeSafety(state *models.RiskState)
}
