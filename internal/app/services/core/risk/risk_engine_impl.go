package risk

import (
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/screeners"
	"intake-service/internal/pkg/exceptions"
	"sync"
)

const (
	passiveIdeationIndex = 0
	activeIdeationIndex  = 1
)

var (
	riskEngineInstance contracts.RiskEngine
	onceRiskEngine     sync.Once
)

type riskEngine struct {
	definition *models.ScreenerDefinition
}

// NewRiskEngine binds the engine to the registry's safety instrument. The
// engine is the only writer of RiskState.
func NewRiskEngine(registry contracts.ScreenerRegistry) (contracts.RiskEngine, error) {
	var initErr error
	onceRiskEngine.Do(func() {
		definition, err := registry.Get(screeners.ScreenerIDCSSRS)
		if err != nil {
			initErr = err
			return
		}
		riskEngineInstance = &riskEngine{definition: definition}
	})
	if initErr != nil {
		return nil, initErr
	}
	return riskEngineInstance, nil
}

func (e *riskEngine) InstrumentID() string {
	return e.definition.ID
}

func (e *riskEngine) NewState() models.RiskState {
	return models.RiskState{Tier: models.RiskTierNone}
}

func (e *riskEngine) CurrentItem(state *models.RiskState) *models.ScreenerItem {
	if state.BranchClosed || state.ItemIndex >= len(e.definition.Items) {
		return nil
	}
	return &e.definition.Items[state.ItemIndex]
}

// Apply advances the branch by exactly one answer:
//
//	item 1 negative closes the branch at tier none;
//	item 2 negative closes at tier low (passive ideation only);
//	item 2 affirmative makes items 3-6 mandatory at tier moderate;
//	any affirmative on items 3-6 triggers escalation and tier high.
func (e *riskEngine) Apply(state *models.RiskState, itemID string, affirmative bool) error {
	if state.BranchClosed {
		return exceptions.ErrRiskBranchClosed(fmt.Errorf("answer for %s after branch closed", itemID))
	}
	current := e.CurrentItem(state)
	if current == nil {
		return exceptions.ErrRiskBranchClosed(fmt.Errorf("no pending risk item"))
	}
	if current.ID != itemID {
		return exceptions.ErrRiskItemOutOfSequence(fmt.Errorf("expected %s, got %s", current.ID, itemID))
	}

	state.Answers = append(state.Answers, models.RiskAnswer{ItemID: itemID, Affirmative: affirmative})

	switch {
	case state.ItemIndex == passiveIdeationIndex:
		if !affirmative {
			state.Tier = models.RiskTierNone
			state.BranchClosed = true
			return nil
		}
		state.Tier = models.RiskTierLow
		state.ItemIndex++
	case state.ItemIndex == activeIdeationIndex:
		if !affirmative {
			state.Tier = models.RiskTierLow
			state.BranchClosed = true
			return nil
		}
		state.Tier = models.RiskTierModerate
		state.ItemIndex++
	default:
		if affirmative {
			state.Tier = models.RiskTierHigh
			state.EscalationTriggered = true
		}
		state.ItemIndex++
		if state.ItemIndex >= len(e.definition.Items) {
			state.BranchClosed = true
		}
	}
	return nil
}

func (e *riskEngine) AcknowledgeSafety(state *models.RiskState) {
	if state.EscalationTriggered {
		state.SafetyAcknowledged = true
	}
}
