package risk

import (
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/screeners"
	"intake-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) contracts.RiskEngine {
	t.Helper()
	registry, err := screeners.NewDefaultScreenerRegistry()
	require.NoError(t, err)
	engine, err := NewRiskEngine(registry)
	require.NoError(t, err)
	return engine
}

func TestBranchClosesOnNegativePassiveIdeation(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	item := engine.CurrentItem(&state)
	require.NotNil(t, item)

	require.NoError(t, engine.Apply(&state, item.ID, false))

	assert.True(t, state.BranchClosed, "negative first item should close the branch")
	assert.Equal(t, models.RiskTierNone, state.Tier)
	assert.False(t, state.EscalationTriggered)
	assert.Nil(t, engine.CurrentItem(&state))
}

func TestPassiveIdeationOnlyIsLowTier(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	assert.Equal(t, models.RiskTierLow, state.Tier)
	assert.False(t, state.BranchClosed)

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, false))
	assert.True(t, state.BranchClosed, "negative second item should close the branch")
	assert.Equal(t, models.RiskTierLow, state.Tier)
	assert.False(t, state.EscalationTriggered)
}

func TestActiveIdeationMakesRemainingItemsMandatory(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))

	assert.Equal(t, models.RiskTierModerate, state.Tier)
	assert.False(t, state.BranchClosed, "items three through six stay mandatory after active ideation")

	for engine.CurrentItem(&state) != nil {
		require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, false))
	}

	assert.True(t, state.BranchClosed)
	assert.Equal(t, models.RiskTierModerate, state.Tier)
	assert.False(t, state.EscalationTriggered)
	assert.Len(t, state.Answers, 6, "all six items should be answered once the branch opened fully")
}

func TestEscalationTriggersImmediatelyOnMethodItem(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))

	assert.True(t, state.EscalationTriggered, "affirmative on item three must escalate immediately")
	assert.Equal(t, models.RiskTierHigh, state.Tier)
	assert.True(t, state.AwaitingSafetyAck())
	assert.False(t, state.BranchClosed, "escalation does not close the branch, remaining items stay pending")
}

func TestTierNeverDowngrades(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, false))

	assert.Equal(t, models.RiskTierHigh, state.Tier, "a later negative answer must not lower the tier")
}

func TestOutOfSequenceAnswerRejected(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	err := engine.Apply(&state, "cssrs_3", true)
	assert.True(t, exceptions.IsKind(err, exceptions.KindSequence))
	assert.Empty(t, state.Answers, "rejected answer must not mutate state")
	assert.Equal(t, 0, state.ItemIndex)
}

func TestAnswerAfterBranchClosedRejected(t *testing.T) {
	engine := newTestEngine(t)
	state := engine.NewState()

	require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, false))

	err := engine.Apply(&state, "cssrs_2", true)
	assert.True(t, exceptions.IsKind(err, exceptions.KindSequence))
}

func TestAcknowledgeSafety(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("After Escalation", func(t *testing.T) {
		state := engine.NewState()
		require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
		require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))
		require.NoError(t, engine.Apply(&state, engine.CurrentItem(&state).ID, true))

		engine.AcknowledgeSafety(&state)
		assert.True(t, state.SafetyAcknowledged)
		assert.False(t, state.AwaitingSafetyAck())
	})

	t.Run("Without Escalation Is A No-Op", func(t *testing.T) {
		state := engine.NewState()
		engine.AcknowledgeSafety(&state)
		assert.False(t, state.SafetyAcknowledged)
	})
}
