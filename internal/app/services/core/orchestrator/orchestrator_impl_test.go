package orchestrator

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/risk"
	"intake-service/internal/app/services/core/screeners"
	"intake-service/internal/app/services/core/tagger"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModelService struct {
	replies []string
	errs    []error
	calls   int
}

func (f *fakeModelService) Complete(ctx context.Context, systemPrompt string, history []contracts.ModelMessage) (string, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return "How long has this been going on for you?", nil
}

func contractErrModelUnavailable() error {
	return exceptions.ErrModelUnavailable(nil)
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Intake: config.Intake{MinExplorationTurns: 3},
		Model:  config.Model{RetryBackoffInSeconds: 0},
	}
}

func newTestOrchestrator(t *testing.T, model contracts.ModelService) contracts.ConversationOrchestrator {
	t.Helper()
	registry, err := screeners.NewDefaultScreenerRegistry()
	require.NoError(t, err)
	riskEngine, err := risk.NewRiskEngine(registry)
	require.NoError(t, err)
	return NewConversationOrchestrator(zap.NewNop(), registry, riskEngine, tagger.NewLexicalTagger(), model, testConfig())
}

func newActiveSession() *models.Session {
	return &models.Session{
		ID:               "sess-1",
		Status:           models.SessionStatusActive,
		Phase:            models.PhaseGreeting,
		Tags:             map[string]bool{},
		OfferedScreeners: map[string]bool{},
	}
}

func greetedSession(t *testing.T, o contracts.ConversationOrchestrator) *models.Session {
	t.Helper()
	session := newActiveSession()
	_, err := o.Greet(context.Background(), session)
	require.NoError(t, err)
	return session
}

// advanceToScreenerIntro walks a session through enough exploration turns for
// the depression recommendation to fire.
func advanceToScreenerIntro(t *testing.T, o contracts.ConversationOrchestrator, session *models.Session) {
	t.Helper()
	inputs := []string{
		"I've been feeling really down for months",
		"work has been difficult and I lost interest in things",
		"it's been getting worse lately",
	}
	for _, input := range inputs {
		_, err := o.HandleTurn(context.Background(), session, input)
		require.NoError(t, err)
	}
	require.Equal(t, models.PhaseScreenerIntroPending, session.Phase)
}

func TestGreetTransitionsToFreeExploration(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := newActiveSession()

	outcome, err := o.Greet(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, models.PhaseFreeExploration, session.Phase)
	assert.NotEmpty(t, outcome.Reply)
	require.Len(t, session.Turns, 1)
	assert.Equal(t, models.TurnRoleSystem, session.Turns[0].Role)
}

func TestFreeExplorationAppendsTurnsAndTags(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := greetedSession(t, o)

	outcome, err := o.HandleTurn(context.Background(), session, "I've been feeling anxious about everything")
	require.NoError(t, err)

	assert.Equal(t, models.PhaseFreeExploration, session.Phase)
	assert.True(t, session.Tags["anxiety"])
	assert.Equal(t, 1, session.ExplorationTurns)
	assert.NotEmpty(t, outcome.Reply)
	require.Len(t, session.Turns, 3)
	assert.Equal(t, models.TurnRoleRespondent, session.Turns[1].Role)
	assert.Equal(t, models.TurnRoleSystem, session.Turns[2].Role)
}

func TestModelFailureLeavesSessionUntouched(t *testing.T) {
	model := &fakeModelService{errs: []error{
		contractErrModelUnavailable(), contractErrModelUnavailable(),
	}}
	o := newTestOrchestrator(t, model)
	session := greetedSession(t, o)
	turnsBefore := len(session.Turns)

	outcome, err := o.HandleTurn(context.Background(), session, "I've been feeling anxious")
	require.NoError(t, err)

	assert.Equal(t, retryReplyText, outcome.Reply)
	assert.Equal(t, turnsBefore, len(session.Turns), "failed turn must not mutate the transcript")
	assert.Equal(t, 0, session.ExplorationTurns)
	assert.Empty(t, session.Tags)
	assert.Equal(t, 2, model.calls, "model failure should be retried exactly once")
}

func TestModelRetrySucceedsOnSecondAttempt(t *testing.T) {
	model := &fakeModelService{
		errs:    []error{contractErrModelUnavailable(), nil},
		replies: []string{"", "What has that been like for you?"},
	}
	o := newTestOrchestrator(t, model)
	session := greetedSession(t, o)

	outcome, err := o.HandleTurn(context.Background(), session, "I moved cities recently")
	require.NoError(t, err)

	assert.Equal(t, "What has that been like for you?", outcome.Reply)
	assert.Equal(t, 1, session.ExplorationTurns)
}

func TestRecommendationFiresAfterMinimumDepth(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := greetedSession(t, o)

	advanceToScreenerIntro(t, o, session)

	require.NotEmpty(t, session.ScreenerQueue)
	assert.Equal(t, screeners.ScreenerIDPHQ9, session.ScreenerQueue[0])
	last := session.LastSystemTurn()
	require.NotNil(t, last)
	assert.Equal(t, screeners.ScreenerIDPHQ9, last.ScreenerID)
}

func TestSelfHarmCueSkipsMinimumDepth(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := greetedSession(t, o)

	_, err := o.HandleTurn(context.Background(), session, "honestly I've been having suicidal thoughts")
	require.NoError(t, err)

	assert.Equal(t, models.PhaseScreenerIntroPending, session.Phase, "a safety cue should offer the instrument immediately")
	require.NotEmpty(t, session.ScreenerQueue)
	assert.Equal(t, screeners.ScreenerIDCSSRS, session.ScreenerQueue[0], "safety instrument must lead the queue")
}

func TestScreenerIntroConsent(t *testing.T) {
	t.Run("Affirmative Starts The Screener", func(t *testing.T) {
		o := newTestOrchestrator(t, &fakeModelService{})
		session := greetedSession(t, o)
		advanceToScreenerIntro(t, o, session)

		outcome, err := o.HandleTurn(context.Background(), session, "yes")
		require.NoError(t, err)

		assert.Equal(t, models.PhaseScreenerActive, session.Phase)
		assert.Equal(t, screeners.ScreenerIDPHQ9, session.ActiveScreenerID)
		assert.True(t, session.OfferedScreeners[screeners.ScreenerIDPHQ9])
		assert.Len(t, outcome.Options, 4, "first item should carry its answer options")
	})

	t.Run("Ambiguous Reply Gets A Reprompt", func(t *testing.T) {
		o := newTestOrchestrator(t, &fakeModelService{})
		session := greetedSession(t, o)
		advanceToScreenerIntro(t, o, session)

		outcome, err := o.HandleTurn(context.Background(), session, "hmm what is that exactly")
		require.NoError(t, err)

		assert.Equal(t, models.PhaseScreenerIntroPending, session.Phase, "ambiguity must not advance the phase")
		assert.Equal(t, introRepromptText, outcome.Reply)
	})

	t.Run("Decline Skips And Returns To Exploration", func(t *testing.T) {
		o := newTestOrchestrator(t, &fakeModelService{})
		session := greetedSession(t, o)
		advanceToScreenerIntro(t, o, session)
		queued := len(session.ScreenerQueue)

		outcome, err := o.HandleTurn(context.Background(), session, "no thanks")
		require.NoError(t, err)

		assert.True(t, session.OfferedScreeners[screeners.ScreenerIDPHQ9], "declined screener must not be re-offered")
		if queued > 1 {
			assert.Equal(t, models.PhaseScreenerIntroPending, session.Phase)
		} else {
			assert.Equal(t, models.PhaseFreeExploration, session.Phase)
			assert.Equal(t, declineFollowUpText, outcome.Reply)
		}
	})
}

func TestScreenerAdministration(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := greetedSession(t, o)
	advanceToScreenerIntro(t, o, session)
	_, err := o.HandleTurn(context.Background(), session, "yes")
	require.NoError(t, err)

	t.Run("Unresolvable Answer Reasks The Same Item", func(t *testing.T) {
		outcome, err := o.HandleTurn(context.Background(), session, "I really couldn't say")
		require.NoError(t, err)

		assert.Equal(t, 0, session.ActiveItemIndex, "item index must not advance on an invalid answer")
		assert.Contains(t, outcome.Reply, invalidAnswerText)
	})

	t.Run("Valid Answers Walk Through All Items", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			_, err := o.HandleTurn(context.Background(), session, "2")
			require.NoError(t, err)
			assert.Equal(t, i+1, session.ActiveItemIndex)
		}

		outcome, err := o.HandleTurn(context.Background(), session, "2")
		require.NoError(t, err)

		require.Len(t, session.Results, 1)
		assert.Equal(t, 18, session.Results[0].TotalScore)
		assert.Equal(t, "moderately severe", session.Results[0].Severity)
		assert.Empty(t, session.ActiveScreenerID)
		assert.NotNil(t, outcome)
	})
}

func TestRiskEscalationFlow(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})
	session := greetedSession(t, o)

	_, err := o.HandleTurn(context.Background(), session, "I keep thinking about suicide")
	require.NoError(t, err)
	require.Equal(t, models.PhaseScreenerIntroPending, session.Phase)

	_, err = o.HandleTurn(context.Background(), session, "ok")
	require.NoError(t, err)
	require.Equal(t, screeners.ScreenerIDCSSRS, session.ActiveScreenerID)

	// Passive and active ideation endorsed, then a method.
	_, err = o.HandleTurn(context.Background(), session, "yes")
	require.NoError(t, err)
	_, err = o.HandleTurn(context.Background(), session, "yes")
	require.NoError(t, err)
	outcome, err := o.HandleTurn(context.Background(), session, "yes")
	require.NoError(t, err)

	assert.True(t, outcome.Escalated)
	assert.Equal(t, models.PhaseRiskEscalated, session.Phase)
	assert.Contains(t, outcome.Reply, constvars.SafetyCheckInQuestion)

	t.Run("Only Crisis Content Until Safety Confirmed", func(t *testing.T) {
		outcome, err := o.HandleTurn(context.Background(), session, "can we talk about work instead")
		require.NoError(t, err)
		assert.True(t, outcome.Escalated)
		assert.Contains(t, outcome.Reply, constvars.SafetyCheckInQuestion)
		assert.Equal(t, models.PhaseRiskEscalated, session.Phase)
	})

	t.Run("Termination Rejected While Escalated", func(t *testing.T) {
		outcome, err := o.HandleTurn(context.Background(), session, constvars.TerminationToken)
		require.NoError(t, err)
		assert.True(t, outcome.Escalated)
		assert.NotEqual(t, models.PhaseReportPending, session.Phase)
	})

	t.Run("Safety Confirmation Resumes The Instrument", func(t *testing.T) {
		outcome, err := o.HandleTurn(context.Background(), session, "yes I'm safe")
		require.NoError(t, err)

		assert.Equal(t, models.PhaseScreenerActive, session.Phase)
		assert.True(t, session.Risk.SafetyAcknowledged)
		assert.Contains(t, outcome.Reply, safetyResumeAckText)
		assert.NotEmpty(t, outcome.Options)
	})

	t.Run("Mandatory Items Block Termination Until Answered", func(t *testing.T) {
		outcome, err := o.HandleTurn(context.Background(), session, constvars.TerminationToken)
		require.NoError(t, err)
		assert.Equal(t, models.PhaseScreenerActive, session.Phase, "mandatory risk items must be answered before finishing")
		assert.NotEmpty(t, outcome.Options)

		for session.ActiveScreenerID == screeners.ScreenerIDCSSRS {
			_, err := o.HandleTurn(context.Background(), session, "no")
			require.NoError(t, err)
		}

		require.NotEmpty(t, session.Results)
		assert.Equal(t, screeners.ScreenerIDCSSRS, session.Results[0].ScreenerID)
		assert.Equal(t, "high", session.Results[0].Severity)
	})
}

func TestTerminationToken(t *testing.T) {
	t.Run("During Exploration Ends Early", func(t *testing.T) {
		o := newTestOrchestrator(t, &fakeModelService{})
		session := greetedSession(t, o)

		outcome, err := o.HandleTurn(context.Background(), session, constvars.TerminationToken)
		require.NoError(t, err)

		assert.Equal(t, models.PhaseReportPending, session.Phase)
		assert.True(t, session.EndedEarly)
		assert.True(t, outcome.ReportReady)
	})

	t.Run("Mid Ordinary Screener Abandons It Unscored", func(t *testing.T) {
		o := newTestOrchestrator(t, &fakeModelService{})
		session := greetedSession(t, o)
		advanceToScreenerIntro(t, o, session)
		_, err := o.HandleTurn(context.Background(), session, "yes")
		require.NoError(t, err)
		_, err = o.HandleTurn(context.Background(), session, "1")
		require.NoError(t, err)

		_, err = o.HandleTurn(context.Background(), session, constvars.TerminationToken)
		require.NoError(t, err)

		assert.Equal(t, models.PhaseReportPending, session.Phase)
		assert.Empty(t, session.ActiveScreenerID)
		assert.Empty(t, session.Results, "partial instruments are never scored")
	})
}

func TestCanPause(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})

	t.Run("Allowed During Exploration", func(t *testing.T) {
		session := greetedSession(t, o)
		assert.NoError(t, o.CanPause(session))
	})

	t.Run("Blocked Mid Instrument", func(t *testing.T) {
		session := greetedSession(t, o)
		session.Phase = models.PhaseScreenerActive
		assert.Error(t, o.CanPause(session))
	})

	t.Run("Blocked During Safety Check", func(t *testing.T) {
		session := greetedSession(t, o)
		session.Phase = models.PhaseRiskEscalated
		session.Risk.EscalationTriggered = true
		assert.Error(t, o.CanPause(session))
	})
}

func TestCanFinish(t *testing.T) {
	o := newTestOrchestrator(t, &fakeModelService{})

	t.Run("Allowed Normally", func(t *testing.T) {
		session := greetedSession(t, o)
		assert.NoError(t, o.CanFinish(session))
	})

	t.Run("Blocked While Awaiting Safety Ack", func(t *testing.T) {
		session := greetedSession(t, o)
		session.Risk.EscalationTriggered = true
		assert.Error(t, o.CanFinish(session))
	})
}

func TestReentryTurn(t *testing.T) {
	t.Run("Exploration Reentry Uses The Model", func(t *testing.T) {
		model := &fakeModelService{replies: []string{"Welcome back. How have things been since we spoke?"}}
		o := newTestOrchestrator(t, model)
		session := greetedSession(t, o)

		outcome, err := o.ReentryTurn(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, "Welcome back. How have things been since we spoke?", outcome.Reply)
		assert.Equal(t, 1, model.calls)
	})

	t.Run("Intro Reentry Is Deterministic", func(t *testing.T) {
		model := &fakeModelService{}
		o := newTestOrchestrator(t, model)
		session := greetedSession(t, o)
		advanceToScreenerIntro(t, o, session)

		outcome, err := o.ReentryTurn(context.Background(), session)
		require.NoError(t, err)
		assert.Contains(t, outcome.Reply, reentryAckText)
		assert.Equal(t, models.PhaseScreenerIntroPending, session.Phase)
	})
}
