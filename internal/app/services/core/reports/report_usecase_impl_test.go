package reports

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedModel struct {
	outputs []string
	errs    []error
	calls   int
}

func (m *scriptedModel) Complete(ctx context.Context, systemPrompt string, history []contracts.ModelMessage) (string, error) {
	idx := m.calls
	m.calls++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return "", m.errs[idx]
	}
	if idx < len(m.outputs) {
		return m.outputs[idx], nil
	}
	return "## Summary\nThe respondent described ongoing low mood.", nil
}

type capturingReviewQueue struct {
	tasks []*contracts.ReviewTask
}

func (q *capturingReviewQueue) PublishReviewTask(ctx context.Context, task *contracts.ReviewTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

type countingArchive struct {
	calls int
}

func (a *countingArchive) ArchiveReports(ctx context.Context, sessionID string, reports *models.SessionReports) error {
	a.calls = a.calls + 1
	return nil
}

func scoredSession() *models.Session {
	return &models.Session{
		ID:     "sess-reports",
		Status: models.SessionStatusActive,
		Phase:  models.PhaseReportPending,
		Turns: []models.ConversationTurn{
			{Role: models.TurnRoleSystem, Text: "What's been on your mind?", Timestamp: time.Now()},
			{Role: models.TurnRoleRespondent, Text: "I've been feeling down for months", Timestamp: time.Now()},
		},
		Tags: map[string]bool{"depression": true},
		Results: []models.ScreenerResult{{
			ScreenerID:   "phq9",
			ScreenerName: "Patient Health Questionnaire-9",
			TotalScore:   18,
			Severity:     "moderately severe",
			CompletedAt:  time.Now(),
		}},
		Risk: models.RiskState{Tier: models.RiskTierNone},
	}
}

func newReportFixture(model contracts.ModelService) (contracts.ReportUsecase, *capturingReviewQueue, *countingArchive) {
	queue := &capturingReviewQueue{}
	archive := &countingArchive{}
	cfg := &config.InternalConfig{
		Intake: config.Intake{ReportArchiveEnabled: true},
		Model:  config.Model{RetryBackoffInSeconds: 0},
	}
	return NewReportUsecase(zap.NewNop(), model, queue, archive, cfg), queue, archive
}

func TestSynthesizeReportsHappyPath(t *testing.T) {
	model := &scriptedModel{outputs: []string{
		"## What you shared\nYou described feeling down.\n## Questionnaires\nYou scored 18 on the questionnaire.",
		"## Screening results\nPHQ-9 total score: 18 (moderately severe).\n## Risk\nRisk tier: none.",
	}}
	usecase, queue, archive := newReportFixture(model)

	reports, err := usecase.SynthesizeReports(context.Background(), scoredSession())
	require.NoError(t, err)

	require.NotNil(t, reports.Respondent)
	require.NotNil(t, reports.Clinician)
	assert.False(t, reports.NeedsReview)
	assert.Empty(t, queue.tasks)
	assert.Equal(t, 1, archive.calls)
	assert.Equal(t, 2, model.calls, "one call per variant")

	assert.Equal(t, constvars.ReportVariantRespondent, reports.Respondent.Variant)
	assert.Len(t, reports.Respondent.Sections, 2)
	assert.Equal(t, "What you shared", reports.Respondent.Sections[0].Heading)
	assert.Equal(t, models.RiskTierNone, reports.Clinician.RiskTier)
}

func TestFabricatedScoreIsRetriedThenQueued(t *testing.T) {
	// Both respondent attempts cite a score that was never produced; the
	// clinician variant behaves.
	model := &scriptedModel{outputs: []string{
		"## Questionnaires\nYou scored 25 on the questionnaire.",
		"## Questionnaires\nYour score was 11.",
		"## Screening results\nPHQ-9 total score: 18.",
	}}
	usecase, queue, _ := newReportFixture(model)

	reports, err := usecase.SynthesizeReports(context.Background(), scoredSession())
	require.NoError(t, err)

	assert.Nil(t, reports.Respondent, "ungrounded variant must be withheld, not delivered")
	assert.NotNil(t, reports.Clinician)
	assert.True(t, reports.NeedsReview)
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, constvars.ReportVariantRespondent, queue.tasks[0].Variant)
	assert.Contains(t, queue.tasks[0].Output, "11", "review task should carry the last rejected draft")
	assert.Equal(t, 3, model.calls, "grounding violation should be retried exactly once")
}

func TestFabricatedScoreRecoveredOnRetry(t *testing.T) {
	model := &scriptedModel{outputs: []string{
		"## Questionnaires\nYou scored 25 on the questionnaire.",
		"## Questionnaires\nYou scored 18 on the questionnaire.",
		"## Screening results\nPHQ-9 total score: 18.",
	}}
	usecase, queue, _ := newReportFixture(model)

	reports, err := usecase.SynthesizeReports(context.Background(), scoredSession())
	require.NoError(t, err)

	assert.NotNil(t, reports.Respondent)
	assert.False(t, reports.NeedsReview)
	assert.Empty(t, queue.tasks)
}

func TestClinicianReportMustStateRiskTierAfterEscalation(t *testing.T) {
	session := scoredSession()
	session.Risk = models.RiskState{
		Tier:                models.RiskTierHigh,
		EscalationTriggered: true,
		SafetyAcknowledged:  true,
	}

	model := &scriptedModel{outputs: []string{
		"## What you shared\nYou described a difficult period.",
		"## Screening results\nPHQ-9 total score: 18.",
		"## Risk\nRisk tier: high. Escalation occurred during screening.",
	}}
	usecase, queue, _ := newReportFixture(model)

	reports, err := usecase.SynthesizeReports(context.Background(), session)
	require.NoError(t, err)

	assert.NotNil(t, reports.Clinician, "retry that states the tier should be accepted")
	assert.False(t, reports.NeedsReview)
	assert.Empty(t, queue.tasks)
	assert.Equal(t, models.RiskTierHigh, reports.Clinician.RiskTier)
}

func TestModelHardFailureAbortsSynthesis(t *testing.T) {
	model := &scriptedModel{errs: []error{
		exceptions.ErrModelUnavailable(nil),
		exceptions.ErrModelUnavailable(nil),
	}}
	usecase, queue, archive := newReportFixture(model)

	_, err := usecase.SynthesizeReports(context.Background(), scoredSession())
	require.Error(t, err)
	assert.True(t, exceptions.IsModelFailure(err))
	assert.Empty(t, queue.tasks)
	assert.Equal(t, 0, archive.calls, "nothing should be archived when synthesis aborts")
}

func TestValidateGrounding(t *testing.T) {
	session := scoredSession()

	t.Run("Exact Score Accepted", func(t *testing.T) {
		assert.NoError(t, validateGrounding(constvars.ReportVariantClinician, "total score: 18 out of 27", session))
	})

	t.Run("Fabricated Score Rejected", func(t *testing.T) {
		err := validateGrounding(constvars.ReportVariantRespondent, "you scored 12 overall", session)
		assert.True(t, exceptions.IsKind(err, exceptions.KindGroundingViolation))
	})

	t.Run("Fabricated Ratio Rejected", func(t *testing.T) {
		err := validateGrounding(constvars.ReportVariantRespondent, "a result of 21/27 on the questionnaire", session)
		assert.True(t, exceptions.IsKind(err, exceptions.KindGroundingViolation))
	})

	t.Run("Prose Without Scores Accepted", func(t *testing.T) {
		assert.NoError(t, validateGrounding(constvars.ReportVariantRespondent, "You described low mood and trouble at work.", session))
	})

	t.Run("Missing Risk Tier Rejected For Clinician", func(t *testing.T) {
		escalated := scoredSession()
		escalated.Risk = models.RiskState{Tier: models.RiskTierHigh, EscalationTriggered: true}
		err := validateGrounding(constvars.ReportVariantClinician, "PHQ-9 total score: 18.", escalated)
		assert.True(t, exceptions.IsKind(err, exceptions.KindGroundingViolation))
	})
}

func TestBuildReportSectionFallback(t *testing.T) {
	report := buildReport(constvars.ReportVariantRespondent, "Plain narrative without any headings.", scoredSession())
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Summary", report.Sections[0].Heading)
	assert.Equal(t, "Plain narrative without any headings.", report.Sections[0].Body)
}
