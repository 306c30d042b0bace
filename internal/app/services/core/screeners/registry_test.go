package screeners

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(definition *models.ScreenerDefinition, code string) []models.ItemAnswer {
	answers := make([]models.ItemAnswer, 0, len(definition.Items))
	for _, item := range definition.Items {
		answers = append(answers, models.ItemAnswer{ItemID: item.ID, OptionCode: code})
	}
	return answers
}

func TestDefaultCatalogRegisters(t *testing.T) {
	registry, err := NewDefaultScreenerRegistry()
	require.NoError(t, err, "built-in catalog should pass registration validation")

	for _, id := range []string{ScreenerIDPHQ9, ScreenerIDGAD7, ScreenerIDCSSRS, ScreenerIDAUDITC, ScreenerIDISI, ScreenerIDPCPTSD5} {
		definition, err := registry.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, definition.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Run("Band Gap Rejected", func(t *testing.T) {
		registry := NewScreenerRegistry()
		err := registry.Register(&models.ScreenerDefinition{
			ID:      "gapped",
			Name:    "Gapped",
			Items:   []models.ScreenerItem{{ID: "g_1", Prompt: "q", Options: frequencyOptions()}},
			Scoring: models.ScoringSum,
			Bands: []models.SeverityBand{
				{Min: 0, Max: 1, Label: "low"},
				{Min: 3, Max: 3, Label: "high"},
			},
		})
		assert.Error(t, err, "bands with a gap should be rejected")
	})

	t.Run("Band Overlap Rejected", func(t *testing.T) {
		registry := NewScreenerRegistry()
		err := registry.Register(&models.ScreenerDefinition{
			ID:      "overlapped",
			Name:    "Overlapped",
			Items:   []models.ScreenerItem{{ID: "o_1", Prompt: "q", Options: frequencyOptions()}},
			Scoring: models.ScoringSum,
			Bands: []models.SeverityBand{
				{Min: 0, Max: 2, Label: "low"},
				{Min: 2, Max: 3, Label: "high"},
			},
		})
		assert.Error(t, err, "overlapping bands should be rejected")
	})

	t.Run("Duplicate Option Code Rejected", func(t *testing.T) {
		registry := NewScreenerRegistry()
		err := registry.Register(&models.ScreenerDefinition{
			ID:   "dupopt",
			Name: "Duplicate Options",
			Items: []models.ScreenerItem{{ID: "d_1", Prompt: "q", Options: []models.ScreenerOption{
				{Code: "a", Label: "A", Value: 0},
				{Code: "a", Label: "A again", Value: 1},
			}}},
			Scoring: models.ScoringSum,
			Bands:   []models.SeverityBand{{Min: 0, Max: 1, Label: "all"}},
		})
		assert.Error(t, err, "duplicate option codes within an item should be rejected")
	})

	t.Run("Duplicate Registration Rejected", func(t *testing.T) {
		registry, err := NewDefaultScreenerRegistry()
		require.NoError(t, err)
		err = registry.Register(phq9Definition())
		assert.Error(t, err)
	})
}

func TestScoreSumInstrument(t *testing.T) {
	registry, err := NewDefaultScreenerRegistry()
	require.NoError(t, err)
	definition, err := registry.Get(ScreenerIDPHQ9)
	require.NoError(t, err)

	t.Run("All Items At Value Two", func(t *testing.T) {
		result, err := registry.Score(definition, answerAll(definition, "2"))
		require.NoError(t, err)
		assert.Equal(t, 18, result.TotalScore, "nine items at value two should total eighteen")
		assert.Equal(t, "moderately severe", result.Severity)
		assert.Equal(t, 4, result.SubscaleScores["core mood"])
	})

	t.Run("All Zero", func(t *testing.T) {
		result, err := registry.Score(definition, answerAll(definition, "0"))
		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalScore)
		assert.Equal(t, "minimal", result.Severity)
	})

	t.Run("Maximum Score Lands In Last Band", func(t *testing.T) {
		result, err := registry.Score(definition, answerAll(definition, "3"))
		require.NoError(t, err)
		assert.Equal(t, 27, result.TotalScore)
		assert.Equal(t, "severe", result.Severity)
	})

	t.Run("Missing Answer Rejected", func(t *testing.T) {
		answers := answerAll(definition, "1")
		_, err := registry.Score(definition, answers[:len(answers)-1])
		assert.True(t, exceptions.IsKind(err, exceptions.KindScreenerInput), "incomplete answer set should raise a screener-input error")
	})

	t.Run("Duplicate Answer Rejected", func(t *testing.T) {
		answers := answerAll(definition, "1")
		answers = append(answers, answers[0])
		_, err := registry.Score(definition, answers)
		assert.True(t, exceptions.IsKind(err, exceptions.KindScreenerInput))
	})

	t.Run("Unknown Option Rejected", func(t *testing.T) {
		answers := answerAll(definition, "1")
		answers[3].OptionCode = "7"
		_, err := registry.Score(definition, answers)
		assert.True(t, exceptions.IsKind(err, exceptions.KindScreenerInput))
	})

	t.Run("Scoring Is Deterministic", func(t *testing.T) {
		answers := answerAll(definition, "2")
		first, err := registry.Score(definition, answers)
		require.NoError(t, err)
		second, err := registry.Score(definition, answers)
		require.NoError(t, err)
		assert.Equal(t, first.TotalScore, second.TotalScore)
		assert.Equal(t, first.Severity, second.Severity)
	})
}

func TestScoreWeightedSumInstrument(t *testing.T) {
	registry := NewScreenerRegistry()
	definition := &models.ScreenerDefinition{
		ID:   "weighted",
		Name: "Weighted Demo",
		Items: []models.ScreenerItem{
			{ID: "w_1", Prompt: "q1", Options: frequencyOptions(), Weight: 2},
			{ID: "w_2", Prompt: "q2", Options: frequencyOptions()},
		},
		Scoring: models.ScoringWeightedSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 4, Label: "low"},
			{Min: 5, Max: 9, Label: "high"},
		},
	}
	require.NoError(t, registry.Register(definition))

	result, err := registry.Score(definition, []models.ItemAnswer{
		{ItemID: "w_1", OptionCode: "2"},
		{ItemID: "w_2", OptionCode: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalScore, "weighted item should count double")
	assert.Equal(t, "high", result.Severity)
}

func TestScoreRuleBasedInstrument(t *testing.T) {
	registry, err := NewDefaultScreenerRegistry()
	require.NoError(t, err)
	definition, err := registry.Get(ScreenerIDCSSRS)
	require.NoError(t, err)

	t.Run("Partial Prefix Accepted", func(t *testing.T) {
		result, err := registry.Score(definition, []models.ItemAnswer{
			{ItemID: "cssrs_1", OptionCode: "no"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalScore)
		assert.Equal(t, "none", result.Severity)
	})

	t.Run("Highest Answer Dominates", func(t *testing.T) {
		result, err := registry.Score(definition, []models.ItemAnswer{
			{ItemID: "cssrs_1", OptionCode: "yes"},
			{ItemID: "cssrs_2", OptionCode: "yes"},
			{ItemID: "cssrs_3", OptionCode: "yes"},
		})
		require.NoError(t, err)
		assert.Equal(t, 4, result.TotalScore)
		assert.Equal(t, "high", result.Severity)
	})

	t.Run("Empty Answer Set Rejected", func(t *testing.T) {
		_, err := registry.Score(definition, nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindScreenerInput))
	})
}

func TestRecommendOrdering(t *testing.T) {
	registry, err := NewDefaultScreenerRegistry()
	require.NoError(t, err)

	t.Run("Safety Instrument First", func(t *testing.T) {
		ids := registry.Recommend(map[string]bool{TagDepression: true, TagSelfHarm: true})
		require.NotEmpty(t, ids)
		assert.Equal(t, ScreenerIDCSSRS, ids[0], "safety-related screener must lead the queue")
		assert.Contains(t, ids, ScreenerIDPHQ9)
	})

	t.Run("No Matching Tags", func(t *testing.T) {
		ids := registry.Recommend(map[string]bool{"appetite": true})
		assert.Empty(t, ids)
	})

	t.Run("Specificity Breaks Ties", func(t *testing.T) {
		ids := registry.Recommend(map[string]bool{TagDepression: true, TagSleep: true})
		require.NotEmpty(t, ids)
		assert.Equal(t, ScreenerIDPHQ9, ids[0], "two matched tags should outrank one")
		assert.Contains(t, ids, ScreenerIDISI)
	})

	t.Run("Deterministic Across Calls", func(t *testing.T) {
		tags := map[string]bool{TagDepression: true, TagAnxiety: true, TagSleep: true, TagSelfHarm: true}
		first := registry.Recommend(tags)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, registry.Recommend(tags), fmt.Sprintf("iteration %d should match", i))
		}
	})
}
