package contracts

import "intake-service/internal/app/models"

// ScreenerRegistry indexes all screener definitions and resolves scoring.
// It is read-only after startup and safely shared across sessions.
type ScreenerRegistry interface {
	Register(definition *models.ScreenerDefinition) error
	Get(screenerID string) (*models.ScreenerDefinition, error)
	// Recommend returns screener ids for the given tag set in deterministic
	// priority order: safety-related screeners first, then by tag-to-screener
	// specificity, ties broken by registration order.
	Recommend(tags map[string]bool) []string
	// Score is pure and total: every valid answer set produces a defined
	// result, malformed answers raise a screener-input error.
	Score(definition *models.ScreenerDefinition, answers []models.ItemAnswer) (*models.ScreenerResult, error)
}
