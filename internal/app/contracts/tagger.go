package contracts

// SymptomTagger extracts coarse symptom categories from free-text respondent
// utterances. Implementations must be pure functions over a versioned rule
// table so they stay swappable for a future classifier.
type SymptomTagger interface {
	Tag(text string) map[string]bool
	RulesVersion() string
}
