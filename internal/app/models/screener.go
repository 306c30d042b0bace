package models

import "time"

type ScoringMethod string

const (
	ScoringSum         ScoringMethod = "sum"
	ScoringWeightedSum ScoringMethod = "weighted_sum"
	ScoringRuleBased   ScoringMethod = "rule_based"
)

// ScreenerOption is one selectable answer for a screener item. Code is the
// stable short code round-tripped by clients, Value the numeric contribution
// to the score.
type ScreenerOption struct {
	Code  string `json:"code" bson:"code"`
	Label string `json:"label" bson:"label"`
	Value int    `json:"value" bson:"value"`
}

// ScreenerItem is a single question of a screener. Weight only applies under
// weighted-sum scoring and defaults to 1.
type ScreenerItem struct {
	ID      string           `json:"id" bson:"id"`
	Prompt  string           `json:"prompt" bson:"prompt"`
	Options []ScreenerOption `json:"options" bson:"options"`
	Weight  float64          `json:"weight,omitempty" bson:"weight,omitempty"`
}

// SeverityBand maps an inclusive score range onto a clinical-significance
// label. Bands of a definition must partition the full score range.
type SeverityBand struct {
	Min          int    `json:"min" bson:"min"`
	Max          int    `json:"max" bson:"max"`
	Label        string `json:"label" bson:"label"`
	ClinicalNote string `json:"clinicalNote,omitempty" bson:"clinicalNote,omitempty"`
}

// SubscaleDefinition scores a subset of items separately from the total.
type SubscaleDefinition struct {
	Name    string         `json:"name" bson:"name"`
	ItemIDs []string       `json:"itemIds" bson:"itemIds"`
	Bands   []SeverityBand `json:"bands,omitempty" bson:"bands,omitempty"`
}

// ScreenerDefinition is the immutable declarative specification of one
// standardized instrument, loaded into the registry at startup.
type ScreenerDefinition struct {
	ID            string               `json:"id" bson:"id"`
	Name          string               `json:"name" bson:"name"`
	Intro         string               `json:"intro" bson:"intro"`
	Items         []ScreenerItem       `json:"items" bson:"items"`
	Scoring       ScoringMethod        `json:"scoring" bson:"scoring"`
	Bands         []SeverityBand       `json:"bands" bson:"bands"`
	Subscales     []SubscaleDefinition `json:"subscales,omitempty" bson:"subscales,omitempty"`
	TargetTags    []string             `json:"targetTags" bson:"targetTags"`
	SafetyRelated bool                 `json:"safetyRelated" bson:"safetyRelated"`
}

// ItemAnswer records the selected option for one item.
type ItemAnswer struct {
	ItemID     string `json:"itemId" bson:"itemId"`
	OptionCode string `json:"optionCode" bson:"optionCode"`
	Value      int    `json:"value" bson:"value"`
}

// ScreenerResult is created when the last item of a screener is answered and
// is immutable afterwards.
type ScreenerResult struct {
	ScreenerID     string         `json:"screenerId" bson:"screenerId"`
	ScreenerName   string         `json:"screenerName" bson:"screenerName"`
	Answers        []ItemAnswer   `json:"answers" bson:"answers"`
	TotalScore     int            `json:"totalScore" bson:"totalScore"`
	SubscaleScores map[string]int `json:"subscaleScores,omitempty" bson:"subscaleScores,omitempty"`
	Severity       string         `json:"severity" bson:"severity"`
	ClinicalNote   string         `json:"clinicalNote,omitempty" bson:"clinicalNote,omitempty"`
	CompletedAt    time.Time      `json:"completedAt" bson:"completedAt"`
}
