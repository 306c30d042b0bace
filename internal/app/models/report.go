package models

import "time"

// ReportSection is one narrative section of a generated report. Every factual
// claim in Body must be traceable to the transcript or a screener result.
type ReportSection struct {
	Heading string `json:"heading" bson:"heading"`
	Body    string `json:"body" bson:"body"`
}

// Report is one of the two variants produced at session completion, immutable
// once created.
type Report struct {
	Variant     string          `json:"variant" bson:"variant"`
	Sections    []ReportSection `json:"sections" bson:"sections"`
	RiskTier    RiskTier        `json:"riskTier" bson:"riskTier"`
	GeneratedAt time.Time       `json:"generatedAt" bson:"generatedAt"`
}

// SessionReports holds both report variants for a finished session.
// NeedsReview marks output that failed grounding validation twice and was
// routed to the human-review queue instead of being delivered.
type SessionReports struct {
	Respondent  *Report `json:"respondent,omitempty" bson:"respondent,omitempty"`
	Clinician   *Report `json:"clinician,omitempty" bson:"clinician,omitempty"`
	NeedsReview bool    `json:"needsReview" bson:"needsReview"`
}
