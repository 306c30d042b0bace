package reports

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"sort"
	"strings"
)

const groundingRules = `Grounding rules, all of them mandatory:
- Every factual claim must come from the FACTS block below. Invent nothing.
- Only mention questionnaire scores that appear in the FACTS block, with the
  exact numbers given there.
- If something was not assessed, write "not reported" instead of guessing.
- Do not state or imply a diagnosis.`

const respondentPromptHeader = `You are writing a warm, plain-language summary of a mental-health intake
conversation, addressed directly to the person who had it.

Structure the summary in markdown sections, each starting with "## ".
Suggested sections: "## What you shared", "## Questionnaires", "## Next steps".
Avoid clinical jargon and avoid severity labels; describe experiences in
everyday words.`

const clinicianPromptHeader = `You are writing a structured clinical intake summary for the treating
clinician, based on an automated screening conversation.

Structure the summary in markdown sections, each starting with "## ".
Suggested sections: "## Presenting concerns", "## Screening results",
"## Risk", "## Recommended follow-up".
Report every administered instrument with its exact total score and severity
band. Always state the risk tier. Note limitations of automated screening.`

// buildReportPrompt assembles the variant's system prompt with the session's
// FACTS block, the only material the narrative may draw from.
func buildReportPrompt(variant string, session *models.Session) string {
	header := respondentPromptHeader
	if variant == constvars.ReportVariantClinician {
		header = clinicianPromptHeader
	}
	return header + "\n\n" + groundingRules + "\n\nFACTS\n=====\n" + buildFacts(session)
}

func buildFacts(session *models.Session) string {
	var b strings.Builder

	b.WriteString("Risk tier: " + string(session.Risk.Tier) + "\n")
	if session.Risk.EscalationTriggered {
		b.WriteString("A safety escalation was triggered during the conversation and crisis resources were shared.\n")
	}
	if session.EndedEarly {
		b.WriteString("The respondent chose to end the intake early; coverage is partial.\n")
	}

	if len(session.Tags) > 0 {
		tags := make([]string, 0, len(session.Tags))
		for tag := range session.Tags {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		b.WriteString("Symptom areas raised: " + strings.Join(tags, ", ") + "\n")
	}

	if len(session.Results) == 0 {
		b.WriteString("Questionnaires: none completed.\n")
	} else {
		b.WriteString("Questionnaires completed:\n")
		for _, result := range session.Results {
			b.WriteString(fmt.Sprintf("- %s: total score %d, severity %q",
				result.ScreenerName, result.TotalScore, result.Severity))
			if result.ClinicalNote != "" {
				b.WriteString(". " + result.ClinicalNote)
			}
			b.WriteString("\n")
			for _, name := range sortedSubscaleNames(result) {
				b.WriteString(fmt.Sprintf("  - subscale %s: %d\n", name, result.SubscaleScores[name]))
			}
		}
	}

	b.WriteString("\nWhat the respondent said, in order:\n")
	for _, turn := range session.Turns {
		if turn.Role != models.TurnRoleRespondent {
			continue
		}
		if strings.TrimSpace(turn.Text) == constvars.TerminationToken {
			continue
		}
		b.WriteString("- " + turn.Text + "\n")
	}

	return b.String()
}

func sortedSubscaleNames(result models.ScreenerResult) []string {
	names := make([]string, 0, len(result.SubscaleScores))
	for name := range result.SubscaleScores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
