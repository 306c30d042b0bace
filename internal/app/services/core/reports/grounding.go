package reports

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"regexp"
	"strconv"
	"strings"
)

var (
	// scoreReferencePattern catches phrasings like "scored 18", "a score of
	// 18", "total score: 18", "score was 18".
	scoreReferencePattern = regexp.MustCompile(`(?i)\bscored?\b(?:\s+\w+){0,2}?[\s:]+(\d+)`)
	// ratioPattern catches "18/27" and "18 out of 27".
	ratioPattern = regexp.MustCompile(`(\d+)\s*(?:/|out of)\s*\d+`)
)

// validateGrounding checks a generated narrative against the session record.
// Any questionnaire score the text references must exist in the session's
// results, and the clinician variant must state the risk tier whenever an
// escalation occurred.
func validateGrounding(variant, output string, session *models.Session) error {
	allowed := allowedScores(session)

	for _, match := range scoreReferencePattern.FindAllStringSubmatch(output, -1) {
		if err := checkScoreReference(match[1], allowed); err != nil {
			return err
		}
	}
	for _, match := range ratioPattern.FindAllStringSubmatch(output, -1) {
		if err := checkScoreReference(match[1], allowed); err != nil {
			return err
		}
	}

	if variant == constvars.ReportVariantClinician && session.Risk.EscalationTriggered {
		if !strings.Contains(strings.ToLower(output), string(session.Risk.Tier)) {
			return exceptions.ErrGroundingViolation(fmt.Errorf("clinician report omits risk tier %s after escalation", session.Risk.Tier))
		}
	}
	return nil
}

func checkScoreReference(raw string, allowed map[int]bool) error {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if !allowed[value] {
		return exceptions.ErrGroundingViolation(fmt.Errorf("narrative references score %d absent from session results", value))
	}
	return nil
}

func allowedScores(session *models.Session) map[int]bool {
	allowed := make(map[int]bool)
	for _, result := range session.Results {
		allowed[result.TotalScore] = true
		for _, score := range result.SubscaleScores {
			allowed[score] = true
		}
	}
	return allowed
}
