package orchestrator

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// parseModelReply normalizes a raw completion into the shape a system turn is
// allowed to have: narrative text carrying at most one question, plus any
// structured options the model emitted.
func parseModelReply(raw string) (string, []models.TurnOption) {
	narrative, options := extractOptionsBlock(raw)
	narrative = enforceSingleQuestion(strings.TrimSpace(narrative))
	return narrative, options
}

// extractOptionsBlock pulls the first [[options]] block out of the text. A
// malformed block (unclosed, or no parseable lines) degrades the turn to
// narrative-only rather than failing it.
func extractOptionsBlock(text string) (string, []models.TurnOption) {
	openAt := strings.Index(text, constvars.OptionsBlockOpen)
	if openAt < 0 {
		return text, nil
	}
	rest := text[openAt+len(constvars.OptionsBlockOpen):]
	closeAt := strings.Index(rest, constvars.OptionsBlockClose)
	if closeAt < 0 {
		return strings.TrimSpace(strings.Replace(text, constvars.OptionsBlockOpen, "", 1)), nil
	}

	body := rest[:closeAt]
	narrative := strings.TrimSpace(text[:openAt] + rest[closeAt+len(constvars.OptionsBlockClose):])

	var options []models.TurnOption
	seen := make(map[string]bool)
	for _, line := range strings.Split(body, "\n") {
		label := strings.TrimSpace(line)
		label = strings.TrimPrefix(label, "-")
		label = strings.TrimPrefix(label, "*")
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		code := slugify(label)
		if code == "" {
			code = fmt.Sprintf("option-%d", len(options)+1)
		}
		for seen[code] {
			code += "-x"
		}
		seen[code] = true
		options = append(options, models.TurnOption{Code: code, Label: label})
	}
	if len(options) == 0 {
		return narrative, nil
	}
	return narrative, options
}

// enforceSingleQuestion truncates the text at its first question mark when
// more than one is present.
func enforceSingleQuestion(text string) string {
	first := strings.Index(text, "?")
	if first < 0 {
		return text
	}
	if !strings.Contains(text[first+1:], "?") {
		return text
	}
	return strings.TrimSpace(text[:first+1])
}

func slugify(label string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(label), "-")
	return strings.Trim(slug, "-")
}
