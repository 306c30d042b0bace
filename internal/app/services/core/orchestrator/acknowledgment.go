package orchestrator

import "strings"

type acknowledgment int

const (
	ackAmbiguous acknowledgment = iota
	ackYes
	ackNo
)

var (
	affirmativePhrases = map[string]bool{
		"yes": true, "y": true, "yeah": true, "yep": true, "yup": true,
		"sure": true, "ok": true, "okay": true, "alright": true, "ready": true,
		"go ahead": true, "of course": true, "yes please": true, "sounds good": true,
		"let's do it": true, "lets do it": true, "i am": true, "i'm safe": true, "im safe": true,
	}
	negativePhrases = map[string]bool{
		"no": true, "n": true, "nope": true, "nah": true, "not now": true,
		"no thanks": true, "no thank you": true, "skip": true, "rather not": true,
		"i'd rather not": true, "id rather not": true, "not today": true, "later": true,
	}
	ambiguousPhrases = map[string]bool{
		"maybe": true, "not sure": true, "i'm not sure": true, "im not sure": true,
		"i don't know": true, "i dont know": true, "idk": true,
	}
)

// classifyAcknowledgment decides whether a free-text reply to a yes/no
// question is affirmative, negative, or neither. Anything unclassifiable is
// ambiguous and gets a re-prompt, never a guessed answer.
func classifyAcknowledgment(input string) acknowledgment {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.TrimRight(normalized, ".!,")
	if normalized == "" {
		return ackAmbiguous
	}
	if ambiguousPhrases[normalized] {
		return ackAmbiguous
	}
	if affirmativePhrases[normalized] {
		return ackYes
	}
	if negativePhrases[normalized] {
		return ackNo
	}

	words := strings.Fields(normalized)
	switch words[0] {
	case "yes", "yeah", "yep", "yup", "sure", "okay", "ok":
		return ackYes
	case "no", "nope", "nah":
		return ackNo
	}
	return ackAmbiguous
}
