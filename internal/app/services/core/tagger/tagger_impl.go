package tagger

import (
	"intake-service/internal/app/contracts"
	"regexp"
	"strings"
	"sync"
)

// rulesVersion identifies the lexical rule table below. Bump it whenever the
// patterns change so stored sessions record which rules produced their tags.
const rulesVersion = "lexical-v1"

type taggingRule struct {
	tag      string
	patterns []*regexp.Regexp
}

var (
	taggerInstance contracts.SymptomTagger
	onceTagger     sync.Once
)

type lexicalTagger struct {
	rules []taggingRule
}

// NewLexicalTagger returns the rule-table tagger. Matching is pure: the same
// utterance always yields the same tag set.
func NewLexicalTagger() contracts.SymptomTagger {
	onceTagger.Do(func() {
		taggerInstance = &lexicalTagger{rules: buildRules()}
	})
	return taggerInstance
}

func buildRules() []taggingRule {
	table := []struct {
		tag      string
		patterns []string
	}{
		{
			tag: "depression",
			patterns: []string{
				`depress`, `hopeless`, `worthless`, `feeling (really |so |very )?down`,
				`no (interest|motivation|energy)`, `lost interest`, `can'?t enjoy`, `feel(ing)? empty`,
			},
		},
		{
			tag: "anxiety",
			patterns: []string{
				`anxious`, `anxiety`, `panic`, `worr(y|ied|ying)`, `on edge`,
				`nervous`, `racing thoughts`, `can'?t relax`,
			},
		},
		{
			tag: "self-harm",
			patterns: []string{
				`suicid`, `kill (myself|me)`, `end (my|it) (life|all)`, `hurt(ing)? myself`,
				`self.?harm`, `better off dead`, `don'?t want to (live|be alive|wake up)`,
				`not worth living`,
			},
		},
		{
			tag: "sleep",
			patterns: []string{
				`insomnia`, `can'?t (sleep|fall asleep|stay asleep)`, `trouble sleeping`,
				`sleep(ing)? (badly|poorly|too much)`, `waking up`, `nightmares?`, `lying awake`,
			},
		},
		{
			tag: "alcohol",
			patterns: []string{
				`alcohol`, `drink(s|ing)? (too much|every|a lot|heavily)`, `drunk`,
				`hungover`, `hangover`, `blackout`,
			},
		},
		{
			tag: "trauma",
			patterns: []string{
				`trauma`, `flashbacks?`, `ptsd`, `assault`, `abus(e|ed|ive)`,
				`the accident`, `can'?t stop thinking about what happened`,
			},
		},
	}

	rules := make([]taggingRule, 0, len(table))
	for _, entry := range table {
		compiled := make([]*regexp.Regexp, 0, len(entry.patterns))
		for _, pattern := range entry.patterns {
			compiled = append(compiled, regexp.MustCompile(`(?i)`+pattern))
		}
		rules = append(rules, taggingRule{tag: entry.tag, patterns: compiled})
	}
	return rules
}

func (t *lexicalTagger) Tag(text string) map[string]bool {
	tags := make(map[string]bool)
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return tags
	}
	for _, rule := range t.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(normalized) {
				tags[rule.tag] = true
				break
			}
		}
	}
	return tags
}

func (t *lexicalTagger) RulesVersion() string {
	return rulesVersion
}
