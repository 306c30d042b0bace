package orchestrator

import (
	"intake-service/internal/app/models"
	"strings"
)

// resolveOption maps free-form respondent input onto one of the item's
// options. Matching is tried from most to least exact: option code, full
// label, yes/no classification for binary items, then a unique label prefix.
// A nil return means the input is not reducible and the item must be
// re-asked.
func resolveOption(item *models.ScreenerItem, input string) *models.ScreenerOption {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.TrimRight(normalized, ".!,")
	if normalized == "" {
		return nil
	}

	for i := range item.Options {
		if strings.EqualFold(item.Options[i].Code, normalized) {
			return &item.Options[i]
		}
	}
	for i := range item.Options {
		if strings.EqualFold(item.Options[i].Label, normalized) {
			return &item.Options[i]
		}
	}

	if option := resolveBinary(item, normalized); option != nil {
		return option
	}

	var match *models.ScreenerOption
	if len(normalized) >= 3 {
		for i := range item.Options {
			if strings.HasPrefix(strings.ToLower(item.Options[i].Label), normalized) {
				if match != nil {
					return nil
				}
				match = &item.Options[i]
			}
		}
	}
	return match
}

// resolveBinary handles yes/no items where respondents rarely echo the exact
// label.
func resolveBinary(item *models.ScreenerItem, normalized string) *models.ScreenerOption {
	var yesOption, noOption *models.ScreenerOption
	for i := range item.Options {
		switch strings.ToLower(item.Options[i].Code) {
		case "yes":
			yesOption = &item.Options[i]
		case "no":
			noOption = &item.Options[i]
		}
	}
	if yesOption == nil || noOption == nil {
		return nil
	}
	switch classifyAcknowledgment(normalized) {
	case ackYes:
		return yesOption
	case ackNo:
		return noOption
	}
	return nil
}
