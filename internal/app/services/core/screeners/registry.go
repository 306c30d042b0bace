package screeners

import (
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/exceptions"
	"math"
	"sort"
	"time"
)

type screenerRegistry struct {
	definitions map[string]*models.ScreenerDefinition
	order       []string
}

// NewScreenerRegistry returns an empty registry. Registration happens once at
// startup; afterwards the registry is read-only and shared across sessions
// without locking.
func NewScreenerRegistry() contracts.ScreenerRegistry {
	return &screenerRegistry{
		definitions: make(map[string]*models.ScreenerDefinition),
	}
}

func (r *screenerRegistry) Register(definition *models.ScreenerDefinition) error {
	if definition.ID == "" || len(definition.Items) == 0 {
		return fmt.Errorf("screener definition must have an id and at least one item")
	}
	if _, exists := r.definitions[definition.ID]; exists {
		return fmt.Errorf("screener %s already registered", definition.ID)
	}

	itemIDs := make(map[string]bool, len(definition.Items))
	for _, item := range definition.Items {
		if len(item.Options) == 0 {
			return fmt.Errorf("screener %s item %s has no options", definition.ID, item.ID)
		}
		if itemIDs[item.ID] {
			return fmt.Errorf("screener %s has duplicate item id %s", definition.ID, item.ID)
		}
		itemIDs[item.ID] = true

		optionCodes := make(map[string]bool, len(item.Options))
		for _, option := range item.Options {
			if optionCodes[option.Code] {
				return fmt.Errorf("screener %s item %s has duplicate option code %s", definition.ID, item.ID, option.Code)
			}
			optionCodes[option.Code] = true
		}
	}

	for _, subscale := range definition.Subscales {
		for _, itemID := range subscale.ItemIDs {
			if !itemIDs[itemID] {
				return fmt.Errorf("screener %s subscale %s references unknown item %s", definition.ID, subscale.Name, itemID)
			}
		}
	}

	minScore, maxScore := scoreRange(definition)
	if err := validateBands(definition.Bands, minScore, maxScore); err != nil {
		return fmt.Errorf("screener %s: %w", definition.ID, err)
	}

	r.definitions[definition.ID] = definition
	r.order = append(r.order, definition.ID)
	return nil
}

func (r *screenerRegistry) Get(screenerID string) (*models.ScreenerDefinition, error) {
	definition, ok := r.definitions[screenerID]
	if !ok {
		return nil, exceptions.ErrScreenerNotFound(nil, screenerID)
	}
	return definition, nil
}

// Recommend orders matching screeners deterministically: safety-related
// instruments first, then by number of matched target tags, ties broken by
// registration order.
func (r *screenerRegistry) Recommend(tags map[string]bool) []string {
	type candidate struct {
		id       string
		safety   bool
		matched  int
		regOrder int
	}

	var candidates []candidate
	for i, id := range r.order {
		definition := r.definitions[id]
		matched := 0
		for _, tag := range definition.TargetTags {
			if tags[tag] {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		candidates = append(candidates, candidate{
			id:       id,
			safety:   definition.SafetyRelated,
			matched:  matched,
			regOrder: i,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].safety != candidates[b].safety {
			return candidates[a].safety
		}
		if candidates[a].matched != candidates[b].matched {
			return candidates[a].matched > candidates[b].matched
		}
		return candidates[a].regOrder < candidates[b].regOrder
	})

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.id)
	}
	return ids
}

// Score is pure and total over valid answer sets. Sum and weighted-sum
// definitions require exactly one answer per item; rule-based definitions
// accept a partial prefix because their branching can close early.
func (r *screenerRegistry) Score(definition *models.ScreenerDefinition, answers []models.ItemAnswer) (*models.ScreenerResult, error) {
	items := make(map[string]*models.ScreenerItem, len(definition.Items))
	for i := range definition.Items {
		items[definition.Items[i].ID] = &definition.Items[i]
	}

	answered := make(map[string]int, len(answers))
	validated := make([]models.ItemAnswer, 0, len(answers))
	for _, answer := range answers {
		item, ok := items[answer.ItemID]
		if !ok {
			return nil, exceptions.ErrScreenerInvalidAnswer(fmt.Errorf("unknown item %s for screener %s", answer.ItemID, definition.ID))
		}
		if _, dup := answered[answer.ItemID]; dup {
			return nil, exceptions.ErrScreenerDuplicateAnswer(fmt.Errorf("item %s answered twice", answer.ItemID))
		}
		option := findOption(item, answer.OptionCode)
		if option == nil {
			return nil, exceptions.ErrScreenerInvalidAnswer(fmt.Errorf("option %s not valid for item %s", answer.OptionCode, answer.ItemID))
		}
		answered[answer.ItemID] = option.Value
		validated = append(validated, models.ItemAnswer{
			ItemID:     answer.ItemID,
			OptionCode: answer.OptionCode,
			Value:      option.Value,
		})
	}

	if definition.Scoring != models.ScoringRuleBased && len(answered) != len(definition.Items) {
		return nil, exceptions.ErrScreenerInvalidAnswer(fmt.Errorf("expected %d answers, got %d", len(definition.Items), len(answered)))
	}
	if len(validated) == 0 {
		return nil, exceptions.ErrScreenerInvalidAnswer(fmt.Errorf("no answers provided for screener %s", definition.ID))
	}

	total := computeTotal(definition, answered)
	band := resolveBand(definition.Bands, total)
	if band == nil {
		return nil, exceptions.ErrScreenerInvalidAnswer(fmt.Errorf("score %d outside severity bands of screener %s", total, definition.ID))
	}

	result := &models.ScreenerResult{
		ScreenerID:   definition.ID,
		ScreenerName: definition.Name,
		Answers:      validated,
		TotalScore:   total,
		Severity:     band.Label,
		ClinicalNote: band.ClinicalNote,
		CompletedAt:  time.Now().UTC(),
	}

	if len(definition.Subscales) > 0 {
		result.SubscaleScores = make(map[string]int, len(definition.Subscales))
		for _, subscale := range definition.Subscales {
			sum := 0
			for _, itemID := range subscale.ItemIDs {
				sum += answered[itemID]
			}
			result.SubscaleScores[subscale.Name] = sum
		}
	}

	return result, nil
}

func findOption(item *models.ScreenerItem, code string) *models.ScreenerOption {
	for i := range item.Options {
		if item.Options[i].Code == code {
			return &item.Options[i]
		}
	}
	return nil
}

func computeTotal(definition *models.ScreenerDefinition, answered map[string]int) int {
	switch definition.Scoring {
	case models.ScoringWeightedSum:
		total := 0.0
		for _, item := range definition.Items {
			weight := item.Weight
			if weight == 0 {
				weight = 1
			}
			total += weight * float64(answered[item.ID])
		}
		return int(math.Round(total))
	case models.ScoringRuleBased:
		// Branching instruments score by the highest-severity answer given.
		highest := 0
		for _, value := range answered {
			if value > highest {
				highest = value
			}
		}
		return highest
	default:
		total := 0
		for _, value := range answered {
			total += value
		}
		return total
	}
}

func resolveBand(bands []models.SeverityBand, score int) *models.SeverityBand {
	for i := range bands {
		if score >= bands[i].Min && score <= bands[i].Max {
			return &bands[i]
		}
	}
	return nil
}

func scoreRange(definition *models.ScreenerDefinition) (int, int) {
	switch definition.Scoring {
	case models.ScoringRuleBased:
		lowest, highest := math.MaxInt, 0
		for _, item := range definition.Items {
			for _, option := range item.Options {
				if option.Value < lowest {
					lowest = option.Value
				}
				if option.Value > highest {
					highest = option.Value
				}
			}
		}
		if lowest == math.MaxInt {
			lowest = 0
		}
		// The rule can resolve to zero when every answer is the lowest value.
		if lowest > 0 {
			lowest = 0
		}
		return lowest, highest
	case models.ScoringWeightedSum:
		minTotal, maxTotal := 0.0, 0.0
		for _, item := range definition.Items {
			weight := item.Weight
			if weight == 0 {
				weight = 1
			}
			lowest, highest := optionValueRange(item)
			minTotal += weight * float64(lowest)
			maxTotal += weight * float64(highest)
		}
		return int(math.Round(minTotal)), int(math.Round(maxTotal))
	default:
		minTotal, maxTotal := 0, 0
		for _, item := range definition.Items {
			lowest, highest := optionValueRange(item)
			minTotal += lowest
			maxTotal += highest
		}
		return minTotal, maxTotal
	}
}

func optionValueRange(item models.ScreenerItem) (int, int) {
	lowest, highest := item.Options[0].Value, item.Options[0].Value
	for _, option := range item.Options[1:] {
		if option.Value < lowest {
			lowest = option.Value
		}
		if option.Value > highest {
			highest = option.Value
		}
	}
	return lowest, highest
}

// validateBands requires the bands to partition [minScore, maxScore] exactly,
// in order, with no gaps or overlaps.
func validateBands(bands []models.SeverityBand, minScore, maxScore int) error {
	if len(bands) == 0 {
		return fmt.Errorf("no severity bands defined")
	}
	if bands[0].Min != minScore {
		return fmt.Errorf("first band starts at %d, score range starts at %d", bands[0].Min, minScore)
	}
	for i, band := range bands {
		if band.Max < band.Min {
			return fmt.Errorf("band %q has max below min", band.Label)
		}
		if i > 0 && band.Min != bands[i-1].Max+1 {
			return fmt.Errorf("band %q does not start immediately after %q", band.Label, bands[i-1].Label)
		}
	}
	if bands[len(bands)-1].Max != maxScore {
		return fmt.Errorf("last band ends at %d, score range ends at %d", bands[len(bands)-1].Max, maxScore)
	}
	return nil
}
