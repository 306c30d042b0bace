package screeners

import (
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
)

const (
	ScreenerIDPHQ9    = "phq9"
	ScreenerIDGAD7    = "gad7"
	ScreenerIDCSSRS   = "cssrs"
	ScreenerIDAUDITC  = "auditc"
	ScreenerIDISI     = "isi"
	ScreenerIDPCPTSD5 = "pcptsd5"
)

const (
	TagDepression = "depression"
	TagAnxiety    = "anxiety"
	TagSelfHarm   = "self-harm"
	TagAlcohol    = "alcohol"
	TagSleep      = "sleep"
	TagTrauma     = "trauma"
)

// NewDefaultScreenerRegistry builds a registry pre-loaded with the built-in
// instrument catalog.
func NewDefaultScreenerRegistry() (contracts.ScreenerRegistry, error) {
	registry := NewScreenerRegistry()
	for _, definition := range []*models.ScreenerDefinition{
		cssrsDefinition(),
		phq9Definition(),
		gad7Definition(),
		auditcDefinition(),
		isiDefinition(),
		pcptsd5Definition(),
	} {
		if err := registry.Register(definition); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func frequencyOptions() []models.ScreenerOption {
	return []models.ScreenerOption{
		{Code: "0", Label: "Not at all", Value: 0},
		{Code: "1", Label: "Several days", Value: 1},
		{Code: "2", Label: "More than half the days", Value: 2},
		{Code: "3", Label: "Nearly every day", Value: 3},
	}
}

func yesNoOptions(yesValue int) []models.ScreenerOption {
	return []models.ScreenerOption{
		{Code: "no", Label: "No", Value: 0},
		{Code: "yes", Label: "Yes", Value: yesValue},
	}
}

func phq9Definition() *models.ScreenerDefinition {
	prompts := []string{
		"Over the last two weeks, how often have you been bothered by little interest or pleasure in doing things?",
		"How often have you been feeling down, depressed, or hopeless?",
		"How often have you had trouble falling or staying asleep, or sleeping too much?",
		"How often have you been feeling tired or having little energy?",
		"How often have you had a poor appetite or been overeating?",
		"How often have you been feeling bad about yourself, or that you are a failure or have let yourself or your family down?",
		"How often have you had trouble concentrating on things, such as reading or watching television?",
		"How often have you been moving or speaking so slowly that other people could have noticed, or the opposite, being so fidgety or restless that you have been moving around a lot more than usual?",
		"How often have you had thoughts that you would be better off dead or of hurting yourself in some way?",
	}
	items := make([]models.ScreenerItem, len(prompts))
	for i, prompt := range prompts {
		items[i] = models.ScreenerItem{
			ID:      itemID("phq9", i+1),
			Prompt:  prompt,
			Options: frequencyOptions(),
		}
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDPHQ9,
		Name:    "Patient Health Questionnaire-9",
		Intro:   "a short questionnaire about mood over the last two weeks",
		Items:   items,
		Scoring: models.ScoringSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 4, Label: "minimal", ClinicalNote: "Minimal depressive symptoms."},
			{Min: 5, Max: 9, Label: "mild", ClinicalNote: "Mild depressive symptoms, watchful waiting advised."},
			{Min: 10, Max: 14, Label: "moderate", ClinicalNote: "Moderate depressive symptoms, treatment plan should be considered."},
			{Min: 15, Max: 19, Label: "moderately severe", ClinicalNote: "Moderately severe depressive symptoms, active treatment indicated."},
			{Min: 20, Max: 27, Label: "severe", ClinicalNote: "Severe depressive symptoms, immediate treatment initiation indicated."},
		},
		Subscales: []models.SubscaleDefinition{
			{Name: "core mood", ItemIDs: []string{itemID("phq9", 1), itemID("phq9", 2)}},
		},
		TargetTags: []string{TagDepression, TagSleep},
	}
}

func gad7Definition() *models.ScreenerDefinition {
	prompts := []string{
		"Over the last two weeks, how often have you been bothered by feeling nervous, anxious, or on edge?",
		"How often have you not been able to stop or control worrying?",
		"How often have you been worrying too much about different things?",
		"How often have you had trouble relaxing?",
		"How often have you been so restless that it is hard to sit still?",
		"How often have you been becoming easily annoyed or irritable?",
		"How often have you been feeling afraid, as if something awful might happen?",
	}
	items := make([]models.ScreenerItem, len(prompts))
	for i, prompt := range prompts {
		items[i] = models.ScreenerItem{
			ID:      itemID("gad7", i+1),
			Prompt:  prompt,
			Options: frequencyOptions(),
		}
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDGAD7,
		Name:    "Generalized Anxiety Disorder-7",
		Intro:   "a short questionnaire about worry and anxiety over the last two weeks",
		Items:   items,
		Scoring: models.ScoringSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 4, Label: "minimal", ClinicalNote: "Minimal anxiety symptoms."},
			{Min: 5, Max: 9, Label: "mild", ClinicalNote: "Mild anxiety symptoms."},
			{Min: 10, Max: 14, Label: "moderate", ClinicalNote: "Moderate anxiety symptoms, further evaluation recommended."},
			{Min: 15, Max: 21, Label: "severe", ClinicalNote: "Severe anxiety symptoms, active treatment indicated."},
		},
		TargetTags: []string{TagAnxiety},
	}
}

// cssrsDefinition is the safety instrument driving the risk branch. Option
// values rank ideation intensity so the rule-based score maps directly onto
// the risk tiers.
func cssrsDefinition() *models.ScreenerDefinition {
	prompts := []string{
		"In the past month, have you wished you were dead or wished you could go to sleep and not wake up?",
		"In the past month, have you actually had any thoughts of killing yourself?",
		"Have you been thinking about how you might do this?",
		"Have you had these thoughts and had some intention of acting on them?",
		"Have you started to work out or worked out the details of how to kill yourself, and do you intend to carry out this plan?",
		"In the past three months, have you done anything, started to do anything, or prepared to do anything to end your life?",
	}
	yesValues := []int{1, 2, 4, 4, 4, 4}
	items := make([]models.ScreenerItem, len(prompts))
	for i, prompt := range prompts {
		items[i] = models.ScreenerItem{
			ID:      itemID("cssrs", i+1),
			Prompt:  prompt,
			Options: yesNoOptions(yesValues[i]),
		}
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDCSSRS,
		Name:    "Columbia Suicide Severity Rating Scale (Screen)",
		Intro:   "a few direct questions about safety, asked word for word",
		Items:   items,
		Scoring: models.ScoringRuleBased,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 0, Label: "none", ClinicalNote: "No ideation endorsed."},
			{Min: 1, Max: 1, Label: "low", ClinicalNote: "Passive ideation only."},
			{Min: 2, Max: 3, Label: "moderate", ClinicalNote: "Active ideation without plan or intent."},
			{Min: 4, Max: 4, Label: "high", ClinicalNote: "Method, intent, plan, or recent behavior endorsed."},
		},
		TargetTags:    []string{TagSelfHarm},
		SafetyRelated: true,
	}
}

func auditcDefinition() *models.ScreenerDefinition {
	items := []models.ScreenerItem{
		{
			ID:     itemID("auditc", 1),
			Prompt: "How often do you have a drink containing alcohol?",
			Options: []models.ScreenerOption{
				{Code: "0", Label: "Never", Value: 0},
				{Code: "1", Label: "Monthly or less", Value: 1},
				{Code: "2", Label: "Two to four times a month", Value: 2},
				{Code: "3", Label: "Two to three times a week", Value: 3},
				{Code: "4", Label: "Four or more times a week", Value: 4},
			},
		},
		{
			ID:     itemID("auditc", 2),
			Prompt: "How many standard drinks containing alcohol do you have on a typical day when you are drinking?",
			Options: []models.ScreenerOption{
				{Code: "0", Label: "One or two", Value: 0},
				{Code: "1", Label: "Three or four", Value: 1},
				{Code: "2", Label: "Five or six", Value: 2},
				{Code: "3", Label: "Seven to nine", Value: 3},
				{Code: "4", Label: "Ten or more", Value: 4},
			},
		},
		{
			ID:     itemID("auditc", 3),
			Prompt: "How often do you have six or more drinks on one occasion?",
			Options: []models.ScreenerOption{
				{Code: "0", Label: "Never", Value: 0},
				{Code: "1", Label: "Less than monthly", Value: 1},
				{Code: "2", Label: "Monthly", Value: 2},
				{Code: "3", Label: "Weekly", Value: 3},
				{Code: "4", Label: "Daily or almost daily", Value: 4},
			},
		},
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDAUDITC,
		Name:    "Alcohol Use Disorders Identification Test-Concise",
		Intro:   "three brief questions about alcohol use",
		Items:   items,
		Scoring: models.ScoringSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 2, Label: "low risk", ClinicalNote: "Drinking pattern below screening threshold."},
			{Min: 3, Max: 7, Label: "positive screen", ClinicalNote: "Positive screen, brief intervention recommended."},
			{Min: 8, Max: 12, Label: "high risk", ClinicalNote: "High-risk drinking pattern, full assessment recommended."},
		},
		TargetTags: []string{TagAlcohol},
	}
}

func isiDefinition() *models.ScreenerDefinition {
	severityOptions := []models.ScreenerOption{
		{Code: "0", Label: "None", Value: 0},
		{Code: "1", Label: "Mild", Value: 1},
		{Code: "2", Label: "Moderate", Value: 2},
		{Code: "3", Label: "Severe", Value: 3},
		{Code: "4", Label: "Very severe", Value: 4},
	}
	agreementOptions := []models.ScreenerOption{
		{Code: "0", Label: "Not at all", Value: 0},
		{Code: "1", Label: "A little", Value: 1},
		{Code: "2", Label: "Somewhat", Value: 2},
		{Code: "3", Label: "Much", Value: 3},
		{Code: "4", Label: "Very much", Value: 4},
	}
	items := []models.ScreenerItem{
		{ID: itemID("isi", 1), Prompt: "How severe has your difficulty falling asleep been over the last two weeks?", Options: severityOptions},
		{ID: itemID("isi", 2), Prompt: "How severe has your difficulty staying asleep been over the last two weeks?", Options: severityOptions},
		{ID: itemID("isi", 3), Prompt: "How severe has your problem with waking up too early been?", Options: severityOptions},
		{ID: itemID("isi", 4), Prompt: "How satisfied or dissatisfied are you with your current sleep pattern?", Options: []models.ScreenerOption{
			{Code: "0", Label: "Very satisfied", Value: 0},
			{Code: "1", Label: "Satisfied", Value: 1},
			{Code: "2", Label: "Moderately satisfied", Value: 2},
			{Code: "3", Label: "Dissatisfied", Value: 3},
			{Code: "4", Label: "Very dissatisfied", Value: 4},
		}},
		{ID: itemID("isi", 5), Prompt: "How noticeable to others do you think your sleep problem is in terms of impairing the quality of your life?", Options: agreementOptions},
		{ID: itemID("isi", 6), Prompt: "How worried or distressed are you about your current sleep problem?", Options: agreementOptions},
		{ID: itemID("isi", 7), Prompt: "To what extent do you consider your sleep problem to interfere with your daily functioning?", Options: agreementOptions},
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDISI,
		Name:    "Insomnia Severity Index",
		Intro:   "a short questionnaire about your sleep over the last two weeks",
		Items:   items,
		Scoring: models.ScoringSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 7, Label: "no clinically significant insomnia", ClinicalNote: "Sleep difficulty below clinical threshold."},
			{Min: 8, Max: 14, Label: "subthreshold insomnia", ClinicalNote: "Subthreshold insomnia, monitor."},
			{Min: 15, Max: 21, Label: "moderate insomnia", ClinicalNote: "Clinical insomnia of moderate severity."},
			{Min: 22, Max: 28, Label: "severe insomnia", ClinicalNote: "Clinical insomnia, severe."},
		},
		TargetTags: []string{TagSleep},
	}
}

func pcptsd5Definition() *models.ScreenerDefinition {
	prompts := []string{
		"In the past month, have you had nightmares about the event or thought about it when you did not want to?",
		"Have you tried hard not to think about the event or went out of your way to avoid situations that reminded you of it?",
		"Have you been constantly on guard, watchful, or easily startled?",
		"Have you felt numb or detached from people, activities, or your surroundings?",
		"Have you felt guilty or unable to stop blaming yourself or others for the event or any problems the event may have caused?",
	}
	items := make([]models.ScreenerItem, len(prompts))
	for i, prompt := range prompts {
		items[i] = models.ScreenerItem{
			ID:      itemID("pcptsd5", i+1),
			Prompt:  prompt,
			Options: yesNoOptions(1),
		}
	}
	return &models.ScreenerDefinition{
		ID:      ScreenerIDPCPTSD5,
		Name:    "Primary Care PTSD Screen for DSM-5",
		Intro:   "five yes-or-no questions about reactions to stressful experiences",
		Items:   items,
		Scoring: models.ScoringSum,
		Bands: []models.SeverityBand{
			{Min: 0, Max: 2, Label: "negative screen", ClinicalNote: "Below the probe threshold for PTSD."},
			{Min: 3, Max: 5, Label: "positive screen", ClinicalNote: "Positive screen, structured PTSD assessment recommended."},
		},
		TargetTags: []string{TagTrauma},
	}
}

func itemID(prefix string, n int) string {
	return fmt.Sprintf("%s_%d", prefix, n)
}
