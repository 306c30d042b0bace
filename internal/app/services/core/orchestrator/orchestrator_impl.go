package orchestrator

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/screeners"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"strings"
	"time"

	"go.uber.org/zap"
)

// mandatoryRiskThreshold is the item index past which the risk branch can no
// longer be abandoned: once active ideation was endorsed, the remaining items
// must be answered.
const mandatoryRiskThreshold = 2

type conversationOrchestrator struct {
	Log            *zap.Logger
	registry       contracts.ScreenerRegistry
	riskEngine     contracts.RiskEngine
	tagger         contracts.SymptomTagger
	modelService   contracts.ModelService
	internalConfig *config.InternalConfig
}

func NewConversationOrchestrator(
	logger *zap.Logger,
	registry contracts.ScreenerRegistry,
	riskEngine contracts.RiskEngine,
	symptomTagger contracts.SymptomTagger,
	modelService contracts.ModelService,
	internalConfig *config.InternalConfig,
) contracts.ConversationOrchestrator {
	return &conversationOrchestrator{
		Log:            logger,
		registry:       registry,
		riskEngine:     riskEngine,
		tagger:         symptomTagger,
		modelService:   modelService,
		internalConfig: internalConfig,
	}
}

func (o *conversationOrchestrator) Greet(ctx context.Context, session *models.Session) (*contracts.TurnOutcome, error) {
	if session.Phase != models.PhaseGreeting {
		return nil, exceptions.ErrServerProcess(fmt.Errorf("greet called in phase %s", session.Phase))
	}
	session.AppendTurn(systemTurn(greetingText, nil))
	session.Phase = models.PhaseFreeExploration
	return &contracts.TurnOutcome{Reply: greetingText}, nil
}

func (o *conversationOrchestrator) HandleTurn(ctx context.Context, session *models.Session, input string) (*contracts.TurnOutcome, error) {
	if session.IsTerminal() {
		return nil, exceptions.ErrSessionTerminal(nil)
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == constvars.TerminationToken {
		return o.handleTermination(session)
	}

	switch session.Phase {
	case models.PhaseGreeting:
		// Respondent spoke before the opening turn was read; fold the input
		// straight into exploration.
		session.Phase = models.PhaseFreeExploration
		return o.handleFreeExploration(ctx, session, trimmed)
	case models.PhaseFreeExploration:
		return o.handleFreeExploration(ctx, session, trimmed)
	case models.PhaseScreenerIntroPending:
		return o.handleScreenerIntro(ctx, session, trimmed)
	case models.PhaseScreenerActive:
		return o.handleScreenerActive(session, trimmed)
	case models.PhaseRiskEscalated:
		return o.handleRiskEscalated(session, trimmed)
	case models.PhaseReportPending:
		session.AppendTurn(respondentTurn(trimmed))
		session.AppendTurn(systemTurn(reportPendingText, nil))
		return &contracts.TurnOutcome{Reply: reportPendingText, ReportReady: true}, nil
	default:
		return nil, exceptions.ErrServerProcess(fmt.Errorf("turn received in phase %s", session.Phase))
	}
}

// handleTermination processes the early-finish token. It is rejected
// absolutely while a safety check-in or a mandatory risk item is pending.
func (o *conversationOrchestrator) handleTermination(session *models.Session) (*contracts.TurnOutcome, error) {
	if session.Risk.AwaitingSafetyAck() {
		session.AppendTurn(respondentTurn(constvars.TerminationToken))
		reply := constvars.CrisisResourceContent + "\n\n" + constvars.SafetyCheckInQuestion
		session.AppendTurn(systemTurn(reply, nil))
		return &contracts.TurnOutcome{Reply: reply, Escalated: true}, nil
	}

	if o.riskBranchMandatory(session) {
		item := o.riskEngine.CurrentItem(&session.Risk)
		session.AppendTurn(respondentTurn(constvars.TerminationToken))
		reply := "I hear that you'd like to stop, and we will very soon. " +
			"Because of what you've shared, I do need to finish these few safety questions first. " + item.Prompt
		session.AppendTurn(models.ConversationTurn{
			Role:       models.TurnRoleSystem,
			Text:       reply,
			Timestamp:  time.Now().UTC(),
			ScreenerID: session.ActiveScreenerID,
			ItemID:     item.ID,
			Options:    optionsForItem(item),
		})
		return &contracts.TurnOutcome{Reply: reply, Options: optionsForItem(item)}, nil
	}

	session.AppendTurn(respondentTurn(constvars.TerminationToken))
	if session.Phase != models.PhaseReportPending {
		session.EndedEarly = true
	}
	// A partially answered instrument is abandoned, never scored.
	session.ActiveScreenerID = ""
	session.ActiveItemIndex = 0
	session.ActiveAnswers = nil
	session.Phase = models.PhaseReportPending
	session.AppendTurn(systemTurn(earlyFinishText, nil))
	return &contracts.TurnOutcome{Reply: earlyFinishText, ReportReady: true}, nil
}

func (o *conversationOrchestrator) handleFreeExploration(ctx context.Context, session *models.Session, input string) (*contracts.TurnOutcome, error) {
	turnTags := o.tagger.Tag(input)
	prospective := mergedTags(session.Tags, turnTags)

	queue := o.pendingRecommendations(session, prospective)
	depthReached := session.ExplorationTurns+1 >= o.internalConfig.Intake.MinExplorationTurns
	safetyCue := prospective[screeners.TagSelfHarm] && !hasOffered(session, o.riskEngine.InstrumentID())

	if len(queue) > 0 && (depthReached || safetyCue) {
		session.AppendTurn(respondentTurn(input))
		session.AddTags(turnTags)
		session.ExplorationTurns++
		session.ScreenerQueue = queue
		return o.introduceNextScreener(session, "")
	}

	reply, options, err := o.generateExplorationReply(ctx, session, input)
	if err != nil {
		if exceptions.IsModelFailure(err) {
			// Nothing was mutated; the respondent can resend the same message.
			o.Log.Warn("conversationOrchestrator.handleFreeExploration model failed after retry",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
			return &contracts.TurnOutcome{Reply: retryReplyText}, nil
		}
		return nil, err
	}

	session.AppendTurn(respondentTurn(input))
	session.AddTags(turnTags)
	session.ExplorationTurns++
	session.AppendTurn(systemTurn(reply, options))
	return &contracts.TurnOutcome{Reply: reply, Options: options}, nil
}

func (o *conversationOrchestrator) handleScreenerIntro(ctx context.Context, session *models.Session, input string) (*contracts.TurnOutcome, error) {
	if len(session.ScreenerQueue) == 0 {
		session.Phase = models.PhaseFreeExploration
		return o.handleFreeExploration(ctx, session, input)
	}

	switch classifyAcknowledgment(input) {
	case ackYes:
		session.AppendTurn(respondentTurn(input))
		return o.beginScreener(session)
	case ackNo:
		session.AppendTurn(respondentTurn(input))
		o.popQueuedScreener(session)
		if len(session.ScreenerQueue) > 0 {
			return o.introduceNextScreener(session, "")
		}
		session.Phase = models.PhaseFreeExploration
		session.AppendTurn(systemTurn(declineFollowUpText, nil))
		return &contracts.TurnOutcome{Reply: declineFollowUpText}, nil
	default:
		session.AppendTurn(respondentTurn(input))
		options := yesNoTurnOptions()
		session.AppendTurn(systemTurn(introRepromptText, options))
		return &contracts.TurnOutcome{Reply: introRepromptText, Options: options}, nil
	}
}

func (o *conversationOrchestrator) handleScreenerActive(session *models.Session, input string) (*contracts.TurnOutcome, error) {
	definition, err := o.registry.Get(session.ActiveScreenerID)
	if err != nil {
		return nil, err
	}
	isRisk := session.ActiveScreenerID == o.riskEngine.InstrumentID()

	var item *models.ScreenerItem
	if isRisk {
		item = o.riskEngine.CurrentItem(&session.Risk)
	} else if session.ActiveItemIndex < len(definition.Items) {
		item = &definition.Items[session.ActiveItemIndex]
	}
	if item == nil {
		return nil, exceptions.ErrServerProcess(fmt.Errorf("screener %s active with no pending item", definition.ID))
	}

	option := resolveOption(item, input)
	if option == nil {
		session.AppendTurn(respondentTurn(input))
		return o.askItem(session, definition, item, invalidAnswerText)
	}

	session.AppendTurn(respondentTurn(input))
	session.ActiveAnswers = append(session.ActiveAnswers, models.ItemAnswer{
		ItemID:     item.ID,
		OptionCode: option.Code,
		Value:      option.Value,
	})

	if isRisk {
		if err := o.riskEngine.Apply(&session.Risk, item.ID, option.Value > 0); err != nil {
			return nil, err
		}
		if session.Risk.AwaitingSafetyAck() && session.Phase != models.PhaseRiskEscalated {
			session.ResumePhase = models.PhaseScreenerActive
			session.Phase = models.PhaseRiskEscalated
			o.Log.Info("conversationOrchestrator.handleScreenerActive escalation triggered",
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.String(constvars.LoggingRiskTierKey, string(session.Risk.Tier)),
			)
			reply := constvars.CrisisResourceContent + "\n\n" + constvars.SafetyCheckInQuestion
			session.AppendTurn(systemTurn(reply, nil))
			return &contracts.TurnOutcome{Reply: reply, Escalated: true}, nil
		}
		if session.Risk.BranchClosed {
			return o.finalizeActiveScreener(session, definition)
		}
		session.ActiveItemIndex = session.Risk.ItemIndex
		return o.askItem(session, definition, o.riskEngine.CurrentItem(&session.Risk), "")
	}

	session.ActiveItemIndex++
	if session.ActiveItemIndex >= len(definition.Items) {
		return o.finalizeActiveScreener(session, definition)
	}
	return o.askItem(session, definition, &definition.Items[session.ActiveItemIndex], "")
}

func (o *conversationOrchestrator) handleRiskEscalated(session *models.Session, input string) (*contracts.TurnOutcome, error) {
	if classifyAcknowledgment(input) != ackYes {
		// Until the respondent confirms safety, crisis resources and the
		// check-in question are the only permitted output.
		session.AppendTurn(respondentTurn(input))
		reply := constvars.CrisisResourceContent + "\n\n" + constvars.SafetyCheckInQuestion
		session.AppendTurn(systemTurn(reply, nil))
		return &contracts.TurnOutcome{Reply: reply, Escalated: true}, nil
	}

	session.AppendTurn(respondentTurn(input))
	o.riskEngine.AcknowledgeSafety(&session.Risk)

	resume := session.ResumePhase
	if resume == "" {
		resume = models.PhaseFreeExploration
	}
	session.Phase = resume
	session.ResumePhase = ""

	if resume == models.PhaseScreenerActive && session.ActiveScreenerID != "" {
		definition, err := o.registry.Get(session.ActiveScreenerID)
		if err != nil {
			return nil, err
		}
		if session.ActiveScreenerID == o.riskEngine.InstrumentID() {
			if item := o.riskEngine.CurrentItem(&session.Risk); item != nil {
				session.ActiveItemIndex = session.Risk.ItemIndex
				return o.askItem(session, definition, item, safetyResumeAckText)
			}
			return o.finalizeActiveScreener(session, definition)
		}
		if session.ActiveItemIndex < len(definition.Items) {
			return o.askItem(session, definition, &definition.Items[session.ActiveItemIndex], safetyResumeAckText)
		}
		return o.finalizeActiveScreener(session, definition)
	}

	reply := safetyResumeAckText + declineFollowUpText
	session.AppendTurn(systemTurn(reply, nil))
	return &contracts.TurnOutcome{Reply: reply}, nil
}

func (o *conversationOrchestrator) ReentryTurn(ctx context.Context, session *models.Session) (*contracts.TurnOutcome, error) {
	switch session.Phase {
	case models.PhaseScreenerIntroPending:
		if len(session.ScreenerQueue) == 0 {
			session.Phase = models.PhaseFreeExploration
			break
		}
		return o.introduceNextScreener(session, reentryAckText)
	case models.PhaseFreeExploration:
	default:
		return nil, exceptions.ErrServerProcess(fmt.Errorf("reentry requested in phase %s", session.Phase))
	}

	output, err := o.completeWithRetry(ctx, reentrySystemPrompt, modelHistory(session, ""))
	if err != nil {
		return nil, err
	}
	reply, options := parseModelReply(output)
	if reply == "" {
		return nil, exceptions.ErrModelEmptyOutput(nil)
	}
	session.AppendTurn(systemTurn(reply, options))
	return &contracts.TurnOutcome{Reply: reply, Options: options}, nil
}

func (o *conversationOrchestrator) CanPause(session *models.Session) error {
	if session.Risk.AwaitingSafetyAck() {
		return exceptions.ErrPauseDuringSafetyCheck(nil)
	}
	switch session.Phase {
	case models.PhaseFreeExploration, models.PhaseScreenerIntroPending:
		return nil
	case models.PhaseRiskEscalated:
		return exceptions.ErrPauseDuringSafetyCheck(nil)
	default:
		return exceptions.ErrPauseMidInstrument(nil)
	}
}

func (o *conversationOrchestrator) CanFinish(session *models.Session) error {
	if session.Risk.AwaitingSafetyAck() {
		return exceptions.ErrFinishBlockedByRisk(fmt.Errorf("safety check-in pending"))
	}
	if o.riskBranchMandatory(session) {
		return exceptions.ErrFinishBlockedByRisk(fmt.Errorf("mandatory risk items pending"))
	}
	return nil
}

func (o *conversationOrchestrator) beginScreener(session *models.Session) (*contracts.TurnOutcome, error) {
	screenerID := o.popQueuedScreener(session)
	definition, err := o.registry.Get(screenerID)
	if err != nil {
		return nil, err
	}

	session.ActiveScreenerID = screenerID
	session.ActiveItemIndex = 0
	session.ActiveAnswers = nil
	session.Phase = models.PhaseScreenerActive

	if screenerID == o.riskEngine.InstrumentID() && len(session.Risk.Answers) == 0 {
		session.Risk = o.riskEngine.NewState()
	}

	return o.askItem(session, definition, &definition.Items[0], "")
}

func (o *conversationOrchestrator) finalizeActiveScreener(session *models.Session, definition *models.ScreenerDefinition) (*contracts.TurnOutcome, error) {
	result, err := o.registry.Score(definition, session.ActiveAnswers)
	if err != nil {
		return nil, err
	}
	session.Results = append(session.Results, *result)
	session.ActiveScreenerID = ""
	session.ActiveItemIndex = 0
	session.ActiveAnswers = nil

	o.Log.Info("conversationOrchestrator.finalizeActiveScreener scored",
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.String(constvars.LoggingScreenerIDKey, definition.ID),
		zap.Int(constvars.LoggingTotalScoreKey, result.TotalScore),
		zap.String(constvars.LoggingSeverityKey, result.Severity),
	)

	if len(session.ScreenerQueue) > 0 {
		return o.introduceNextScreener(session, fmt.Sprintf(screenerCompleteTemplate, definition.Name))
	}

	session.Phase = models.PhaseReportPending
	reply := fmt.Sprintf(screenerCompleteTemplate, definition.Name) + allScreenersDoneText
	session.AppendTurn(systemTurn(reply, nil))
	return &contracts.TurnOutcome{Reply: reply, ReportReady: true}, nil
}

func (o *conversationOrchestrator) introduceNextScreener(session *models.Session, prefix string) (*contracts.TurnOutcome, error) {
	definition, err := o.registry.Get(session.ScreenerQueue[0])
	if err != nil {
		return nil, err
	}
	reply := prefix + fmt.Sprintf(screenerIntroTemplate, definition.Name, definition.Intro, len(definition.Items))
	options := yesNoTurnOptions()
	session.Phase = models.PhaseScreenerIntroPending
	session.AppendTurn(models.ConversationTurn{
		Role:       models.TurnRoleSystem,
		Text:       reply,
		Timestamp:  time.Now().UTC(),
		ScreenerID: definition.ID,
		Options:    options,
	})
	return &contracts.TurnOutcome{Reply: reply, Options: options}, nil
}

func (o *conversationOrchestrator) askItem(session *models.Session, definition *models.ScreenerDefinition, item *models.ScreenerItem, prefix string) (*contracts.TurnOutcome, error) {
	options := optionsForItem(item)
	reply := prefix + item.Prompt
	session.AppendTurn(models.ConversationTurn{
		Role:       models.TurnRoleSystem,
		Text:       reply,
		Timestamp:  time.Now().UTC(),
		ScreenerID: definition.ID,
		ItemID:     item.ID,
		Options:    options,
	})
	return &contracts.TurnOutcome{Reply: reply, Options: options}, nil
}

func (o *conversationOrchestrator) generateExplorationReply(ctx context.Context, session *models.Session, input string) (string, []models.TurnOption, error) {
	output, err := o.completeWithRetry(ctx, explorationSystemPrompt, modelHistory(session, input))
	if err != nil {
		return "", nil, err
	}
	reply, options := parseModelReply(output)
	if reply == "" {
		return "", nil, exceptions.ErrModelEmptyOutput(nil)
	}
	return reply, options, nil
}

// completeWithRetry performs one model call, retrying exactly once after a
// backoff when the failure is a model failure rather than a caller error.
func (o *conversationOrchestrator) completeWithRetry(ctx context.Context, systemPrompt string, history []contracts.ModelMessage) (string, error) {
	output, err := o.modelService.Complete(ctx, systemPrompt, history)
	if err == nil {
		return output, nil
	}
	if !exceptions.IsModelFailure(err) {
		return "", err
	}

	backoff := time.Duration(o.internalConfig.Model.RetryBackoffInSeconds) * time.Second
	select {
	case <-ctx.Done():
		return "", exceptions.ErrModelTimeout(ctx.Err())
	case <-time.After(backoff):
	}
	return o.modelService.Complete(ctx, systemPrompt, history)
}

func (o *conversationOrchestrator) pendingRecommendations(session *models.Session, tags map[string]bool) []string {
	var queue []string
	for _, id := range o.registry.Recommend(tags) {
		if !hasOffered(session, id) {
			queue = append(queue, id)
		}
	}
	return queue
}

func (o *conversationOrchestrator) popQueuedScreener(session *models.Session) string {
	screenerID := session.ScreenerQueue[0]
	session.ScreenerQueue = session.ScreenerQueue[1:]
	if session.OfferedScreeners == nil {
		session.OfferedScreeners = make(map[string]bool)
	}
	session.OfferedScreeners[screenerID] = true
	return screenerID
}

func (o *conversationOrchestrator) riskBranchMandatory(session *models.Session) bool {
	if session.ActiveScreenerID != o.riskEngine.InstrumentID() {
		return false
	}
	return !session.Risk.BranchClosed && session.Risk.ItemIndex >= mandatoryRiskThreshold
}

func hasOffered(session *models.Session, screenerID string) bool {
	return session.OfferedScreeners[screenerID]
}

func mergedTags(existing, added map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(existing)+len(added))
	for tag, present := range existing {
		if present {
			merged[tag] = true
		}
	}
	for tag, present := range added {
		if present {
			merged[tag] = true
		}
	}
	return merged
}

// modelHistory maps the transcript onto chat roles, appending the current
// not-yet-committed input when present.
func modelHistory(session *models.Session, pendingInput string) []contracts.ModelMessage {
	history := make([]contracts.ModelMessage, 0, len(session.Turns)+1)
	for _, turn := range session.Turns {
		role := contracts.ModelRoleUser
		if turn.Role == models.TurnRoleSystem {
			role = contracts.ModelRoleAssistant
		}
		history = append(history, contracts.ModelMessage{Role: role, Content: turn.Text})
	}
	if pendingInput != "" {
		history = append(history, contracts.ModelMessage{Role: contracts.ModelRoleUser, Content: pendingInput})
	}
	return history
}

func optionsForItem(item *models.ScreenerItem) []models.TurnOption {
	options := make([]models.TurnOption, 0, len(item.Options))
	for _, option := range item.Options {
		options = append(options, models.TurnOption{Code: option.Code, Label: option.Label})
	}
	return options
}

func yesNoTurnOptions() []models.TurnOption {
	return []models.TurnOption{
		{Code: "yes", Label: "Yes"},
		{Code: "no", Label: "No"},
	}
}

func systemTurn(text string, options []models.TurnOption) models.ConversationTurn {
	return models.ConversationTurn{
		Role:      models.TurnRoleSystem,
		Text:      text,
		Timestamp: time.Now().UTC(),
		Options:   options,
	}
}

func respondentTurn(text string) models.ConversationTurn {
	return models.ConversationTurn{
		Role:      models.TurnRoleRespondent,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}
