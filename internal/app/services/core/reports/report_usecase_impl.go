package reports

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"strings"
	"time"

	"go.uber.org/zap"
)

type reportUsecase struct {
	Log            *zap.Logger
	ModelService   contracts.ModelService
	ReviewQueue    contracts.ReviewQueueService
	ArchiveService contracts.ReportArchiveService
	InternalConfig *config.InternalConfig
}

func NewReportUsecase(
	logger *zap.Logger,
	modelService contracts.ModelService,
	reviewQueue contracts.ReviewQueueService,
	archiveService contracts.ReportArchiveService,
	internalConfig *config.InternalConfig,
) contracts.ReportUsecase {
	return &reportUsecase{
		Log:            logger,
		ModelService:   modelService,
		ReviewQueue:    reviewQueue,
		ArchiveService: archiveService,
		InternalConfig: internalConfig,
	}
}

// SynthesizeReports generates both variants. A variant that fails grounding
// validation twice is withheld and routed to the human-review queue; a hard
// model failure aborts the whole synthesis so the caller can retry finishing
// later.
func (uc *reportUsecase) SynthesizeReports(ctx context.Context, session *models.Session) (*models.SessionReports, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	reports := &models.SessionReports{}

	for _, variant := range []string{constvars.ReportVariantRespondent, constvars.ReportVariantClinician} {
		report, rawOutput, err := uc.synthesizeVariant(ctx, session, variant)
		if err != nil {
			if !exceptions.IsKind(err, exceptions.KindGroundingViolation) {
				return nil, err
			}

			uc.Log.Warn("reportUsecase.SynthesizeReports variant failed grounding twice",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.String(constvars.LoggingReportVariantKey, variant),
				zap.Error(err),
			)
			reports.NeedsReview = true
			if publishErr := uc.ReviewQueue.PublishReviewTask(ctx, &contracts.ReviewTask{
				SessionID: session.ID,
				Variant:   variant,
				Reason:    err.Error(),
				Output:    rawOutput,
			}); publishErr != nil {
				uc.Log.Error("reportUsecase.SynthesizeReports review task publish failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingSessionIDKey, session.ID),
					zap.Error(publishErr),
				)
			}
			continue
		}

		switch variant {
		case constvars.ReportVariantRespondent:
			reports.Respondent = report
		case constvars.ReportVariantClinician:
			reports.Clinician = report
		}
	}

	if uc.InternalConfig.Intake.ReportArchiveEnabled && uc.ArchiveService != nil {
		if err := uc.ArchiveService.ArchiveReports(ctx, session.ID, reports); err != nil {
			uc.Log.Error("reportUsecase.SynthesizeReports archive failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
		}
	}

	return reports, nil
}

// synthesizeVariant invokes the model once, validates, and on a grounding
// violation retries exactly once with the violation fed back. The raw output
// of the last attempt is returned alongside any error so a failed variant can
// be attached to its review task.
func (uc *reportUsecase) synthesizeVariant(ctx context.Context, session *models.Session, variant string) (*models.Report, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	systemPrompt := buildReportPrompt(variant, session)
	history := []contracts.ModelMessage{
		{Role: contracts.ModelRoleUser, Content: "Write the report now."},
	}

	var lastOutput string
	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		output, err := uc.ModelService.Complete(ctx, systemPrompt, history)
		if err != nil {
			if attempt == 1 && exceptions.IsModelFailure(err) {
				uc.backoff(ctx)
				continue
			}
			return nil, "", err
		}

		if validationErr := validateGrounding(variant, output, session); validationErr != nil {
			uc.Log.Warn("reportUsecase.synthesizeVariant grounding violation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.String(constvars.LoggingReportVariantKey, variant),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(validationErr),
			)
			lastOutput = output
			lastErr = validationErr
			history = append(history,
				contracts.ModelMessage{Role: contracts.ModelRoleAssistant, Content: output},
				contracts.ModelMessage{Role: contracts.ModelRoleUser, Content: "That draft broke the grounding rules: " +
					validationErr.Error() + ". Rewrite it using only the FACTS block."},
			)
			continue
		}

		return buildReport(variant, output, session), output, nil
	}
	return nil, lastOutput, lastErr
}

func (uc *reportUsecase) backoff(ctx context.Context) {
	backoff := time.Duration(uc.InternalConfig.Model.RetryBackoffInSeconds) * time.Second
	select {
	case <-ctx.Done():
	case <-time.After(backoff):
	}
}

// buildReport splits markdown output on "## " headings into sections. Output
// without headings becomes a single summary section.
func buildReport(variant, output string, session *models.Session) *models.Report {
	var sections []models.ReportSection
	var current *models.ReportSection

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "## ") {
			if current != nil {
				current.Body = strings.TrimSpace(current.Body)
				sections = append(sections, *current)
			}
			current = &models.ReportSection{Heading: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
			continue
		}
		if current == nil {
			current = &models.ReportSection{Heading: "Summary"}
		}
		current.Body += line + "\n"
	}
	if current != nil {
		current.Body = strings.TrimSpace(current.Body)
		sections = append(sections, *current)
	}

	return &models.Report{
		Variant:     variant,
		Sections:    sections,
		RiskTier:    session.Risk.Tier,
		GeneratedAt: time.Now().UTC(),
	}
}
