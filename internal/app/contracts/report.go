package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

// ReportUsecase synthesizes both report variants from a terminal-eligible
// session under the grounding constraint.
type ReportUsecase interface {
	SynthesizeReports(ctx context.Context, session *models.Session) (*models.SessionReports, error)
}
