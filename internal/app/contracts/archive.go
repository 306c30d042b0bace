package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

// ReportArchiveService stores finalized report documents in object storage
// for clinician download tooling.
type ReportArchiveService interface {
	ArchiveReports(ctx context.Context, sessionID string, reports *models.SessionReports) error
}
