package archive

import (
	"bytes"
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	reportArchiveInstance contracts.ReportArchiveService
	onceReportArchive     sync.Once
)

type minioReportArchive struct {
	client     *minio.Client
	Log        *zap.Logger
	bucketName string
}

func NewMinioReportArchive(client *minio.Client, logger *zap.Logger, bucketName string) contracts.ReportArchiveService {
	onceReportArchive.Do(func() {
		reportArchiveInstance = &minioReportArchive{
			client:     client,
			Log:        logger,
			bucketName: bucketName,
		}
	})
	return reportArchiveInstance
}

// ArchiveReports writes the finalized report documents as one JSON object
// keyed by session id and generation timestamp.
func (s *minioReportArchive) ArchiveReports(ctx context.Context, sessionID string, reports *models.SessionReports) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	payload, err := json.Marshal(reports)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf("reports/%s/%s.json", sessionID, time.Now().UTC().Format("20060102_150405"))
	_, err = s.client.PutObject(ctx, s.bucketName, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		s.Log.Error("minioReportArchive.ArchiveReports error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return exceptions.ErrMinioCreateObject(err, s.bucketName)
	}

	s.Log.Info("minioReportArchive.ArchiveReports archived",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return nil
}
