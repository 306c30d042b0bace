package reviewqueue

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const deadLetterSuffix = "_dlq"

var (
	reviewQueueInstance contracts.ReviewQueueService
	onceReviewQueue     sync.Once
)

type reviewQueueService struct {
	ch        *amqp.Channel
	Log       *zap.Logger
	queueName string
}

// NewReviewQueueService declares the durable review queue plus its dead
// letter queue and returns the publishing service.
func NewReviewQueueService(conn *amqp.Connection, logger *zap.Logger, queueName string) (contracts.ReviewQueueService, error) {
	var initErr error
	onceReviewQueue.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}

		for _, name := range []string{queueName, queueName + deadLetterSuffix} {
			_, err = ch.QueueDeclare(
				name,
				true,  // durable
				false, // autoDelete
				false, // exclusive
				false, // noWait
				nil,
			)
			if err != nil {
				initErr = err
				return
			}
		}

		reviewQueueInstance = &reviewQueueService{
			ch:        ch,
			Log:       logger,
			queueName: queueName,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return reviewQueueInstance, nil
}

func (s *reviewQueueService) PublishReviewTask(ctx context.Context, task *contracts.ReviewTask) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(task)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.ch.PublishWithContext(ctx,
		"",          // default exchange
		s.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		s.Log.Error("reviewQueueService.PublishReviewTask error publishing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.queueName),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	s.Log.Info("reviewQueueService.PublishReviewTask published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
		zap.String(constvars.LoggingSessionIDKey, task.SessionID),
		zap.String(constvars.LoggingReportVariantKey, task.Variant),
	)
	return nil
}
