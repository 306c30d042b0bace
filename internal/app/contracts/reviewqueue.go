package contracts

import "context"

// ReviewTask is the payload published for reports that failed grounding
// validation and need a human look before delivery.
type ReviewTask struct {
	SessionID string `json:"session_id"`
	Variant   string `json:"variant"`
	Reason    string `json:"reason"`
	Output    string `json:"output"`
}

type ReviewQueueService interface {
	PublishReviewTask(ctx context.Context, task *ReviewTask) error
}
