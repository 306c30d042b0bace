package constvars

// Validation messages, mapped by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"uuid":     "must be a valid UUID",
	"oneof":    "must be one of [%s]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientInvalidAnswer                 = "that answer doesn't match the current question, please pick one of the listed options"
	ErrClientAnswerOutOfSequence           = "please answer the current question first"
	ErrClientModelUnavailable              = "we couldn't generate a reply just now, please try again"
	ErrClientSessionNotFound               = "we couldn't find that session"
	ErrClientSessionEnded                  = "this session has ended and no longer accepts messages"
	ErrClientSessionPaused                 = "this session is paused, please resume it with your resume link"
	ErrClientResumeTokenExpired            = "this resume link has expired, please start a new session"
	ErrClientResumeTokenNotFound           = "this resume link is not valid"
	ErrClientCannotPauseMidInstrument      = "cannot pause in the middle of a questionnaire, please finish the current one first"
	ErrClientCannotPauseDuringSafetyCheck  = "we need to finish the safety check-in before pausing"
	ErrClientCannotFinishDuringSafetyCheck = "we need to finish the safety check-in before wrapping up"
	ErrClientSessionBusy                   = "we're still processing your previous message, please wait a moment"
	ErrClientReportNotReady                = "the reports for this session are not ready yet"
	ErrClientReportNeedsReview             = "the report needs a manual review before it can be delivered"
)

// Error messages for developers
const (
	ErrDevValidationFailed    = "validation failed"
	ErrDevCannotParseJSON     = "cannot parse JSON"
	ErrDevCannotMarshalJSON   = "cannot marshal JSON"
	ErrDevMissingRequestID    = "request id missing from context"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevServerProcess       = "internal server process failed"

	// Screener messages
	ErrDevScreenerNotFound        = "screener definition not found: %s"
	ErrDevScreenerInvalidAnswer   = "invalid screener answer"
	ErrDevScreenerDuplicateAnswer = "duplicate answer for screener item"
	ErrDevScreenerBandGap         = "severity bands do not partition the score range"
	ErrDevScreenerDuplicateOption = "duplicate option code within screener item"

	// Risk engine messages
	ErrDevRiskItemOutOfSequence = "risk item answered out of sequence"
	ErrDevRiskBranchClosed      = "risk branch already closed"
	ErrDevRiskAnswerNotBinary   = "risk item answer must be yes or no"

	// Session lifecycle messages
	ErrDevSessionNotFound        = "session not found"
	ErrDevSessionTerminal        = "session is in a terminal state"
	ErrDevSessionPaused          = "session is paused"
	ErrDevSessionExpired         = "session expired"
	ErrDevResumeTokenNotFound    = "resume token not found"
	ErrDevResumeTokenExpired     = "resume token expired"
	ErrDevPauseNotAllowed        = "pause not allowed in current phase"
	ErrDevFinishBlockedByRisk    = "finish rejected while safety check-in pending"
	ErrDevSessionLockNotAcquired = "per-session lock not acquired"

	// Model service messages
	ErrDevModelUnavailable = "language model service unavailable"
	ErrDevModelTimeout     = "language model call timed out"
	ErrDevModelEmptyOutput = "language model returned empty output"

	// Report messages
	ErrDevGroundingViolation = "report output failed grounding validation"
	ErrDevReportNotReady     = "reports not generated yet"

	// MongoDB messages
	ErrDevDBFailedToFindDocument    = "failed to find document"
	ErrDevDBFailedToInsertDocument  = "failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "failed to update document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"

	// Redis messages
	ErrDevRedisGetData       = "failed to get data from redis"
	ErrDevRedisSetData       = "failed to set data to redis"
	ErrDevRedisDeleteData    = "failed to delete data from redis"
	ErrDevRedisGetNoData     = "no data in redis for key: %s"
	ErrDevRedisUnlock        = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublish = "failed to publish message to queue: %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket: %s"

	// JWT messages
	ErrDevTokenGenerate         = "failed to sign resume token"
	ErrDevTokenInvalidOrExpired = "resume token invalid or expired"
)
