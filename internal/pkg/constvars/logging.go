package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingSessionIDKey          = "session_id"
	LoggingScreenerIDKey         = "screener_id"
	LoggingItemIDKey             = "item_id"
	LoggingPhaseKey              = "phase"
	LoggingRiskTierKey           = "risk_tier"
	LoggingTotalScoreKey         = "total_score"
	LoggingSeverityKey           = "severity"
	LoggingReportVariantKey      = "report_variant"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingResponseKey           = "response"
	LoggingResponseCountKey      = "response_count"
	LoggingSweptCountKey         = "swept_count"
	LoggingAttemptKey            = "attempt"
	LoggingQueueNameKey          = "queue_name"
	LoggingObjectNameKey         = "object_name"
)
