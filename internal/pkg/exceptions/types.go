package exceptions

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}

	// Screeners
	ErrScreenerNotFound = func(err error, screenerID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevScreenerNotFound, screenerID))
	}
	ErrScreenerInvalidAnswer = func(err error) *CustomError {
		return BuildKindError(err, KindScreenerInput, constvars.StatusBadRequest, constvars.ErrClientInvalidAnswer, constvars.ErrDevScreenerInvalidAnswer)
	}
	ErrScreenerDuplicateAnswer = func(err error) *CustomError {
		return BuildKindError(err, KindScreenerInput, constvars.StatusBadRequest, constvars.ErrClientInvalidAnswer, constvars.ErrDevScreenerDuplicateAnswer)
	}

	// Risk engine
	ErrRiskItemOutOfSequence = func(err error) *CustomError {
		return BuildKindError(err, KindSequence, constvars.StatusConflict, constvars.ErrClientAnswerOutOfSequence, constvars.ErrDevRiskItemOutOfSequence)
	}
	ErrRiskBranchClosed = func(err error) *CustomError {
		return BuildKindError(err, KindSequence, constvars.StatusConflict, constvars.ErrClientAnswerOutOfSequence, constvars.ErrDevRiskBranchClosed)
	}
	ErrRiskAnswerNotBinary = func(err error) *CustomError {
		return BuildKindError(err, KindScreenerInput, constvars.StatusBadRequest, constvars.ErrClientInvalidAnswer, constvars.ErrDevRiskAnswerNotBinary)
	}

	// Model service
	ErrModelUnavailable = func(err error) *CustomError {
		return BuildKindError(err, KindModelUnavailable, constvars.StatusBadGateway, constvars.ErrClientModelUnavailable, constvars.ErrDevModelUnavailable)
	}
	ErrModelTimeout = func(err error) *CustomError {
		return BuildKindError(err, KindModelTimeout, constvars.StatusGatewayTimeout, constvars.ErrClientModelUnavailable, constvars.ErrDevModelTimeout)
	}
	ErrModelEmptyOutput = func(err error) *CustomError {
		return BuildKindError(err, KindModelUnavailable, constvars.StatusBadGateway, constvars.ErrClientModelUnavailable, constvars.ErrDevModelEmptyOutput)
	}

	// Session lifecycle
	ErrSessionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientSessionNotFound, constvars.ErrDevSessionNotFound)
	}
	ErrSessionTerminal = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGone, constvars.ErrClientSessionEnded, constvars.ErrDevSessionTerminal)
	}
	ErrSessionPaused = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSessionPaused, constvars.ErrDevSessionPaused)
	}
	ErrExpiredSession = func(err error) *CustomError {
		return BuildKindError(err, KindExpiredSession, constvars.StatusGone, constvars.ErrClientResumeTokenExpired, constvars.ErrDevSessionExpired)
	}
	ErrResumeTokenExpired = func(err error) *CustomError {
		return BuildKindError(err, KindExpiredSession, constvars.StatusGone, constvars.ErrClientResumeTokenExpired, constvars.ErrDevResumeTokenExpired)
	}
	ErrResumeTokenNotFound = func(err error) *CustomError {
		return BuildKindError(err, KindTokenNotFound, constvars.StatusNotFound, constvars.ErrClientResumeTokenNotFound, constvars.ErrDevResumeTokenNotFound)
	}
	ErrPauseMidInstrument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotPauseMidInstrument, constvars.ErrDevPauseNotAllowed)
	}
	ErrPauseDuringSafetyCheck = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotPauseDuringSafetyCheck, constvars.ErrDevPauseNotAllowed)
	}
	ErrFinishBlockedByRisk = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotFinishDuringSafetyCheck, constvars.ErrDevFinishBlockedByRisk)
	}
	ErrSessionBusy = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSessionBusy, constvars.ErrDevSessionLockNotAcquired)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevTokenGenerate)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildKindError(err, KindTokenNotFound, constvars.StatusUnauthorized, constvars.ErrClientResumeTokenNotFound, constvars.ErrDevTokenInvalidOrExpired)
	}

	// Reports
	ErrGroundingViolation = func(err error) *CustomError {
		return BuildKindError(err, KindGroundingViolation, constvars.StatusUnprocessableEntity, constvars.ErrClientReportNeedsReview, constvars.ErrDevGroundingViolation)
	}
	ErrReportNotReady = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReportNotReady, constvars.ErrDevReportNotReady)
	}

	// MongoDB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queueName))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
)
