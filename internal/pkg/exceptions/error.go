package exceptions

import (
	"errors"
	"fmt"
	"intake-service/internal/pkg/constvars"
	"runtime"
)

type Kind string

const (
	KindScreenerInput      Kind = "screener_input"
	KindSequence           Kind = "sequence"
	KindModelUnavailable   Kind = "model_unavailable"
	KindModelTimeout       Kind = "model_timeout"
	KindExpiredSession     Kind = "expired_session"
	KindTokenNotFound      Kind = "token_not_found"
	KindGroundingViolation Kind = "grounding_violation"
	KindInternal           Kind = "internal"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Kind          Kind     `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

func BuildKindError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kind,
		Location:      location,
	}
}

// IsKind reports whether err is a *CustomError of the given kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	return customErr.Kind == kind
}

// IsModelFailure reports whether err represents a failed language-model call,
// either a timeout or an upstream availability problem.
func IsModelFailure(err error) bool {
	return IsKind(err, KindModelTimeout) || IsKind(err, KindModelUnavailable)
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
