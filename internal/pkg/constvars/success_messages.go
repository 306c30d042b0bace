package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Intake messages
	StartSessionSuccessMessage  = "intake session started"
	SubmitTurnSuccessMessage    = "turn processed"
	PauseSessionSuccessMessage  = "session paused"
	ResumeSessionSuccessMessage = "session resumed"
	FinishSessionSuccessMessage = "intake finished, reports generated"
	GetReportsSuccessMessage    = "reports retrieved"
)
