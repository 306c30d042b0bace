package constvars

const (
	MongoCollectionSessions = "intake_sessions"
	MongoCollectionReports  = "intake_reports"
)

const (
	RedisResumeTokenPrefix = "intake:resume:"
	RedisSessionLockPrefix = "intake:lock:"
)

const (
	// TerminationToken is the reserved respondent input that requests an
	// early end to the intake.
	TerminationToken = "/finish"

	// OptionsBlockOpen and OptionsBlockClose delimit machine-parseable
	// choice lists inside system turns.
	OptionsBlockOpen  = "[[options]]"
	OptionsBlockClose = "[[/options]]"
)

const (
	CrisisResourceContent = "If you are in immediate danger, please call your local emergency number now. " +
		"You can also reach the 988 Suicide & Crisis Lifeline by calling or texting 988, " +
		"or text HOME to 741741 to reach the Crisis Text Line. You do not have to go through this alone."

	SafetyCheckInQuestion = "Before we continue, I need to check in with you: are you safe right now?"
)

const (
	ReportVariantRespondent = "respondent"
	ReportVariantClinician  = "clinician"
)
