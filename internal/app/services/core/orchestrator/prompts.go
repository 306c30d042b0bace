package orchestrator

const greetingText = "Hi, I'm here to help you get started before you speak with a clinician. " +
	"Everything you share stays within your care team. " +
	"To begin, what's been on your mind lately?"

const explorationSystemPrompt = `You are a warm, professional mental-health intake assistant.
Your job is to help the respondent describe what brought them here, one step at a time.

Rules you must follow:
- Ask exactly one question per reply. Never stack questions.
- Be brief: at most three sentences before your question.
- Never diagnose, never suggest medication, never speculate about causes.
- If a small set of discrete answers fits the question, list them between
  [[options]] and [[/options]] markers, one option per line prefixed with "- ".
- Stay on the respondent's experience; do not talk about yourself.`

const reentrySystemPrompt = `You are a warm, professional mental-health intake assistant resuming a
conversation the respondent paused earlier.

Write one short reply that first welcomes them back in a single sentence, then
asks exactly one question that naturally continues from the transcript. Never
stack questions and never re-ask something already answered.`

const (
	screenerIntroTemplate = "Thank you for sharing that with me. I'd like to go through %s with you, %s. " +
		"It has %d questions with fixed answer choices. Would you like to start now?"

	screenerCompleteTemplate = "Thank you, that completes the %s. "

	introRepromptText = "Just to make sure I understood: would you like to go through this questionnaire now? " +
		"A simple yes or no is fine."

	declineFollowUpText = "That's completely fine, we can skip it. " +
		"Is there anything else on your mind you'd like to talk about?"

	invalidAnswerText = "I didn't catch that as one of the listed answers, so let me ask again. "

	safetyResumeAckText = "Thank you for letting me know you're safe. "

	reentryAckText = "Welcome back, and thanks for returning. "

	allScreenersDoneText = "Thank you, that's everything I needed to ask. " +
		"When you're ready, send /finish and I'll prepare your summary."

	earlyFinishText = "Understood, we'll stop here. I'll prepare a summary from what you've shared so far."

	reportPendingText = "We've covered everything for now. Send /finish whenever you're ready for your summary."

	retryReplyText = "I'm sorry, I couldn't process that just now. Could you send your message again?"
)
