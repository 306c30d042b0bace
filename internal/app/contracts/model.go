package contracts

import "context"

type ModelMessage struct {
	Role    string
	Content string
}

const (
	ModelRoleSystem    = "system"
	ModelRoleUser      = "user"
	ModelRoleAssistant = "assistant"
)

// ModelService is the language-model collaborator. Its output is untrusted
// free text: callers post-process conversational replies and validate report
// narratives against the grounding constraint.
type ModelService interface {
	Complete(ctx context.Context, systemPrompt string, history []ModelMessage) (string, error)
}
