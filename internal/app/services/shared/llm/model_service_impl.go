package llm

import (
	"context"
	"errors"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	modelServiceInstance contracts.ModelService
	onceModelService     sync.Once
)

type openAIModelService struct {
	client  *openai.Client
	limiter *rate.Limiter
	Log     *zap.Logger
	model   string
	timeout time.Duration
}

func NewOpenAIModelService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.ModelService {
	onceModelService.Do(func() {
		instance := &openAIModelService{
			client:  openai.NewClient(internalConfig.Model.APIKey),
			limiter: rate.NewLimiter(rate.Limit(internalConfig.Model.MaxCallsPerSecond), internalConfig.Model.BurstSize),
			Log:     logger,
			model:   internalConfig.Model.ChatModel,
			timeout: time.Duration(internalConfig.Model.TimeoutInSeconds) * time.Second,
		}
		modelServiceInstance = instance
	})
	return modelServiceInstance
}

// Complete performs a single chat completion. The call is bounded by the
// configured timeout and a global rate limit; callers own retry policy.
func (s *openAIModelService) Complete(ctx context.Context, systemPrompt string, history []contracts.ModelMessage) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(callCtx); err != nil {
		return "", exceptions.ErrModelTimeout(err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := m.Role
		switch role {
		case contracts.ModelRoleSystem, contracts.ModelRoleUser, contracts.ModelRoleAssistant:
		default:
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			s.Log.Error("openAIModelService.Complete timed out",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return "", exceptions.ErrModelTimeout(err)
		}
		s.Log.Error("openAIModelService.Complete upstream error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrModelUnavailable(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", exceptions.ErrModelEmptyOutput(nil)
	}

	return resp.Choices[0].Message.Content, nil
}
