package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/aoc-chat/backend/internal/config"
)

// ErrEmptyReply is returned when the model answers without any text.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Options tunes a completion Service.
type Options struct {
	Temperature float32
	Model       string
}

// Service runs the system/history/query prompt through the chat model.
type Service struct {
	chatModel model.ChatModel
	opts      Options
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model described by cfg and wraps it.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return NewServiceWithModel(ctx, chatModel, Options{
		Temperature: cfg.Temperature,
		Model:       cfg.ModelName(),
	})
}

// NewServiceWithModel compiles the prompt chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, opts Options) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		opts:      opts,
		chain:     runnable,
	}, nil
}

// Complete asks the model for the next assistant turn after history and query.
// It makes exactly one attempt.
func (s *Service) Complete(ctx context.Context, history []*schema.Message, query string) (string, error) {
	input := map[string]any{
		"system":  SystemPrompt,
		"history": history,
		"query":   query,
	}

	modelOpts := []model.Option{model.WithTemperature(s.opts.Temperature)}
	if s.opts.Model != "" {
		modelOpts = append(modelOpts, model.WithModel(s.opts.Model))
	}

	response, err := s.chain.Invoke(ctx, input, compose.WithChatModelOption(modelOpts...))
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", ErrEmptyReply
	}

	log.Printf("[ai] generated reply, history=%d, length=%d", len(history), len(response.Content))
	return response.Content, nil
}

// GetChatModel 返回底层的聊天模型
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}
