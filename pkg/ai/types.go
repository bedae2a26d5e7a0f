package ai

import (
	"context"
	"errors"
)

// ErrEmptyCompletion indicates the upstream call succeeded but returned no usable text.
var ErrEmptyCompletion = errors.New("completion returned no content")

// CompletionRequest is a single system + user prompt pair.
type CompletionRequest struct {
	System string
	User   string
}

// Completion is the text extracted from the first choice plus upstream metadata.
type Completion struct {
	Content      string `json:"content"`
	Model        string `json:"model,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	TotalTokens  int    `json:"total_tokens,omitempty"`
}

// Completer describes a chat-completion backend.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
