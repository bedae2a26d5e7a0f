package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedQuestions reports a questions payload that is not a list of question results.
var ErrMalformedQuestions = errors.New("questions must be a list of {question, wasCorrect} objects")

// ReportRequest is the quiz result submitted by the front-end form.
type ReportRequest struct {
	Score     *float64        `json:"score" validate:"required,min=0,max=10"`
	Persona   string          `json:"persona" validate:"required,max=120"`
	Questions json.RawMessage `json:"questions,omitempty"`
}

// HasQuestions reports whether the request carried a non-null questions field.
func (r ReportRequest) HasQuestions() bool {
	trimmed := bytes.TrimSpace(r.Questions)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// ParseQuestions decodes the optional per-question breakdown.
func (r ReportRequest) ParseQuestions() ([]QuestionResult, error) {
	if !r.HasQuestions() {
		return nil, nil
	}

	var results []QuestionResult
	if err := json.Unmarshal(r.Questions, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
	}

	return results, nil
}

// QuestionResult is a single answered quiz question.
type QuestionResult struct {
	Question   string `json:"question" validate:"required,max=500"`
	WasCorrect bool   `json:"wasCorrect"`
}

// UnmarshalJSON accepts both the {question, wasCorrect} and {q, correct} spellings
// and rejects entries without question text or a boolean correctness flag.
func (q *QuestionResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Question   *string `json:"question"`
		Q          *string `json:"q"`
		WasCorrect *bool   `json:"wasCorrect"`
		Correct    *bool   `json:"correct"`
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrMalformedQuestions
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	text := raw.Question
	if text == nil {
		text = raw.Q
	}
	flag := raw.WasCorrect
	if flag == nil {
		flag = raw.Correct
	}

	if text == nil || strings.TrimSpace(*text) == "" || flag == nil {
		return ErrMalformedQuestions
	}

	q.Question = strings.TrimSpace(*text)
	q.WasCorrect = *flag
	return nil
}

// ReportResponse carries the generated report text.
type ReportResponse struct {
	Report string `json:"report"`
}
