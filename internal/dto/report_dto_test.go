package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quiz-report-relay/internal/dto"
)

func decodeRequest(t *testing.T, body string) dto.ReportRequest {
	t.Helper()
	var req dto.ReportRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestParseQuestionsAcceptsBothSpellings(t *testing.T) {
	req := decodeRequest(t, `{"score":5,"persona":"Parent","questions":[
		{"question":"Do you have a will?","wasCorrect":true},
		{"q":"Is probate public?","correct":false}
	]}`)

	questions, err := req.ParseQuestions()
	require.NoError(t, err)
	require.Equal(t, []dto.QuestionResult{
		{Question: "Do you have a will?", WasCorrect: true},
		{Question: "Is probate public?", WasCorrect: false},
	}, questions)
}

func TestParseQuestionsAbsentOrNull(t *testing.T) {
	for _, body := range []string{
		`{"score":5,"persona":"Parent"}`,
		`{"score":5,"persona":"Parent","questions":null}`,
	} {
		req := decodeRequest(t, body)
		require.False(t, req.HasQuestions())

		questions, err := req.ParseQuestions()
		require.NoError(t, err)
		require.Nil(t, questions)
	}
}

func TestParseQuestionsRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"object instead of list": `{"questions":{"question":"x","wasCorrect":true}}`,
		"list of strings":        `{"questions":["x","y"]}`,
		"missing flag":           `{"questions":[{"question":"x"}]}`,
		"missing text":           `{"questions":[{"wasCorrect":true}]}`,
		"blank text":             `{"questions":[{"question":"  ","wasCorrect":true}]}`,
		"flag not boolean":       `{"questions":[{"question":"x","wasCorrect":"yes"}]}`,
		"string instead of list": `{"questions":"x"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := decodeRequest(t, body)
			_, err := req.ParseQuestions()
			require.ErrorIs(t, err, dto.ErrMalformedQuestions)
		})
	}
}

func TestScoreNullIsMissing(t *testing.T) {
	req := decodeRequest(t, `{"score":null,"persona":"Parent"}`)
	require.Nil(t, req.Score)

	req = decodeRequest(t, `{"score":0,"persona":"Parent"}`)
	require.NotNil(t, req.Score)
	require.Zero(t, *req.Score)
}
