package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quiz-report-relay/internal/handler"
	"github.com/noah-isme/quiz-report-relay/internal/prompt"
	"github.com/noah-isme/quiz-report-relay/pkg/ai"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)
	return schema
}

func validateAgainst(t *testing.T, schema *jsonschema.Schema, body string) {
	t.Helper()
	var payload interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestReportResponseContract(t *testing.T) {
	schema := compileSchema(t, "report_response.schema.json")

	for name, completer := range map[string]*fakeCompleter{
		"generated":   {},
		"placeholder": {complete: func(ai.CompletionRequest) (ai.Completion, error) { return ai.Completion{}, ai.ErrEmptyCompletion }},
	} {
		t.Run(name, func(t *testing.T) {
			resp, body := postReport(t, newReportApp(completer, prompt.KindGuide), `{"score":7,"persona":"Parent"}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			validateAgainst(t, schema, body)
		})
	}
}

func TestErrorResponseContract(t *testing.T) {
	schema := compileSchema(t, "error_response.schema.json")

	failing := &fakeCompleter{complete: func(ai.CompletionRequest) (ai.Completion, error) {
		return ai.Completion{}, errors.New("upstream down")
	}}

	for name, tc := range map[string]struct {
		completer *fakeCompleter
		body      string
		status    int
	}{
		"missing fields":    {completer: &fakeCompleter{}, body: `{}`, status: http.StatusBadRequest},
		"invalid body":      {completer: &fakeCompleter{}, body: `{`, status: http.StatusBadRequest},
		"invalid questions": {completer: &fakeCompleter{}, body: `{"score":1,"persona":"p","questions":[1]}`, status: http.StatusBadRequest},
		"upstream failure":  {completer: failing, body: `{"score":1,"persona":"p"}`, status: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			resp, body := postReport(t, newReportApp(tc.completer, prompt.KindGuide), tc.body)
			require.Equal(t, tc.status, resp.StatusCode)
			validateAgainst(t, schema, body)
		})
	}
}

func TestHealthContract(t *testing.T) {
	schema := compileSchema(t, "health_response.schema.json")

	app := fiber.New()
	app.Get("/health", handler.HealthCheck())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var payload interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NoError(t, schema.Validate(payload))
}
