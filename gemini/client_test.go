package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vanndavid/Mission-Employed/internal/pcm"
)

// fakeBackend records the last request and replies with a canned payload.
type fakeBackend struct {
	status  int
	body    string
	lastURL string
	lastKey string
	lastReq generateRequest
	calls   int
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		f.lastURL = r.URL.Path
		f.lastKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&f.lastReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		w.Write([]byte(f.body))
	}
}

func textResponse(text string) string {
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)
	return NewClient(Options{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})
}

func TestClient_Defaults(t *testing.T) {
	client := NewClient(Options{})
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.model != DefaultModel {
		t.Errorf("model = %q, want %q", client.model, DefaultModel)
	}
	if client.speechModel != DefaultSpeechModel {
		t.Errorf("speechModel = %q, want %q", client.speechModel, DefaultSpeechModel)
	}

	trimmed := NewClient(Options{BaseURL: "http://example.test/"})
	if trimmed.baseURL != "http://example.test" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", trimmed.baseURL)
	}
}

func TestClient_GenerateBehavioralPrompt(t *testing.T) {
	backend := &fakeBackend{body: textResponse("  Tell me about\n a time you failed.  ")}
	client := newTestClient(t, backend)

	prompt, err := client.GenerateBehavioralPrompt(context.Background(), "Biggest Failure")
	if err != nil {
		t.Fatalf("GenerateBehavioralPrompt: %v", err)
	}
	if prompt != "Tell me about a time you failed." {
		t.Errorf("prompt = %q, want whitespace normalized", prompt)
	}

	if backend.lastKey != "test-key" {
		t.Errorf("api key header = %q, want %q", backend.lastKey, "test-key")
	}
	wantPath := "/v1beta/models/" + DefaultModel + ":generateContent"
	if backend.lastURL != wantPath {
		t.Errorf("path = %q, want %q", backend.lastURL, wantPath)
	}
	if len(backend.lastReq.Contents) != 1 || len(backend.lastReq.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", backend.lastReq)
	}
	if !strings.Contains(backend.lastReq.Contents[0].Parts[0].Text, "Biggest Failure") {
		t.Errorf("request does not carry the theme: %q", backend.lastReq.Contents[0].Parts[0].Text)
	}
}

func TestClient_GenerateCodingProblem(t *testing.T) {
	problem := CodingProblem{
		Title:       "Two Sum",
		Description: "Find indices of two numbers adding to a target.",
		Examples:    []string{"nums = [2,7,11,15], target = 9 -> [0,1]"},
	}
	encoded, _ := json.Marshal(problem)
	backend := &fakeBackend{body: textResponse(string(encoded))}
	client := newTestClient(t, backend)

	got, err := client.GenerateCodingProblem(context.Background(), DifficultyEasy)
	if err != nil {
		t.Fatalf("GenerateCodingProblem: %v", err)
	}
	if got.Title != problem.Title || got.Description != problem.Description {
		t.Errorf("problem = %+v, want %+v", got, problem)
	}

	config := backend.lastReq.GenerationConfig
	if config == nil {
		t.Fatal("request carried no generation config")
	}
	if config.ResponseMIMEType != "application/json" {
		t.Errorf("response mime type = %q", config.ResponseMIMEType)
	}
	if len(config.ResponseSchema) == 0 {
		t.Error("request carried no response schema")
	}
}

func TestClient_GenerateCodingProblem_BadDifficulty(t *testing.T) {
	backend := &fakeBackend{body: textResponse("{}")}
	client := newTestClient(t, backend)

	_, err := client.GenerateCodingProblem(context.Background(), Difficulty("brutal"))
	if err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestClient_TranscribeAndEvaluate(t *testing.T) {
	evaluation := Evaluation{
		Transcript: "I once missed a deadline.",
		Critique:   "Situation was clear; quantify the result.",
	}
	encoded, _ := json.Marshal(evaluation)
	backend := &fakeBackend{body: textResponse(string(encoded))}
	client := newTestClient(t, backend)

	audio := []byte{0x01, 0x02, 0x03, 0x04}
	got, err := client.TranscribeAndEvaluate(context.Background(), audio, "Biggest Failure", "Tell me about a failure.")
	if err != nil {
		t.Fatalf("TranscribeAndEvaluate: %v", err)
	}
	if got.Transcript != evaluation.Transcript || got.Critique != evaluation.Critique {
		t.Errorf("evaluation = %+v, want %+v", got, evaluation)
	}

	parts := backend.lastReq.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want text + audio", len(parts))
	}
	data := parts[1].InlineData
	if data == nil {
		t.Fatal("second part carried no inline data")
	}
	if data.MIMEType != answerAudioMIMEType {
		t.Errorf("mime type = %q, want %q", data.MIMEType, answerAudioMIMEType)
	}
	if data.Data != pcm.Encode(audio) {
		t.Errorf("audio payload not base64 of the recording")
	}
}

func TestClient_TranscribeAndEvaluate_EmptyAudio(t *testing.T) {
	backend := &fakeBackend{body: textResponse("{}")}
	client := newTestClient(t, backend)

	_, err := client.TranscribeAndEvaluate(context.Background(), nil, "theme", "prompt")
	if err == nil {
		t.Fatal("expected error for empty recording")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestClient_TranscribeAndEvaluate_MissingTranscript(t *testing.T) {
	backend := &fakeBackend{body: textResponse(`{"transcript":"","critique":"fine"}`)}
	client := newTestClient(t, backend)

	_, err := client.TranscribeAndEvaluate(context.Background(), []byte{1, 2}, "theme", "prompt")
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
}

func TestClient_EvaluateAggregateSession(t *testing.T) {
	backend := &fakeBackend{body: textResponse("## Final Report\nSolid session.")}
	client := newTestClient(t, backend)

	rounds := []Round{
		{Theme: "Worst Weakness", Prompt: "What is your weakness?", Response: "Overcommitting."},
		{Theme: "Biggest Failure", Prompt: "Describe a failure.", Response: "Shipped a regression."},
	}
	report, err := client.EvaluateAggregateSession(context.Background(), rounds)
	if err != nil {
		t.Fatalf("EvaluateAggregateSession: %v", err)
	}
	if !strings.Contains(report, "Final Report") {
		t.Errorf("report = %q", report)
	}

	sent := backend.lastReq.Contents[0].Parts[0].Text
	for _, round := range rounds {
		if !strings.Contains(sent, round.Prompt) || !strings.Contains(sent, round.Response) {
			t.Errorf("aggregate prompt missing round %q", round.Theme)
		}
	}

	if _, err := client.EvaluateAggregateSession(context.Background(), nil); err == nil {
		t.Error("expected error for empty session")
	}
}

func TestClient_AnalyzeJobDescription(t *testing.T) {
	analysis := DescriptionAnalysis{
		CriteriaMetIDs: []string{"remote", "salary"},
		Reasoning:      "Remote role with listed compensation.",
	}
	encoded, _ := json.Marshal(analysis)
	backend := &fakeBackend{body: textResponse(string(encoded))}
	client := newTestClient(t, backend)

	criteria := []Criterion{
		{ID: "remote", Label: "Fully remote"},
		{ID: "salary", Label: "Salary posted"},
	}
	got, err := client.AnalyzeJobDescription(context.Background(), "We are hiring remotely, $150k.", criteria)
	if err != nil {
		t.Fatalf("AnalyzeJobDescription: %v", err)
	}
	if len(got.CriteriaMetIDs) != 2 || got.CriteriaMetIDs[0] != "remote" {
		t.Errorf("analysis = %+v", got)
	}

	sent := backend.lastReq.Contents[0].Parts[0].Text
	if !strings.Contains(sent, "Fully remote") || !strings.Contains(sent, "salary") {
		t.Errorf("analysis prompt missing criteria: %q", sent)
	}
}

func TestClient_SynthesizeSpeech(t *testing.T) {
	audio := []byte{0x10, 0x20, 0x30, 0x40}
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{
						"inlineData": map[string]any{
							"mimeType": "audio/pcm",
							"data":     pcm.Encode(audio),
						},
					}},
				},
			},
		},
	}
	encoded, _ := json.Marshal(payload)
	backend := &fakeBackend{body: string(encoded)}
	client := newTestClient(t, backend)

	got, err := client.SynthesizeSpeech(context.Background(), "Tell me about yourself.")
	if err != nil {
		t.Fatalf("SynthesizeSpeech: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("audio = %v, want %v", got, audio)
	}

	wantPath := "/v1beta/models/" + DefaultSpeechModel + ":generateContent"
	if backend.lastURL != wantPath {
		t.Errorf("path = %q, want speech model endpoint %q", backend.lastURL, wantPath)
	}
}

func TestClient_ServiceErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		backend := &fakeBackend{
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`,
		}
		client := newTestClient(t, backend)

		_, err := client.GenerateBehavioralPrompt(context.Background(), "theme")
		var serviceErr *ServiceError
		if !errors.As(err, &serviceErr) {
			t.Fatalf("error = %v, want *ServiceError", err)
		}
		if !strings.Contains(serviceErr.Error(), "API key not valid") {
			t.Errorf("error message %q does not surface the backend message", serviceErr.Error())
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		backend := &fakeBackend{body: `{"candidates":[]}`}
		client := newTestClient(t, backend)

		_, err := client.GenerateBehavioralPrompt(context.Background(), "theme")
		var serviceErr *ServiceError
		if !errors.As(err, &serviceErr) {
			t.Fatalf("error = %v, want *ServiceError", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		backend := &fakeBackend{body: `{"candidates": [`}
		client := newTestClient(t, backend)

		if _, err := client.GenerateBehavioralPrompt(context.Background(), "theme"); err == nil {
			t.Fatal("expected error for malformed response")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		client := NewClient(Options{BaseURL: "http://127.0.0.1:0"})
		if _, err := client.GenerateBehavioralPrompt(context.Background(), "theme"); err == nil {
			t.Fatal("expected error for unreachable service")
		}
	})
}
