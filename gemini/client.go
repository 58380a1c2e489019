// Package gemini implements a thin client for the generative backend.
//
// The core treats the backend as an opaque capability: every method is one
// request/response exchange, and every failure comes back as a ServiceError
// for the caller to surface. No retries happen here; retry is always a
// fresh user-initiated action.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Vanndavid/Mission-Employed/internal/pcm"
	internalstrings "github.com/Vanndavid/Mission-Employed/internal/strings"
)

const (
	// DefaultBaseURL is the Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the text/evaluation model.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultSpeechModel is the text-to-speech model.
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"

	// APIKeyEnv is the environment variable consulted for the API key.
	APIKeyEnv = "GEMINI_API_KEY"

	answerAudioMIMEType = "audio/wav"
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	Model       string
	SpeechModel string
	APIKey      string
	HTTPClient  *http.Client
}

// Client calls the generative backend over HTTP.
type Client struct {
	baseURL     string
	model       string
	speechModel string
	apiKey      string
	httpClient  *http.Client
}

// NewClient creates a client, applying defaults for unset options.
func NewClient(opts Options) *Client {
	client := &Client{
		baseURL:     internalstrings.TrimTrailingSlash(opts.BaseURL),
		model:       opts.Model,
		speechModel: opts.SpeechModel,
		apiKey:      opts.APIKey,
		httpClient:  opts.HTTPClient,
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	if client.model == "" {
		client.model = DefaultModel
	}
	if client.speechModel == "" {
		client.speechModel = DefaultSpeechModel
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	return client
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     json.RawMessage `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// generate performs one generateContent exchange and returns the first
// response part.
func (c *Client) generate(ctx context.Context, op, model string, request generateRequest) (part, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return part{}, serviceError(op, "encode request", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return part{}, serviceError(op, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return part{}, serviceError(op, "service unreachable", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return part{}, serviceError(op, "malformed response", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		if decoded.Error != nil && decoded.Error.Message != "" {
			message = decoded.Error.Message
		}
		return part{}, serviceError(op, "service error: "+message, nil)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return part{}, serviceError(op, "empty response", nil)
	}
	return decoded.Candidates[0].Content.Parts[0], nil
}

// generateText runs generate and requires a text part.
func (c *Client) generateText(ctx context.Context, op string, request generateRequest) (string, error) {
	result, err := c.generate(ctx, op, c.model, request)
	if err != nil {
		return "", err
	}
	if result.Text == "" {
		return "", serviceError(op, "response carried no text", nil)
	}
	return result.Text, nil
}

func textRequest(text string, config *generationConfig) generateRequest {
	return generateRequest{
		Contents:         []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: config,
	}
}

// GenerateBehavioralPrompt asks for one behavioral interview question for
// the given theme.
func (c *Client) GenerateBehavioralPrompt(ctx context.Context, theme string) (string, error) {
	text, err := c.generateText(ctx, "generate prompt", textRequest(behavioralPrompt(theme), nil))
	if err != nil {
		return "", err
	}
	return internalstrings.NormalizeWhitespace(text), nil
}

// GenerateCodingProblem asks for a practice problem at the given
// difficulty.
func (c *Client) GenerateCodingProblem(ctx context.Context, difficulty Difficulty) (*CodingProblem, error) {
	const op = "generate problem"
	if !difficulty.IsValid() {
		return nil, serviceError(op, fmt.Sprintf("unknown difficulty %q", difficulty), nil)
	}

	request := textRequest(codingProblemPrompt(difficulty), &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   json.RawMessage(codingProblemSchema),
	})
	text, err := c.generateText(ctx, op, request)
	if err != nil {
		return nil, err
	}

	var problem CodingProblem
	if err := json.Unmarshal([]byte(text), &problem); err != nil {
		return nil, serviceError(op, "malformed problem payload", err)
	}
	return &problem, nil
}

// EvaluateSolution critiques a coding solution or strategy.
func (c *Client) EvaluateSolution(ctx context.Context, problemTitle, problemDescription, solution string) (string, error) {
	return c.generateText(ctx, "evaluate solution", textRequest(solutionEvaluationPrompt(problemTitle, problemDescription, solution), nil))
}

// EvaluateAnswer critiques a typed behavioral answer.
func (c *Client) EvaluateAnswer(ctx context.Context, theme, prompt, answer string) (string, error) {
	return c.generateText(ctx, "evaluate answer", textRequest(answerEvaluationPrompt(theme, prompt, answer), nil))
}

// TranscribeAndEvaluate submits an answer recording and returns its
// transcript together with a critique.
func (c *Client) TranscribeAndEvaluate(ctx context.Context, audio []byte, theme, prompt string) (*Evaluation, error) {
	const op = "transcribe answer"
	if len(audio) == 0 {
		return nil, serviceError(op, "empty recording", nil)
	}

	request := generateRequest{
		Contents: []content{{Parts: []part{
			{Text: answerTranscriptionPrompt(theme, prompt)},
			{InlineData: &inlineData{MIMEType: answerAudioMIMEType, Data: pcm.Encode(audio)}},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(evaluationSchema),
		},
	}

	text, err := c.generateText(ctx, op, request)
	if err != nil {
		return nil, err
	}

	var evaluation Evaluation
	if err := json.Unmarshal([]byte(text), &evaluation); err != nil {
		return nil, serviceError(op, "malformed evaluation payload", err)
	}
	if evaluation.Transcript == "" {
		return nil, serviceError(op, "evaluation carried no transcript", nil)
	}
	return &evaluation, nil
}

// EvaluateAggregateSession reviews a complete mock interview and returns
// the final report.
func (c *Client) EvaluateAggregateSession(ctx context.Context, rounds []Round) (string, error) {
	const op = "evaluate session"
	if len(rounds) == 0 {
		return "", serviceError(op, "no rounds to evaluate", nil)
	}
	return c.generateText(ctx, op, textRequest(aggregatePrompt(rounds), nil))
}

// AnalyzeJobDescription scores a job description against the fit criteria.
func (c *Client) AnalyzeJobDescription(ctx context.Context, description string, criteria []Criterion) (*DescriptionAnalysis, error) {
	const op = "analyze description"
	request := textRequest(analysisPrompt(description, criteria), &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   json.RawMessage(analysisSchema),
	})

	text, err := c.generateText(ctx, op, request)
	if err != nil {
		return nil, err
	}

	var analysis DescriptionAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, serviceError(op, "malformed analysis payload", err)
	}
	return &analysis, nil
}

// SynthesizeSpeech converts text to raw PCM audio. Callers treat failure
// as non-fatal and skip playback.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	const op = "synthesize speech"

	request := generateRequest{
		Contents:         []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"AUDIO"}},
	}
	result, err := c.generate(ctx, op, c.speechModel, request)
	if err != nil {
		return nil, err
	}
	if result.InlineData == nil || result.InlineData.Data == "" {
		return nil, serviceError(op, "response carried no audio", nil)
	}

	audio, err := pcm.Decode(result.InlineData.Data)
	if err != nil {
		return nil, serviceError(op, "malformed audio payload", err)
	}
	return audio, nil
}
