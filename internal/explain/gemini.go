package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig configures the text-generation client.
type GeminiConfig struct {
	APIKey     string
	Model      string // e.g. "gemini-2.0-flash"
	BaseURL    string // overridden in tests
	HTTPClient *http.Client
}

// GeminiClient calls the generateContent endpoint and parses the JSON body
// the prompt asks the model to emit.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GeminiClient{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r geminiResponse) firstText() string {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if strings.TrimSpace(p.Text) != "" {
				return p.Text
			}
		}
	}
	return ""
}

// Generate requests an explanation for one answered question.
func (g *GeminiClient) Generate(ctx context.Context, req Request) (Explanation, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return Explanation{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Explanation{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("X-goog-api-key", g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return Explanation{}, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Explanation{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Explanation{}, fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Explanation{}, fmt.Errorf("malformed generation response: %w", err)
	}

	return parseExplanation(out.firstText())
}

// parseExplanation decodes the model's JSON payload, tolerating markdown
// code fences around it.
func parseExplanation(text string) (Explanation, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Explanation{}, fmt.Errorf("empty generation response")
	}

	var ex Explanation
	if err := json.Unmarshal([]byte(cleaned), &ex); err != nil {
		return Explanation{}, fmt.Errorf("explanation is not valid JSON: %w", err)
	}
	if ex.Explanation == "" {
		return Explanation{}, fmt.Errorf("explanation payload is missing its text")
	}
	return ex, nil
}

func buildPrompt(req Request) string {
	result := "INCORRECT"
	if req.Correct {
		result = "CORRECT"
	}
	excerpt := req.PassageExcerpt
	if len(excerpt) > 1000 {
		excerpt = excerpt[:1000] + "..."
	}

	var b strings.Builder
	b.WriteString("You are an IELTS Reading expert. Analyze this question and provide a detailed explanation in the exact format requested.\n\n")
	fmt.Fprintf(&b, "PASSAGE EXCERPT: %q\n\n", excerpt)
	fmt.Fprintf(&b, "QUESTION: %q\n", req.QuestionText)
	fmt.Fprintf(&b, "CORRECT ANSWER: %s\n", req.CorrectAnswer)
	fmt.Fprintf(&b, "USER ANSWER: %s\n", req.UserAnswer)
	fmt.Fprintf(&b, "RESULT: %s\n\n", result)
	b.WriteString("Please provide:\n")
	b.WriteString("1. Keywords with Vietnamese translations (identify 2-3 key words from the question and passage)\n")
	fmt.Fprintf(&b, "2. A detailed explanation opening with: For Question %d — %q — the answer is %s because [reason].\n", req.QuestionID, req.QuestionText, req.CorrectAnswer)
	b.WriteString("3. The key sentence quoted exactly from the passage.\n")
	b.WriteString("4. Two or three bullet reasoning points.\n\n")
	b.WriteString("Format your response as JSON:\n")
	b.WriteString(`{
  "keywords": [
    {"word": "word1", "translation": "Vietnamese translation", "source": "question/passage"},
    {"word": "word2", "translation": "Vietnamese translation", "source": "question/passage"}
  ],
  "explanation": "For Question X explanation...",
  "keysentence": "exact quote from passage",
  "reasoning": ["Point 1", "Point 2", "Point 3"]
}`)
	return b.String()
}
