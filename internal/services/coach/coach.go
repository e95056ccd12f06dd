// Package coach generates AI team insights from strengths profiles via
// OpenRouter (TP-44).
//
// OpenRouter provides a unified API for multiple LLM providers using a
// single API key. The request format follows the OpenAI chat
// completions standard.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Service handles AI insight generation.
type Service struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates a new coach service.
func New(apiKey, defaultModel string) *Service {
	return &Service{
		apiKey: apiKey,
		model:  defaultModel,
		// The default http.Client has no timeout; LLM calls can be slow.
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// MemberProfile is one team member's strengths summary fed to the model.
type MemberProfile struct {
	Name   string
	Themes []ThemeSummary
}

// ThemeSummary is a ranked theme with its domain.
type ThemeSummary struct {
	Rank   int
	Name   string
	Domain string
}

// Options configures how the insight should be generated.
type Options struct {
	Model string // Override the default model
	Focus string // "collaboration", "conflict", "growth"
}

// Result holds the generated team insight.
type Result struct {
	Insight     string   `json:"insight"`
	Suggestions []string `json:"suggestions"`
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
}

// --- OpenRouter API types ---
// These match the OpenAI chat completions format used by OpenRouter.

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// TeamInsight generates coaching guidance for a group of members based
// on their strengths profiles.
func (s *Service) TeamInsight(ctx context.Context, profiles []MemberProfile, opts Options) (*Result, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key not configured; set OPENROUTER_API_KEY")
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no member profiles provided")
	}

	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}
	if opts.Focus == "" {
		opts.Focus = "collaboration"
	}

	prompt := buildPrompt(profiles, opts)

	log.Printf("🤖 Generating %s team insight for %d members using %s", opts.Focus, len(profiles), model)

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an experienced strengths-based team coach. You read CliftonStrengths profiles and give concrete, actionable guidance grounded in the themes you see.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://openrouter.ai/api/v1/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://github.com/TeamPulse-Labs/teampulse-api")
	req.Header.Set("X-Title", "TeamPulse API")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenRouter returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("OpenRouter error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	content := chatResp.Choices[0].Message.Content

	result := parseStructuredOutput(content)
	result.Model = model
	result.Prompt = prompt

	return result, nil
}

// buildPrompt renders the member profiles and focus into the model prompt.
func buildPrompt(profiles []MemberProfile, opts Options) string {
	focusGuide := map[string]string{
		"collaboration": "How should this team divide work and collaborate, given their combined strengths?",
		"conflict":      "Where are the likely friction points between these profiles, and how can the team defuse them?",
		"growth":        "What should each member do to grow their top themes into mature strengths?",
	}

	focus := focusGuide[opts.Focus]
	if focus == "" {
		focus = focusGuide["collaboration"]
	}

	var sb strings.Builder
	for _, p := range profiles {
		sb.WriteString(fmt.Sprintf("### %s\n", p.Name))
		for _, th := range p.Themes {
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", th.Rank, th.Name, th.Domain))
		}
		sb.WriteString("\n")
	}

	return fmt.Sprintf(`Here are the CliftonStrengths profiles of a team:

%s
**Question:** %s

**Important:** Respond with valid JSON in this exact format:
{
  "insight": "Your analysis here",
  "suggestions": ["Suggestion 1", "Suggestion 2", "Suggestion 3"]
}`, sb.String(), focus)
}

// parseStructuredOutput tries to extract JSON from the AI response.
// Falls back to treating the whole response as the insight text.
func parseStructuredOutput(content string) *Result {
	var structured struct {
		Insight     string   `json:"insight"`
		Suggestions []string `json:"suggestions"`
	}

	if err := json.Unmarshal([]byte(content), &structured); err == nil && structured.Insight != "" {
		return &Result{
			Insight:     structured.Insight,
			Suggestions: structured.Suggestions,
		}
	}

	// Models sometimes wrap the JSON in markdown; find the outermost braces.
	start := -1
	end := -1
	braceCount := 0
	for i, c := range content {
		if c == '{' {
			if braceCount == 0 {
				start = i
			}
			braceCount++
		} else if c == '}' {
			braceCount--
			if braceCount == 0 {
				end = i + 1
				break
			}
		}
	}

	if start >= 0 && end > start {
		jsonStr := content[start:end]
		if err := json.Unmarshal([]byte(jsonStr), &structured); err == nil && structured.Insight != "" {
			return &Result{
				Insight:     structured.Insight,
				Suggestions: structured.Suggestions,
			}
		}
	}

	return &Result{
		Insight:     content,
		Suggestions: []string{},
	}
}
