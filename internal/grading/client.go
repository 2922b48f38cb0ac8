// Package grading talks to the external semantic-validation service. Every
// failure mode collapses into ErrUnavailable so callers fall back to manual
// peer scoring instead of surfacing a half-graded round.
package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NewBeeD/NamePlaceAnimalThing/internal/words"
)

// ErrUnavailable means the external grader could not produce a usable verdict
// list. It is never a partial result.
var ErrUnavailable = errors.New("grading service unavailable")

// Entry is one candidate answer. ID is "participantId::category".
type Entry struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Answer   string `json:"answer"`
}

// Verdict is the external service's judgment for one entry.
type Verdict struct {
	Valid      bool
	Confidence float64
	Reason     string
}

type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	limiter *Limiter
	http    *http.Client
}

func New(apiKey, model string, maxConcurrent int) *Client {
	if model == "" {
		model = "gpt-4.1"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com",
		Model:   model,
		limiter: NewLimiter(maxConcurrent),
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Validate grades a batch of answers for one round. The returned map is keyed
// by entry ID; entries the model was not asked about are simply absent.
// Without a context lock, entries the local dictionaries already recognize are
// not sent at all, so they never spend budget on the rate-limited service. A
// context lock disables that skip: a dictionary-known word can still violate
// the lock, and only the model can judge that.
func (c *Client) Validate(ctx context.Context, letter, roundContext string, entries []Entry) (map[string]Verdict, error) {
	if c.APIKey == "" {
		return nil, ErrUnavailable
	}

	batch := entries
	if roundContext == "" {
		batch = make([]Entry, 0, len(entries))
		for _, entry := range entries {
			if words.KnownMatch(entry.Category, entry.Answer) {
				continue
			}
			batch = append(batch, entry)
		}
	}
	if len(batch) == 0 {
		return map[string]Verdict{}, nil
	}

	var text string
	err := c.limiter.Do(func() error {
		var callErr error
		text, callErr = c.call(ctx, letter, roundContext, batch)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	verdicts, ok := parseVerdicts(text)
	if !ok {
		return nil, fmt.Errorf("%w: unparsable verdict payload", ErrUnavailable)
	}
	return verdicts, nil
}

func (c *Client) call(ctx context.Context, letter, roundContext string, entries []Entry) (string, error) {
	contextRule := `4) If an answer is category-correct and plausibly real, prefer VALID over INVALID.`
	if roundContext != "" {
		contextRule = `4) Context lock is active: all answers should be appropriate to this context: ` + roundContext + `. If an answer is contextually plausible, prefer VALID over INVALID.`
	}
	instruction := strings.Join([]string{
		"You validate Name Place Animal Thing answers.",
		"Rules:",
		"1) A valid answer must start with the given round letter.",
		"2) It must semantically match its category.",
		"3) For category Name, also validate spelling and likely-person-name quality.",
		contextRule,
		"5) Be tolerant of capitalization, minor spelling variants, and common transliterations.",
		"6) Do NOT mark INVALID only because a word is uncommon or unfamiliar.",
		"7) Prefer VALID when uncertain; reserve INVALID for clear rule violations (wrong starting letter, clear misspelling, or clear category/context mismatch).",
		"Return strict JSON only in this format:",
		`{"results":[{"id":"<id>","valid":true,"confidence":0.0,"reason":"short reason"}]}`,
	}, "\n")

	userContent, err := json.Marshal(map[string]any{
		"letter":  letter,
		"context": roundContext,
		"entries": entries,
	})
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"model":       c.Model,
		"temperature": 0,
		"input": []map[string]string{
			{"role": "system", "content": instruction},
			{"role": "user", "content": string(userContent)},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/responses", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("grading status %d", resp.StatusCode)
	}

	var out struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if strings.TrimSpace(out.OutputText) != "" {
		return out.OutputText, nil
	}
	var chunks []string
	for _, item := range out.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" && part.Text != "" {
				chunks = append(chunks, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n")), nil
}

// parseVerdicts pulls {"results":[...]} out of free-form model output. If the
// text is not directly JSON, the substring between the first "{" and the last
// "}" is tried before giving up.
func parseVerdicts(text string) (map[string]Verdict, bool) {
	raw, ok := parseJSONObject(text)
	if !ok {
		return nil, false
	}

	var parsed struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Results == nil {
		return nil, false
	}

	verdicts := make(map[string]Verdict, len(parsed.Results))
	for _, item := range parsed.Results {
		var result struct {
			ID         string          `json:"id"`
			Valid      bool            `json:"valid"`
			Confidence json.RawMessage `json:"confidence"`
			Reason     string          `json:"reason"`
		}
		if err := json.Unmarshal(item, &result); err != nil || result.ID == "" {
			continue
		}
		confidence := 0.5
		if len(result.Confidence) > 0 {
			var value float64
			if err := json.Unmarshal(result.Confidence, &value); err == nil {
				confidence = max(0, min(1, value))
			}
		}
		verdicts[result.ID] = Verdict{Valid: result.Valid, Confidence: confidence, Reason: result.Reason}
	}
	return verdicts, true
}

func parseJSONObject(text string) (json.RawMessage, bool) {
	direct := strings.TrimSpace(text)
	if direct == "" {
		return nil, false
	}
	if json.Valid([]byte(direct)) {
		return json.RawMessage(direct), true
	}
	start := strings.Index(direct, "{")
	end := strings.LastIndex(direct, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	slice := direct[start : end+1]
	if !json.Valid([]byte(slice)) {
		return nil, false
	}
	return json.RawMessage(slice), true
}
