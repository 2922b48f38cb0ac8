package grading

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func respond(t *testing.T, text string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"output_text": text})
	}
}

func newTestClient(url string) *Client {
	c := New("test-key", "gpt-4.1", 2)
	c.BaseURL = url
	return c
}

func TestValidateWithoutCredential(t *testing.T) {
	c := New("", "gpt-4.1", 2)
	_, err := c.Validate(context.Background(), "B", "", []Entry{{ID: "u1::Name", Category: "Name", Answer: "Bzzkt"}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without credential, got %v", err)
	}
}

func TestValidateSkipsDictionaryKnownEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected when the dictionary covers every entry")
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	verdicts, err := c.Validate(context.Background(), "B", "", []Entry{
		{ID: "u1::Animal", Category: "Animal", Answer: "Bear"},
		{ID: "u1::Name", Category: "Name", Answer: "Ben"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(verdicts) != 0 {
		t.Fatalf("expected empty verdict map, got %v", verdicts)
	}
}

func TestValidateContextLockSendsKnownEntries(t *testing.T) {
	body := `{"results":[{"id":"u1::Animal","valid":false,"confidence":0.95,"reason":"not aquatic"}]}`
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(map[string]any{"output_text": body})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	verdicts, err := c.Validate(context.Background(), "B", "underwater creatures only", []Entry{
		{ID: "u1::Animal", Category: "Animal", Answer: "Bear"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !called {
		t.Fatal("a context lock must send dictionary-known entries to the model")
	}
	if v := verdicts["u1::Animal"]; v.Valid || v.Confidence != 0.95 {
		t.Fatalf("contextual rejection should come through, got %+v", v)
	}
}

func TestValidateParsesVerdicts(t *testing.T) {
	body := `{"results":[` +
		`{"id":"u1::Thing","valid":true,"confidence":0.9,"reason":"real thing"},` +
		`{"id":"u2::Thing","valid":false,"confidence":1.5,"reason":"made up"},` +
		`{"id":"u3::Thing","valid":false},` +
		`{"valid":true,"confidence":0.4}` +
		`]}`
	ts := httptest.NewServer(respond(t, body))
	defer ts.Close()

	c := newTestClient(ts.URL)
	verdicts, err := c.Validate(context.Background(), "B", "", []Entry{
		{ID: "u1::Thing", Category: "Thing", Answer: "Bzzkt"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if v := verdicts["u1::Thing"]; !v.Valid || v.Confidence != 0.9 || v.Reason != "real thing" {
		t.Fatalf("unexpected verdict for u1: %+v", v)
	}
	if v := verdicts["u2::Thing"]; v.Valid || v.Confidence != 1 {
		t.Fatalf("confidence should clamp to 1, got %+v", v)
	}
	if v := verdicts["u3::Thing"]; v.Confidence != 0.5 {
		t.Fatalf("missing confidence should default to 0.5, got %+v", v)
	}
	if len(verdicts) != 3 {
		t.Fatalf("entry without id should be skipped, got %d verdicts", len(verdicts))
	}
}

func TestValidateExtractsEmbeddedJSON(t *testing.T) {
	ts := httptest.NewServer(func() http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"output": []map[string]any{
					{"type": "reasoning"},
					{"type": "message", "content": []map[string]any{
						{"type": "output_text", "text": `Sure! {"results":[{"id":"u1::Thing","valid":true,"confidence":0.7}]} Done.`},
					}},
				},
			})
		}
	}())
	defer ts.Close()

	c := newTestClient(ts.URL)
	verdicts, err := c.Validate(context.Background(), "B", "", []Entry{
		{ID: "u1::Thing", Category: "Thing", Answer: "Bzzkt"},
	})
	if err != nil {
		t.Fatalf("expected substring extraction to succeed, got %v", err)
	}
	if v := verdicts["u1::Thing"]; !v.Valid || v.Confidence != 0.7 {
		t.Fatalf("unexpected verdict %+v", v)
	}
}

func TestValidateUnavailableOnBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Validate(context.Background(), "B", "", []Entry{
		{ID: "u1::Thing", Category: "Thing", Answer: "Bzzkt"},
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on non-2xx, got %v", err)
	}
}

func TestValidateUnavailableOnGarbageOutput(t *testing.T) {
	ts := httptest.NewServer(respond(t, "I could not decide, sorry."))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Validate(context.Background(), "B", "", []Entry{
		{ID: "u1::Thing", Category: "Thing", Answer: "Bzzkt"},
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on unparsable output, got %v", err)
	}
}

func TestParseVerdictsSubstringFallback(t *testing.T) {
	text := "leading noise {\"results\":[{\"id\":\"a\",\"valid\":true}]} trailing"
	verdicts, ok := parseVerdicts(text)
	if !ok {
		t.Fatal("expected substring fallback to parse")
	}
	if !verdicts["a"].Valid {
		t.Fatalf("unexpected verdicts %v", verdicts)
	}

	if _, ok := parseVerdicts("no braces at all"); ok {
		t.Fatal("expected failure without JSON object")
	}
	if _, ok := parseVerdicts(`{"notresults":[]}`); ok {
		t.Fatal("expected failure when results array is missing")
	}
}
