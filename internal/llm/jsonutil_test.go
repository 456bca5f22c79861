package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	content := "Here is the plan:\n```json\n{\"analysis\": \"ok\", \"phases\": []}\n```\nLet me know."
	got := ExtractJSON(content)
	var out map[string]any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("extracted invalid JSON: %v (%q)", err, got)
	}
	if out["analysis"] != "ok" {
		t.Fatalf("unexpected analysis: %v", out["analysis"])
	}
}

func TestExtractJSONFenceWithoutLanguage(t *testing.T) {
	content := "```\n{\"a\": 1}\n```"
	got := ExtractJSON(content)
	var out map[string]any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("extracted invalid JSON: %v (%q)", err, got)
	}
}

func TestExtractJSONBareObjectInProse(t *testing.T) {
	content := "Sure! The answer is {\"phases\": [{\"phase\": 1}]} as requested."
	got := ExtractJSON(content)
	var out map[string]any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("extracted invalid JSON: %v (%q)", err, got)
	}
	if _, ok := out["phases"]; !ok {
		t.Fatalf("missing phases key in %q", got)
	}
}

func TestExtractJSONStripsCommentsAndTrailingCommas(t *testing.T) {
	content := `{
  "name": "Central Park", // the green one
  "url": "https://example.com/a//b",
  "tags": ["a", "b",],
}`
	got := ExtractJSON(content)
	var out struct {
		Name string   `json:"name"`
		URL  string   `json:"url"`
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("extracted invalid JSON: %v (%q)", err, got)
	}
	if out.Name != "Central Park" {
		t.Fatalf("comment stripping broke value: %q", out.Name)
	}
	if out.URL != "https://example.com/a//b" {
		t.Fatalf("slashes inside string were mangled: %q", out.URL)
	}
	if len(out.Tags) != 2 {
		t.Fatalf("trailing comma not removed: %v", out.Tags)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	if got := ExtractJSON("I could not produce a plan, sorry."); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
	if got := ExtractJSON(""); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
}
