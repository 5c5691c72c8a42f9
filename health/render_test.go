package health

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const testHref = "http://localhost:8445/_health"

func TestRender_NoDetails(t *testing.T) {
	body, err := Render(Report{Status: StatusGreen}, testHref)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("rendered document is not valid JSON: %v", err)
	}
	if doc["status"] != "green" {
		t.Errorf("status = %v, want green", doc["status"])
	}
	if _, present := doc["details"]; present {
		t.Error("details should be omitted when empty")
	}

	links := doc["links"].(map[string]any)
	self := links["self"].(map[string]any)
	if self["href"] != testHref {
		t.Errorf("links.self.href = %v, want %v", self["href"], testHref)
	}
}

func TestRender_LeafDetails(t *testing.T) {
	report := Report{
		Status: StatusRed,
		Details: map[string]ProbeResult{
			"database": Green("database"),
			"cache":    Red("cache", "connection refused"),
		},
	}

	body, err := Render(report, testHref)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	details := doc["details"].(map[string]any)
	if details["database"] != "green" {
		t.Errorf("database = %v, want bare green", details["database"])
	}
	if details["cache"] != "red" {
		t.Errorf("cache = %v, want bare red", details["cache"])
	}
}

func TestRender_TwoLevels(t *testing.T) {
	report := Report{
		Status: StatusRed,
		Details: map[string]ProbeResult{
			"downstream": Green("downstream").WithChildren(map[string]ProbeResult{
				"users":   Green("users"),
				"billing": Red("billing", "upstream 503"),
			}),
		},
	}

	body, err := Render(report, testHref)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	downstream := doc["details"].(map[string]any)["downstream"].(map[string]any)
	if downstream["status"] != "red" {
		t.Errorf("downstream status = %v, want red", downstream["status"])
	}
	inner := downstream["details"].(map[string]any)
	if inner["users"] != "green" || inner["billing"] != "red" {
		t.Errorf("inner details = %v", inner)
	}
}

func TestRender_TooDeep(t *testing.T) {
	report := Report{
		Status: StatusGreen,
		Details: map[string]ProbeResult{
			"outer": Green("outer").WithChildren(map[string]ProbeResult{
				"middle": Green("middle").WithChildren(map[string]ProbeResult{
					"leaf": Green("leaf"),
				}),
			}),
		},
	}

	_, err := Render(report, testHref)
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Render() error = %v, want ErrNestingTooDeep", err)
	}
}

func TestRender_InvalidProbeName(t *testing.T) {
	for _, name := range []string{"bad name", "bad-name", "bad.name", "name1", ""} {
		report := Report{
			Status:  StatusGreen,
			Details: map[string]ProbeResult{name: Green(name)},
		}
		_, err := Render(report, testHref)
		if !errors.Is(err, ErrInvalidProbeName) {
			t.Errorf("Render() with name %q error = %v, want ErrInvalidProbeName", name, err)
		}
	}

	// Underscores and letters are the full legal alphabet.
	report := Report{
		Status:  StatusGreen,
		Details: map[string]ProbeResult{"object_store": Green("object_store")},
	}
	if _, err := Render(report, testHref); err != nil {
		t.Errorf("Render() with name object_store error = %v", err)
	}
}

func TestRender_MissingSelfHref(t *testing.T) {
	_, err := Render(Report{Status: StatusGreen}, "")
	if !errors.Is(err, ErrMissingSelfHref) {
		t.Errorf("Render() error = %v, want ErrMissingSelfHref", err)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	original := Report{
		Status: StatusRed,
		Details: map[string]ProbeResult{
			"database": Green("database"),
			"downstream": Green("downstream").WithChildren(map[string]ProbeResult{
				"users":   Green("users"),
				"billing": Red("billing", "upstream 503"),
			}),
		},
	}

	body, err := Render(original, testHref)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	parsed, err := ParseReportDocument(body)
	if err != nil {
		t.Fatalf("ParseReportDocument() error = %v", err)
	}

	if parsed.Status != original.Status {
		t.Errorf("round-trip status = %v, want %v", parsed.Status, original.Status)
	}
	if parsed.SelfLink != testHref {
		t.Errorf("round-trip self link = %q, want %q", parsed.SelfLink, testHref)
	}
	if parsed.Details["database"].Status != StatusGreen {
		t.Error("round-trip lost the database leaf")
	}

	downstream := parsed.Details["downstream"]
	if downstream.Status != StatusRed {
		t.Error("round-trip composite status should be the rolled-up red")
	}
	if downstream.Children["users"].Status != StatusGreen {
		t.Error("round-trip lost the users child")
	}
	if downstream.Children["billing"].Status != StatusRed {
		t.Error("round-trip lost the billing child")
	}
}

func TestRender_DetailNeverLeaks(t *testing.T) {
	report := Report{
		Status: StatusRed,
		Details: map[string]ProbeResult{
			"cache": Red("cache", "password=hunter2 rejected"),
		},
	}

	body, err := Render(report, testHref)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// The wire format carries statuses only; details stay in logs.
	if strings.Contains(string(body), "hunter2") {
		t.Error("rendered document should not include probe detail text")
	}
}
