package app

import (
	"testing"
	"time"

	"gatescan/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ScorerBin:            "kube-score",
		ScorerGradeThreshold: 5,
		ToolTimeout:          time.Second,
	}
}

func ids(t *testing.T, includeCSV, disableCSV string) []string {
	t.Helper()
	var out []string
	for _, g := range buildGates(includeCSV, disableCSV, testConfig()) {
		out = append(out, g.ID())
	}
	return out
}

func TestBuildGates_AllByDefault(t *testing.T) {
	got := ids(t, "", "")
	want := []string{"scorecard", "secrets", "template"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBuildGates_IncludeWins(t *testing.T) {
	got := ids(t, "secrets, template", "secrets")
	if len(got) != 2 || got[0] != "secrets" || got[1] != "template" {
		t.Fatalf("unexpected gates: %v", got)
	}
}

func TestBuildGates_Disable(t *testing.T) {
	got := ids(t, "", "scorecard")
	if len(got) != 2 || got[0] != "secrets" || got[1] != "template" {
		t.Fatalf("unexpected gates: %v", got)
	}
}

func TestBuildGates_UnknownInclude(t *testing.T) {
	if got := ids(t, "nosuchgate", ""); len(got) != 0 {
		t.Fatalf("expected no gates, got %v", got)
	}
}
