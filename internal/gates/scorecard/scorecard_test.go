package scorecard

import (
	"testing"
	"time"

	"gatescan/internal/gates"
	"gatescan/internal/selector"
)

const sampleOutput = `[
  {
    "object": {"kind": "Deployment", "name": "web"},
    "checks": [
      {"id": "container-security-context-user", "grade": 1,
       "comment": "container should not run as root",
       "suggestion": "set runAsUser above 10000",
       "path": ".spec .containers[] .securityContext .runAsUser -gt 10000"},
      {"id": "service-account", "grade": 10, "comment": "ok",
       "path": ".spec .serviceAccountName"}
    ]
  }
]`

func TestParseReports(t *testing.T) {
	reports, err := parseReports([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reports) != 1 || len(reports[0].Checks) != 2 {
		t.Fatalf("unexpected shape: %+v", reports)
	}
	if reports[0].Object.Kind != "Deployment" || reports[0].Object.Name != "web" {
		t.Fatalf("unexpected object: %+v", reports[0].Object)
	}
}

func TestParseReports_Invalid(t *testing.T) {
	if _, err := parseReports([]byte("kube-score: unknown flag")); err == nil {
		t.Fatalf("expected parse error for non-JSON output")
	}
}

func TestFindings_ThresholdAndSeverity(t *testing.T) {
	reports, err := parseReports([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	objects := []objectRef{{Kind: "Deployment", Name: "web"}}

	g := New("kube-score", 5, time.Second)
	findings := g.findings("deploy.yaml", reports, objects)
	if len(findings) != 1 {
		t.Fatalf("expected only the failing check, got %d findings", len(findings))
	}
	f := findings[0]
	if f.Severity != gates.SeverityCritical {
		t.Fatalf("grade 1 should be critical, got %s", f.Severity)
	}
	if f.Message != "Deployment/web: container should not run as root" {
		t.Fatalf("unexpected message: %q", f.Message)
	}
	if f.Selector.Kind != selector.KindStructural || len(f.Selector.Segments) != 4 {
		t.Fatalf("unexpected selector: %+v", f.Selector)
	}
	if f.Selector.Segments[3].Name != "runAsUser" {
		t.Fatalf("comparison clause should be truncated, got %+v", f.Selector.Segments)
	}
}

func TestDecodeObjects_MultiDocument(t *testing.T) {
	manifest := `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
---
apiVersion: v1
kind: Service
metadata:
  name: web-svc
`
	objects := decodeObjects([]byte(manifest))
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %+v", objects)
	}
	if objects[0].Kind != "Deployment" || objects[1].Name != "web-svc" {
		t.Fatalf("unexpected objects: %+v", objects)
	}
}

func TestDecodeObjects_Garbage(t *testing.T) {
	if objects := decodeObjects([]byte(":: not yaml ::")); len(objects) != 0 {
		t.Fatalf("expected no objects, got %+v", objects)
	}
}
