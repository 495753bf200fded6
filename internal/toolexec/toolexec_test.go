package toolexec

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun_CapturesStdout(t *testing.T) {
	out, err := Run(context.Background(), "", 10*time.Second, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRun_FailureFoldsStderrIntoError(t *testing.T) {
	out, err := Run(context.Background(), "", 10*time.Second, "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatalf("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
}

func TestRun_FailureKeepsStdoutClean(t *testing.T) {
	out, err := Run(context.Background(), "", 10*time.Second, "sh", "-c", "echo report; echo noise >&2; exit 1")
	if err == nil {
		t.Fatalf("expected error for non-zero exit")
	}
	if strings.TrimSpace(out) != "report" {
		t.Fatalf("stdout should carry only the report, got %q", out)
	}
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), "", 100*time.Millisecond, "sh", "-c", "sleep 5")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout did not bound execution")
	}
}

func TestAvailable(t *testing.T) {
	if !Available("sh") {
		t.Fatalf("expected sh on PATH")
	}
	if Available("definitely-not-a-binary-xyz") {
		t.Fatalf("did not expect fake binary on PATH")
	}
}
