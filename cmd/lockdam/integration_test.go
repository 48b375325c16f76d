package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/lockdam/internal/tuitest"
)

func TestLockdamOpensLiteratureReview(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	logFile := filepath.Join(t.TempDir(), "lockdam.log")

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--seen-onboarding", "--seed", "7", "--log-file", logFile},
		Dir:     cmdDir,
		Env:     []string{"LOCKDAM_CACHE_DIR=" + t.TempDir()},
		Width:   120,
		Height:  36,
		Steps: []tuitest.Step{
			{Delay: time.Second},
			{Input: []byte("2")},
			{Delay: time.Second},
			{Input: tuitest.Wheel(60, 10, true)},
			{Delay: 300 * time.Millisecond},
			{Input: []byte("q")},
		},
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	for _, want := range []string{"Return Home", "The Production of Space"} {
		if _, ok := rec.FirstContaining(want); !ok {
			t.Fatalf("no frame shows %q:\n%s", want, tuitest.StripANSI(string(rec.Raw)))
		}
	}
}

func TestLockdamOnboardingGate(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--seed", "3", "--log-file", filepath.Join(t.TempDir(), "lockdam.log")},
		Dir:     cmdDir,
		Width:   120,
		Height:  36,
		Steps: []tuitest.Step{
			{Delay: time.Second},
			{Input: []byte("2")},
			{Delay: 500 * time.Millisecond},
			{Input: tuitest.KeyCtrlC},
		},
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if _, ok := rec.FirstContaining("click to dismiss"); !ok {
		t.Fatalf("onboarding never appeared:\n%s", tuitest.StripANSI(string(rec.Raw)))
	}
	if strings.Contains(tuitest.StripANSI(string(rec.Raw)), "Return Home") {
		t.Fatalf("a key reached the home links while onboarding was showing")
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "lockdam-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
