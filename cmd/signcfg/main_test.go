package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/signcfg/internal/signing"
)

func useTestLogger(t *testing.T) {
	t.Helper()

	original := newLogger
	t.Cleanup(func() {
		newLogger = original
	})
	newLogger = func(string) (*zap.Logger, error) {
		return zaptest.NewLogger(t), nil
	}
}

func writeProperties(t *testing.T, root, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(root, "key.properties"), []byte(content), 0o600); err != nil {
		t.Fatalf("write key.properties: %v", err)
	}
}

func TestRunResolveRelease(t *testing.T) {
	useTestLogger(t)
	root := t.TempDir()
	writeProperties(t, root, "storeFile=a.jks\nstorePassword=p1\nkeyAlias=k1\nkeyPassword=p2\n")

	var out bytes.Buffer
	if err := run([]string{"--project-root", root, "resolve", "release"}, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	var plan struct {
		Variant string `json:"variant"`
		Signing struct {
			StoreFile     string `json:"storeFile"`
			StorePassword string `json:"storePassword"`
			KeyAlias      string `json:"keyAlias"`
			KeyPassword   string `json:"keyPassword"`
		} `json:"signing"`
	}
	if err := json.Unmarshal(out.Bytes(), &plan); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if plan.Variant != "release" {
		t.Fatalf("unexpected variant %q", plan.Variant)
	}
	if plan.Signing.StoreFile != "a.jks" || plan.Signing.StorePassword != "p1" ||
		plan.Signing.KeyAlias != "k1" || plan.Signing.KeyPassword != "p2" {
		t.Fatalf("unexpected signing block: %+v", plan.Signing)
	}
}

func TestRunResolveReleaseWithoutProperties(t *testing.T) {
	useTestLogger(t)

	var out bytes.Buffer
	err := run([]string{"--project-root", t.TempDir(), "resolve", "release"}, &out)
	if !errors.Is(err, signing.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no plan on stdout, got %s", out.String())
	}
}

func TestRunResolveDebugWithoutProperties(t *testing.T) {
	useTestLogger(t)

	var out bytes.Buffer
	if err := run([]string{"--project-root", t.TempDir(), "--format", "yaml", "resolve", "debug"}, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("variant: debug")) {
		t.Fatalf("expected yaml debug plan, got %s", out.String())
	}
}

func TestRunCheck(t *testing.T) {
	useTestLogger(t)
	root := t.TempDir()
	writeProperties(t, root, "storeFile=a.jks\nstorePassword=p1\nkeyAlias=k1\n")

	var out bytes.Buffer
	err := run([]string{"--project-root", root, "check"}, &out)
	if !errors.Is(err, signing.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("keyPassword")) {
		t.Fatalf("expected report to name the missing key, got %s", out.String())
	}
}

func TestRunRejectsUnknownVariant(t *testing.T) {
	useTestLogger(t)

	if err := run([]string{"resolve", "profile"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}
