package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunMissingSecretName(t *testing.T) {
	t.Setenv("AWS_SECRET_NAME", "")
	old := envPath
	envPath = t.TempDir()
	t.Cleanup(func() { envPath = old })

	var out bytes.Buffer
	if code := run(&out); code != 1 {
		t.Fatalf("exit code=%d", code)
	}

	text := out.String()
	if !strings.Contains(text, "CyberArk SCA & SIA Policy Retriever") {
		t.Fatalf("banner missing:\n%s", text)
	}
	if !strings.Contains(text, "[ERROR]") || !strings.Contains(text, "AWS_SECRET_NAME") {
		t.Fatalf("output=%q", text)
	}
	if !strings.Contains(text, ".env.example") {
		t.Fatalf("help missing:\n%s", text)
	}
}
