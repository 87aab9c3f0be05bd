package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPrintsRequestedNotes(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-type", "bandpass", "-gain", "2", "60", "69"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, errOut.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, rule and 2 rows:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[3], "69") || !strings.Contains(lines[3], "440.00") {
		t.Fatalf("row for note 69 = %q", lines[3])
	}
}

func TestRunRejectsBadNote(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"128"}, &out, &errOut); err == nil {
		t.Fatal("expected error for note 128")
	}
}
