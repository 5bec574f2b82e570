package main

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Per-command flag sets
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseConvertFlags([]string{
		"in.docx", "-o", "out.pdf", "-e", "word", "--soffice", "/bin/soffice",
		"-t", "2m", "--lock-file", "/tmp/l", "--validate", "-v", "--no-color",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	want := commonFlags{
		engine: "word", soffice: "/bin/soffice", timeout: "2m", lockFile: "/tmp/l",
		validate: true, verbose: true, noColor: true,
	}
	if f.common != want {
		t.Errorf("common = %+v, want %+v", f.common, want)
	}
	if f.output != "out.pdf" {
		t.Errorf("output = %q, want %q", f.output, "out.pdf")
	}
	if diff := cmp.Diff([]string{"in.docx"}, positional); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBatchFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseBatchFlags([]string{"docs", "-r", "-o", "pdf", "-q"})
	if err != nil {
		t.Fatalf("parseBatchFlags() error = %v", err)
	}
	if !f.recursive || f.output != "pdf" || !f.common.quiet {
		t.Errorf("flags = %+v", f)
	}
	if diff := cmp.Diff([]string{"docs"}, positional); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseRunFlags([]string{"-c", "work.yaml"})
	if err != nil {
		t.Fatalf("parseRunFlags() error = %v", err)
	}
	if f.config != "work.yaml" || len(positional) != 0 {
		t.Errorf("config = %q, positional = %v", f.config, positional)
	}
}

func TestParseWatchFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseWatchFlags([]string{"inbox"})
	if err != nil {
		t.Fatalf("parseWatchFlags() error = %v", err)
	}
	if f.debounce != defaultDebounce || f.existing {
		t.Errorf("defaults = %+v", f)
	}

	f, _, err = parseWatchFlags([]string{"inbox", "--debounce", "500ms", "--existing", "-r"})
	if err != nil {
		t.Fatalf("parseWatchFlags() error = %v", err)
	}
	if f.debounce != 500*time.Millisecond || !f.existing || !f.recursive {
		t.Errorf("flags = %+v", f)
	}

	if _, _, err := parseWatchFlags([]string{"inbox", "--debounce", "0s"}); !errors.Is(err, ErrInvalidFlag) {
		t.Errorf("zero debounce error = %v, want %v", err, ErrInvalidFlag)
	}
}

func TestParseFindFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseFindFlags([]string{"out", "-H", "24", "-m", "rprt"})
	if err != nil {
		t.Fatalf("parseFindFlags() error = %v", err)
	}
	if f.hours != 24 || f.match != "rprt" {
		t.Errorf("flags = %+v", f)
	}
	if diff := cmp.Diff([]string{"out"}, positional); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := parseFindFlags([]string{"--hours", "0"}); !errors.Is(err, ErrInvalidFlag) {
		t.Errorf("zero hours error = %v, want %v", err, ErrInvalidFlag)
	}
}
