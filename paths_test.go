package word2pdf

import (
	"errors"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsDocument / TestDefaultDestination
// ---------------------------------------------------------------------------

func TestIsDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.docx", true},
		{"b.doc", true},
		{"REPORT.DOCX", true},
		{"c.txt", false},
		{"d.docm", false},
		{"e.pdf", false},
		{"doc", false},
	}

	for _, tt := range tests {
		if got := IsDocument(tt.path); got != tt.want {
			t.Errorf("IsDocument(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDefaultDestination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{filepath.Join("in", "a.docx"), filepath.Join("in", "a.pdf")},
		{filepath.Join("in", "b.doc"), filepath.Join("in", "b.pdf")},
		{"minutes.2024.docx", "minutes.2024.pdf"},
	}

	for _, tt := range tests {
		if got := DefaultDestination(tt.source); got != tt.want {
			t.Errorf("DefaultDestination(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestValidateSource
// ---------------------------------------------------------------------------

func TestValidateSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "ok.docx", "notes.txt")

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"valid docx", filepath.Join(dir, "ok.docx"), nil},
		{"missing", filepath.Join(dir, "gone.docx"), ErrNotFound},
		{"wrong extension", filepath.Join(dir, "notes.txt"), ErrInvalidFormat},
		{"directory", dir, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateSource(tt.source)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateSource() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSource() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsOwnerFile(t *testing.T) {
	t.Parallel()

	if !IsOwnerFile(filepath.Join("docs", "~$report.docx")) {
		t.Error("IsOwnerFile(~$report.docx) = false")
	}
	if IsOwnerFile(filepath.Join("~$docs", "report.docx")) {
		t.Error("IsOwnerFile must only look at the base name")
	}
}
