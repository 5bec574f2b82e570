// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// engineDiagnostics maps engine error fragments to troubleshooting advice.
// Order matters: the first match wins.
var engineDiagnostics = []struct {
	fragment string
	hint     string
}{
	{"0x800a03ec", "the document may be corrupted or password-protected; open it in Word to check"},
	{"0x80010001", "Word is busy; close open dialogs and other Word windows, then retry"},
	{"0x800706ba", "Word stopped responding; end stray WINWORD.EXE processes and retry"},
	{"source file could not be loaded", "LibreOffice could not read the file; check that it opens in a word processor"},
	{"password", "password-protected documents cannot be converted unattended"},
}

// ForEngineUnavailable returns hints for a missing or unusable engine.
func ForEngineUnavailable(engine string) string {
	var hints []string

	switch engine {
	case "word":
		hints = append(hints, "Word automation needs Windows with Microsoft Word installed; try --engine office")
	default:
		if os.Getenv("WORD2PDF_SOFFICE") == "" {
			hints = append(hints, "install LibreOffice or set WORD2PDF_SOFFICE to the soffice binary")
		}
		if IsInContainer() {
			hints = append(hints, "in containers, install the libreoffice-writer package")
		}
	}

	return formatHints(hints)
}

// ForEngineError returns advice for a known engine diagnostic in msg,
// or an empty string when nothing matches.
func ForEngineError(msg string) string {
	lower := strings.ToLower(msg)
	for _, d := range engineDiagnostics {
		if strings.Contains(lower, d.fragment) {
			return format(d.hint)
		}
	}
	return ""
}

// ForEngineLocked returns a hint when another process holds the engine.
func ForEngineLocked() string {
	return format("another word2pdf conversion is running; wait for it or use a different --lock-file")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-word2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "pass a path: word2pdf run /path/to/config.json"

	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), "go-word2pdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForInvalidFormat returns hints for unsupported source files.
func ForInvalidFormat() string {
	return format("only .doc and .docx files are converted; save other formats as .docx first")
}

// slashed normalizes separators so Windows paths match too.
func slashed(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
