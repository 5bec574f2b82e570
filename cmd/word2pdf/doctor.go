package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// checkTimeout bounds each engine check.
const checkTimeout = 30 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Engines  enginesInfo `json:"engines"`
	Lock     lockInfo    `json:"lock"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// enginesInfo holds engine detection results.
type enginesInfo struct {
	Selected string     `json:"selected"`
	Office   officeInfo `json:"office"`
	Word     wordInfo   `json:"word"`
}

// officeInfo holds LibreOffice detection results.
type officeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// wordInfo holds Microsoft Word automation results.
type wordInfo struct {
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// lockInfo holds engine lock results.
type lockInfo struct {
	Path string `json:"path"`
	Held bool   `json:"held"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Soffice       string `json:"word2pdf_soffice"`
	Engine        string `json:"word2pdf_engine"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			Soffice: os.Getenv("WORD2PDF_SOFFICE"),
			Engine:  os.Getenv("WORD2PDF_ENGINE"),
		},
	}

	checkOffice(result)
	checkWord(result)
	checkSelectedEngine(result)
	checkEnvironment(result)
	checkLock(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkOffice detects LibreOffice and asks it for its version.
func checkOffice(result *doctorResult) {
	path, err := word2pdf.FindOffice(result.Env.Soffice)
	if err != nil {
		result.Engines.Office.Detail = err.Error()
		return
	}
	result.Engines.Office.Found = true
	result.Engines.Office.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path resolved by FindOffice
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get LibreOffice version: %v", err))
		return
	}
	result.Engines.Office.Version = strings.TrimSpace(string(out))
}

// checkWord starts and quits Word once. Off Windows the launcher reports
// the engine as unavailable without starting anything.
func checkWord(result *doctorResult) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	engine, err := word2pdf.WordLauncher{}.Launch(ctx)
	if err != nil {
		result.Engines.Word.Detail = err.Error()
		return
	}
	if err := engine.Quit(); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Word started but did not quit cleanly: %v", err))
	}
	result.Engines.Word.Available = true
}

// checkSelectedEngine reports an error when the engine conversions would
// use is missing.
func checkSelectedEngine(result *doctorResult) {
	launcher, err := word2pdf.NewLauncher(result.Env.Engine, result.Env.Soffice)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("WORD2PDF_ENGINE: %v", err))
		return
	}
	result.Engines.Selected = launcher.Name()

	switch launcher.Name() {
	case word2pdf.EngineWord:
		if !result.Engines.Word.Available {
			result.Errors = append(result.Errors,
				"Microsoft Word is not available"+hints.ForEngineUnavailable(word2pdf.EngineWord))
		}
	default:
		if !result.Engines.Office.Found {
			result.Errors = append(result.Errors,
				"LibreOffice not found"+hints.ForEngineUnavailable(word2pdf.EngineOffice))
		}
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Headless runners usually lack fonts the documents were written with
	if (result.Env.Container || result.Env.CI) && result.Engines.Office.Found {
		result.Warnings = append(result.Warnings,
			"Container/CI detected: install the fonts your documents use, or LibreOffice substitutes them")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("WORD2PDF_CONTAINER") == "1" {
		return true, "WORD2PDF_CONTAINER=1"
	}
	// Docker
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkLock reports whether another conversion holds the engine lock.
func checkLock(result *doctorResult) {
	path := os.Getenv("WORD2PDF_LOCK_FILE")
	if path == "" {
		path = word2pdf.DefaultLockPath()
	}
	result.Lock.Path = path

	if !fileutil.DirExists(filepath.Dir(path)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Lock directory %s does not exist yet; it is created on first conversion", filepath.Dir(path)))
		return
	}

	held, err := word2pdf.LockHeld(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Lock.Held = held
	if held {
		result.Warnings = append(result.Warnings,
			"Engine lock is held: another conversion is running and new ones will wait")
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	// Engines export through temp directories
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "word2pdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "word2pdf doctor")
	fmt.Fprintln(w)

	// Engines section
	fmt.Fprintln(w, "Engines")
	if r.Engines.Selected != "" {
		fmt.Fprintf(w, "  [OK] Selected: %s\n", r.Engines.Selected)
	}
	if r.Engines.Office.Found {
		fmt.Fprintf(w, "  [OK] LibreOffice: %s\n", r.Engines.Office.Path)
		if r.Engines.Office.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Engines.Office.Version)
		}
	} else {
		fmt.Fprintln(w, "  [--] LibreOffice: not found")
	}
	if r.Engines.Word.Available {
		fmt.Fprintln(w, "  [OK] Microsoft Word: available")
	} else {
		fmt.Fprintf(w, "  [--] Microsoft Word: %s\n", r.Engines.Word.Detail)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.Lock.Held {
		fmt.Fprintf(w, "  [WARN] Engine lock: held (%s)\n", r.Lock.Path)
	} else {
		fmt.Fprintf(w, "  [OK] Engine lock: %s\n", r.Lock.Path)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
