package main

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// foundPDF is a recently modified PDF.
type foundPDF struct {
	Path     string
	Modified time.Time
	Size     int64
	Pages    int // 0 when the file cannot be parsed
}

// runFindCmd lists PDFs modified in the last hours under a directory,
// newest first. Useful to locate output written to an unexpected place.
func runFindCmd(args []string, env *Environment) int {
	flags, positional, err := parseFindFlags(args)
	if err != nil {
		return flagErrorCode(err, env)
	}

	dir := "."
	if len(positional) > 0 {
		dir = positional[0]
	}
	if !fileutil.DirExists(dir) {
		err := fmt.Errorf("%w: %s", word2pdf.ErrNotADirectory, dir)
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	now := env.Now()
	found, err := findRecentPDFs(dir, now.Add(-time.Duration(flags.hours)*time.Hour))
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	found = filterByName(found, flags.match)

	printFound(env.Stdout, found, dir, flags, now)
	return ExitSuccess
}

// findRecentPDFs walks dir for PDFs modified after cutoff.
// Unreadable entries below dir are skipped.
func findRecentPDFs(dir string, cutoff time.Time) ([]foundPDF, error) {
	var found []foundPDF
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("%w: scanning %s: %v", word2pdf.ErrIO, dir, err)
			}
			return nil
		}
		if d.IsDir() || !fileutil.HasExt(path, word2pdf.ExtPDF) {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().After(cutoff) {
			return nil
		}
		pages, _ := word2pdf.PageCount(path)
		found = append(found, foundPDF{Path: path, Modified: info.ModTime(), Size: info.Size(), Pages: pages})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Modified.After(found[j].Modified)
	})
	return found, nil
}

// filterByName keeps the files whose base name fuzzy-matches pattern,
// preserving order. An empty pattern keeps everything.
func filterByName(found []foundPDF, pattern string) []foundPDF {
	if pattern == "" {
		return found
	}
	names := make([]string, len(found))
	for i, f := range found {
		names[i] = filepath.Base(f.Path)
	}

	keep := make(map[int]bool)
	for _, m := range fuzzy.Find(pattern, names) {
		keep[m.Index] = true
	}

	filtered := found[:0:0]
	for i, f := range found {
		if keep[i] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func printFound(w io.Writer, found []foundPDF, dir string, flags *findFlags, now time.Time) {
	m := newMarks(flags.noColor)

	fmt.Fprintf(w, "Searching for PDF files modified in the last %d hour(s)...\n", flags.hours)
	fmt.Fprintf(w, "Location: %s\n", dir)
	if flags.match != "" {
		fmt.Fprintf(w, "Matching: %s\n", flags.match)
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))

	if len(found) == 0 {
		fmt.Fprintf(w, "\n%s No PDF files found modified in the last %d hour(s)\n", m.warn("NONE"), flags.hours)
		fmt.Fprintln(w, "Try increasing --hours or searching a different directory.")
		return
	}

	fmt.Fprintf(w, "\nFound %d PDF file(s):\n\n", len(found))
	for i, f := range found {
		fmt.Fprintf(w, "%d. %s\n", i+1, m.ok(filepath.Base(f.Path)))
		fmt.Fprintf(w, "   Size: %s\n", humanize.Bytes(uint64(f.Size)))
		if f.Pages > 0 {
			fmt.Fprintf(w, "   Pages: %d\n", f.Pages)
		}
		fmt.Fprintf(w, "   Modified: %s (%s)\n",
			f.Modified.Format("2006-01-02 15:04:05"), humanize.RelTime(f.Modified, now, "ago", "from now"))
		fmt.Fprintf(w, "   Location: %s\n", f.Path)
		fmt.Fprintln(w)
	}
}
