package word2pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Recognized document extensions and the output extension.
const (
	ExtDoc  = ".doc"
	ExtDocx = ".docx"
	ExtPDF  = ".pdf"
)

// ownerFilePrefix marks the lock files Word leaves next to open documents.
const ownerFilePrefix = "~$"

// IsDocument reports whether path has a recognized Word extension.
// The comparison is case-insensitive.
func IsDocument(path string) bool {
	return fileutil.HasExt(path, ExtDoc, ExtDocx)
}

// DefaultDestination returns the PDF path beside source: same directory,
// same base name, extension replaced.
func DefaultDestination(source string) string {
	return fileutil.ReplaceExt(source, ExtPDF)
}

// validateSource checks that source exists and is a Word document.
func validateSource(source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if info.IsDir() || !IsDocument(source) {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, source)
	}
	return nil
}

// resolveDestination returns the destination for req, creating missing
// parent directories for an explicit destination.
func resolveDestination(req Request) (string, error) {
	if req.Destination == "" {
		return DefaultDestination(req.Source), nil
	}
	if err := fileutil.EnsureParentDir(req.Destination); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrIO, filepath.Dir(req.Destination), err)
	}
	return req.Destination, nil
}

// IsOwnerFile reports whether name is a Word owner (lock) file such as
// "~$report.docx". Batch planning and watching skip these.
func IsOwnerFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ownerFilePrefix)
}

// previousOutput is a destination file that existed before a session,
// moved aside so that only a file written by the session can pass the
// output check.
type previousOutput struct {
	dest  string
	aside string // empty when there was nothing to move
}

// setAside renames an existing regular file at dest to a hidden sibling.
// A missing dest, or one that is not a regular file, is left alone.
func setAside(dest string) (*previousOutput, error) {
	prev := &previousOutput{dest: dest}
	info, err := os.Lstat(dest)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return prev, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, dest, err)
	}

	aside := filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+"."+uuid.NewString()[:8]+".old")
	if err := os.Rename(dest, aside); err != nil {
		return nil, fmt.Errorf("%w: moving previous %s aside: %v", ErrIO, dest, err)
	}
	prev.aside = aside
	return prev, nil
}

// restore puts the previous file back, replacing whatever the failed
// session left at dest.
func (p *previousOutput) restore() error {
	if p.aside == "" {
		return nil
	}
	return os.Rename(p.aside, p.dest)
}

// discard deletes the previous file once a fresh one is in place.
func (p *previousOutput) discard() error {
	if p.aside == "" {
		return nil
	}
	return os.Remove(p.aside)
}
