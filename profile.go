package word2pdf

import "fmt"

// ExportRange selects which part of a document is exported.
type ExportRange int

// Export ranges. Values match the engine's own enumeration order.
const (
	RangeAllDocument ExportRange = iota
	RangeSelection
	RangeCurrentPage
	RangeFromTo
)

// Optimization selects the output quality target.
type Optimization int

// Optimization targets.
const (
	OptimizeForPrint Optimization = iota // highest quality
	OptimizeForScreen
)

// BookmarkMode selects how PDF bookmarks are generated.
type BookmarkMode int

// Bookmark modes.
const (
	BookmarksNone BookmarkMode = iota
	BookmarksFromHeadings
	BookmarksFromWordBookmarks
)

// ExportProfile is the option set applied to every export call.
// Engines translate it to their native option codes.
type ExportProfile struct {
	Range              ExportRange
	OptimizeFor        Optimization
	Bookmarks          BookmarkMode
	IncludeDocProps    bool // keep title, author and other document properties
	KeepIRM            bool // retain rights-management restrictions
	DocStructureTags   bool // tagged PDF for accessibility and reflow
	BitmapMissingFonts bool // rasterize text in fonts that cannot be embedded
	Archival           bool // restrict output to PDF/A-1
}

// DefaultProfile returns the fixed, fidelity-first export profile.
func DefaultProfile() ExportProfile {
	return ExportProfile{
		Range:              RangeAllDocument,
		OptimizeFor:        OptimizeForPrint,
		Bookmarks:          BookmarksFromHeadings,
		IncludeDocProps:    true,
		KeepIRM:            true,
		DocStructureTags:   true,
		BitmapMissingFonts: true,
		Archival:           false,
	}
}

// Validate checks that every enumerated field holds a known value.
func (p ExportProfile) Validate() error {
	if p.Range < RangeAllDocument || p.Range > RangeFromTo {
		return fmt.Errorf("%w: range %d", ErrInvalidProfile, p.Range)
	}
	if p.OptimizeFor < OptimizeForPrint || p.OptimizeFor > OptimizeForScreen {
		return fmt.Errorf("%w: optimization %d", ErrInvalidProfile, p.OptimizeFor)
	}
	if p.Bookmarks < BookmarksNone || p.Bookmarks > BookmarksFromWordBookmarks {
		return fmt.Errorf("%w: bookmark mode %d", ErrInvalidProfile, p.Bookmarks)
	}
	return nil
}

// String implements fmt.Stringer for log fields.
func (r ExportRange) String() string {
	switch r {
	case RangeAllDocument:
		return "all"
	case RangeSelection:
		return "selection"
	case RangeCurrentPage:
		return "current-page"
	case RangeFromTo:
		return "from-to"
	}
	return fmt.Sprintf("ExportRange(%d)", int(r))
}
