// =============================================================================
// Statutes at Large Tools - Shared Types
// =============================================================================
//
// This package contains the statute record model shared by the loader, the
// audit loop and the HTML generator. Types defined here are used by:
//   - xlsxio
//   - audit
//   - htmlgen
//   - pipeline
//
// =============================================================================

package statute

// =============================================================================
// COLUMN NAMES
// =============================================================================
// These are the normalized column headers. Raw spreadsheet headers are
// renamed to these through the header map before anything else reads them.

const (
	ColumnSession       = "Session"
	ColumnType          = "Type"
	ColumnPublicPrivate = "Public/Private"
	ColumnTitle         = "Title"
	ColumnDate          = "Date"
	ColumnNumberChapter = "Number/Chapter"
	ColumnPDFStart      = "PDF Start"
)

// Columns is the fixed column set, in the order new sheets are written.
var Columns = []string{
	ColumnSession,
	ColumnType,
	ColumnPublicPrivate,
	ColumnTitle,
	ColumnDate,
	ColumnNumberChapter,
	ColumnPDFStart,
}

// RequiredColumns lists the columns a sheet must carry after normalization.
// Public/Private is optional: rows without it render as public.
var RequiredColumns = []string{
	ColumnSession,
	ColumnType,
	ColumnTitle,
	ColumnDate,
	ColumnNumberChapter,
	ColumnPDFStart,
}

// =============================================================================
// STATUTE TYPES
// =============================================================================

// Type is a normalized statute-type label. The set is open: any label the
// statute map produces is a valid Type, and the generator decides how to
// render it through its dispatch table.
type Type string

// Labels the tool itself relies on.
const (
	TypeLaw        Type = "Law"
	TypeAct        Type = "Act"
	TypeResolution Type = "Resolution"
	TypeAppendix   Type = "Appendix"
	TypeArticle    Type = "Article"
	TypeOrdinance  Type = "Ordinance"
	TypeSpecial    Type = "Special Page"
)

// Visibility values of the Public/Private column.
const (
	Public  = "Public"
	Private = "Private"
)

// =============================================================================
// ROW STRUCTURE
// =============================================================================

// Row is one statute record.
type Row struct {
	// Session is the grouping key. Empty means missing.
	Session string

	// Type is the normalized statute type.
	Type Type

	// PublicPrivate is "Public", "Private" or anything else (including empty).
	PublicPrivate string

	Title         string
	Date          string
	NumberChapter string

	// PDFStart is the page offset into the linked PDF. It is the only field
	// the audit loop mutates.
	PDFStart string

	// Extra holds cells of columns outside the fixed set, keyed by header.
	Extra map[string]string

	// Line is the 1-based spreadsheet row the record was read from.
	Line int
}

// Get returns the value of the named column.
func (r Row) Get(column string) string {
	switch column {
	case ColumnSession:
		return r.Session
	case ColumnType:
		return string(r.Type)
	case ColumnPublicPrivate:
		return r.PublicPrivate
	case ColumnTitle:
		return r.Title
	case ColumnDate:
		return r.Date
	case ColumnNumberChapter:
		return r.NumberChapter
	case ColumnPDFStart:
		return r.PDFStart
	default:
		return r.Extra[column]
	}
}

// Set assigns the value of the named column.
func (r *Row) Set(column, value string) {
	switch column {
	case ColumnSession:
		r.Session = value
	case ColumnType:
		r.Type = Type(value)
	case ColumnPublicPrivate:
		r.PublicPrivate = value
	case ColumnTitle:
		r.Title = value
	case ColumnDate:
		r.Date = value
	case ColumnNumberChapter:
		r.NumberChapter = value
	case ColumnPDFStart:
		r.PDFStart = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[column] = value
	}
}

// =============================================================================
// SHEET STRUCTURE
// =============================================================================

// Sheet is an ordered sequence of rows together with the header order they
// were read with. Row order is the session-grouping and table-ordering key
// and is never changed.
type Sheet struct {
	// Headers are the normalized column headers in file order.
	Headers []string

	Rows []Row

	// SourceFile is the path the sheet was loaded from.
	SourceFile string
}

// HasColumn reports whether the sheet carries the named column.
func (s *Sheet) HasColumn(column string) bool {
	for _, h := range s.Headers {
		if h == column {
			return true
		}
	}
	return false
}
