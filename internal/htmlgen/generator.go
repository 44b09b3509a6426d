// =============================================================================
// Statutes at Large Tools - HTML Generator
// =============================================================================
//
// This module turns an audited row sequence into the HTML fragment that is
// published for one congress.
//
// FRAGMENT STRUCTURE:
//
//   <!-- Begin HTML-->
//   <a name="START" id="END"></a>
//   <h3 ...>CONGRESS (START-END)</h3>
//   <div class="js-to_expand">
//     <h4>SESSION</h4>                       <!-- one per session run -->
//     <table ...><tbody>
//       <tr>...</tr>                         <!-- one formatter per row -->
//     </tbody></table>
//
// GROUPING:
//   Rows are processed in file order. A row whose session is non-empty and
//   differs from the previous session closes the open table and opens a new
//   one. Rows with an empty session join whatever table is open.
//
// ERROR HANDLING:
//   Problems with a single row never stop generation. A row that cannot be
//   rendered is skipped and a type without a formatter falls back to the
//   empty-cells formatter. Both are reported as diagnostics.
//
// =============================================================================

package htmlgen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ginjaninja78/loc-sal-tools/internal/config"
	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Diagnostic kinds.
const (
	DiagSkippedRow       = "skipped-row"
	DiagDispatchMiss     = "dispatch-miss"
	DiagNumberOutOfRange = "number-out-of-range"
)

// Diagnostic describes a recovered row-level problem.
type Diagnostic struct {
	// Index is the zero-based position of the row in the sequence.
	Index int

	// Line is the spreadsheet row the record came from, when known.
	Line int

	Kind    string
	Message string
}

// Result is the outcome of a generation run.
type Result struct {
	HTML        string
	Tables      int
	Rows        int
	Diagnostics []Diagnostic
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator renders rows to HTML.
type Generator struct {
	settings *config.Settings
	dispatch *Dispatch
	logger   *zap.Logger
}

// New creates a Generator. A nil logger discards log output.
func New(settings *config.Settings, dispatch *Dispatch, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		settings: settings,
		dispatch: dispatch,
		logger:   logger,
	}
}

// Generate renders the rows in order.
func (g *Generator) Generate(rows []statute.Row) Result {
	var (
		b               strings.Builder
		res             Result
		previousSession string
		open            bool
	)

	b.WriteString(g.header())

	for i, row := range rows {
		typ := strings.TrimSpace(string(row.Type))
		if typ == "" {
			g.diagnose(&res, i, row, DiagSkippedRow, "missing statute type")
			continue
		}

		if session := row.Session; strings.TrimSpace(session) != "" && session != previousSession {
			if open {
				b.WriteString(`
                </tbody>
            </table>`)
			}
			fmt.Fprintf(&b, `
        <h4>%s</h4>
            <table class="table-bordered table-padded table-full-width">
                <tbody>`, session)
			open = true
			res.Tables++
			previousSession = session
		}

		entry := Entry{
			PDFLink:       g.PDFLink(statute.Type(typ), row.PublicPrivate, row.PDFStart),
			Type:          typ,
			Title:         row.Title,
			Date:          row.Date,
			PublicPrivate: row.PublicPrivate,
			NumberChapter: row.NumberChapter,
		}

		format, ok := g.dispatch.For(statute.Type(typ))
		if !ok {
			g.diagnose(&res, i, row, DiagDispatchMiss, fmt.Sprintf("no generator found for statute type %q", typ))
			format = formatEmptyCells
		} else if g.dispatch.usesRoman(statute.Type(typ)) && romanOutOfRange(row.NumberChapter) {
			g.diagnose(&res, i, row, DiagNumberOutOfRange,
				fmt.Sprintf("number in %q exceeds %d; title written without a Roman prefix", row.NumberChapter, MaxRoman))
		}

		b.WriteString(format(entry))
		res.Rows++
	}

	if open {
		b.WriteString("</tbody></table>")
	}

	res.HTML = b.String()
	return res
}

// PDFLink picks the private volume for private laws and the public volume
// for everything else, anchored at the record's first page.
func (g *Generator) PDFLink(t statute.Type, publicPrivate, pdfStart string) string {
	base := g.settings.PublicPDFURL
	if t == statute.TypeLaw && publicPrivate == statute.Private {
		base = g.settings.PrivatePDFURL
	}
	return base + "#page=" + pdfStart
}

// header renders the congress heading. Configuration values are trusted and
// inserted unescaped.
func (g *Generator) header() string {
	s := g.settings
	return fmt.Sprintf(`
    <!-- Begin HTML-->
    <a name="%s" id="%s"></a>
    <h3 class="js-expandmore" data-hideshow-prefix-class="light">%s (%s-%s)</h3>
    <div class="js-to_expand">`,
		s.CongressStartDate, s.CongressEndDate,
		s.Congress, s.CongressStartDate, s.CongressEndDate)
}

func (g *Generator) diagnose(res *Result, index int, row statute.Row, kind, msg string) {
	res.Diagnostics = append(res.Diagnostics, Diagnostic{
		Index:   index,
		Line:    row.Line,
		Kind:    kind,
		Message: msg,
	})
	g.logger.Warn(msg,
		zap.String("kind", kind),
		zap.Int("index", index),
		zap.Int("line", row.Line),
		zap.String("session", row.Session))
}
