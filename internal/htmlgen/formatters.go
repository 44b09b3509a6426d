// =============================================================================
// Statutes at Large Tools - Row Formatters
// =============================================================================
//
// Each formatter renders one statute record as one or more <tr> elements of a
// four-column table:
//
//   | Number/Chapter or Type | Public/Private | Title | Date |
//
// Formatters share one signature and are selected per statute type through
// the dispatch table (dispatch.go), never by inspecting the record here.
//
// No escaping is applied: cell text is published exactly as audited.
//
// =============================================================================

package htmlgen

import (
	"fmt"
	"sort"
)

// Entry is the input every formatter receives.
type Entry struct {
	PDFLink       string
	Type          string
	Title         string
	Date          string
	PublicPrivate string
	NumberChapter string
}

// Formatter renders a single record.
type Formatter func(e Entry) string

// Formatter names used in the generator map.
const (
	FormatLaw                   = "law"
	FormatActResolutionAppendix = "act_resolution_appendix"
	FormatGeneric               = "generic"
	FormatArticlesOrdinance     = "articles_ordinance"
	FormatSpecialPages          = "special_pages"
	FormatEmptyCells            = "empty_cells"
)

// registry resolves formatter names. The html_* names are accepted so
// generator maps written for the earlier tool keep working.
var registry = map[string]Formatter{
	FormatLaw:                   formatLaw,
	FormatActResolutionAppendix: formatActResolutionAppendix,
	FormatGeneric:               formatGeneric,
	FormatArticlesOrdinance:     formatArticlesOrdinance,
	FormatSpecialPages:          formatSpecialPages,
	FormatEmptyCells:            formatEmptyCells,

	"html_for_law":                     formatLaw,
	"html_for_act_resolution_appendix": formatActResolutionAppendix,
	"generic_html_generator":           formatGeneric,
	"html_for_articles_ordinance":      formatArticlesOrdinance,
	"html_for_special_pages":           formatSpecialPages,
	"html_with_empty_cells":            formatEmptyCells,
}

// romanFormatters are the names of formatters that read a Roman numeral
// out of Number/Chapter.
var romanFormatters = map[string]bool{
	FormatActResolutionAppendix:        true,
	"html_for_act_resolution_appendix": true,
}

// Lookup resolves a formatter name.
func Lookup(name string) (Formatter, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns every registered formatter name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatLaw links the number/chapter and shows public/private.
func formatLaw(e Entry) string {
	return fmt.Sprintf(`
                    <tr>
                        <td><a target="_blank" href="%s">%s</a></td>
                        <td>%s</td>
                        <td>%s</td>
                        <td>%s</td>
                    </tr>`, e.PDFLink, e.NumberChapter, e.PublicPrivate, e.Title, e.Date)
}

// formatActResolutionAppendix prefixes the title with the Roman numeral of
// the first number in Number/Chapter ("III. Title"). Without a number in
// [1, MaxRoman] the title is left as is.
func formatActResolutionAppendix(e Entry) string {
	title := e.Title
	if n, ok := leadingNumber(e.NumberChapter); ok {
		if roman := ToRoman(n); roman != "" {
			title = roman + ". " + title
		}
	}
	return fmt.Sprintf(`
                    <tr>
                        <td><a target="_blank" href="%s">%s</a></td>
                        <td></td>
                        <td>%s</td>
                        <td>%s</td>
                    </tr>`, e.PDFLink, e.Type, title, e.Date)
}

func formatGeneric(e Entry) string {
	return fmt.Sprintf(`
                    <tr>
                        <td><a target="_blank" href="%s">%s</a></td>
                        <td></td>
                        <td>%s</td>
                        <td>%s</td>
                    </tr>`, e.PDFLink, e.Type, e.Title, e.Date)
}

// formatArticlesOrdinance is the generic row with a blank date.
func formatArticlesOrdinance(e Entry) string {
	return fmt.Sprintf(`
                    <tr>
                        <td><a target="_blank" href="%s">%s</a></td>
                        <td></td>
                        <td>%s</td>
                        <td></td>
                    </tr>`, e.PDFLink, e.Type, e.Title)
}

// formatSpecialPages emits a spacer row before the linked row.
func formatSpecialPages(e Entry) string {
	return fmt.Sprintf(`
                    <tr>
                        <td>&nbsp;</td>
                        <td>&nbsp;</td>
                        <td>&nbsp;</td>
                        <td>&nbsp;</td>
                    </tr>

                    <tr>
                        <td><a target="_blank" href="%s">%s</a></td>
                        <td></td>
                        <td>%s</td>
                        <td></td>
                    </tr>`, e.PDFLink, e.Type, e.Title)
}

// formatEmptyCells is the fallback for types without a formatter.
func formatEmptyCells(e Entry) string {
	return fmt.Sprintf(`
                    <tr>
                        <td type="empty"><a target="_blank" href="%s">%s</a></td>
                        <td></td>
                        <td></td>
                        <td></td>
                    </tr>`, e.PDFLink, e.Type)
}
