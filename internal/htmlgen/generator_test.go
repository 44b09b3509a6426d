package htmlgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/ginjaninja78/loc-sal-tools/internal/config"
	"github.com/ginjaninja78/loc-sal-tools/internal/htmlgen"
	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

const (
	publicURL  = "https://example.gov/llsl-c1.pdf"
	privateURL = "https://example.gov/llsl-c1-private.pdf"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Congress:          "1st Congress",
		CongressStartDate: "1789",
		CongressEndDate:   "1791",
		PublicPDFURL:      publicURL,
		PrivatePDFURL:     privateURL,
	}
}

func testDispatch(t *testing.T) *htmlgen.Dispatch {
	t.Helper()

	d, err := htmlgen.NewDispatch(map[string]string{
		"Law":          htmlgen.FormatLaw,
		"Act":          htmlgen.FormatActResolutionAppendix,
		"Resolution":   htmlgen.FormatActResolutionAppendix,
		"Appendix":     "html_for_act_resolution_appendix",
		"Article":      htmlgen.FormatArticlesOrdinance,
		"Ordinance":    htmlgen.FormatArticlesOrdinance,
		"Special Page": htmlgen.FormatSpecialPages,
		"Treaty":       htmlgen.FormatGeneric,
		"Blank":        htmlgen.FormatEmptyCells,
	})
	require.NoError(t, err)

	return d
}

func newGenerator(t *testing.T) *htmlgen.Generator {
	t.Helper()
	return htmlgen.New(testSettings(), testDispatch(t), nil)
}

// =============================================================================
// STRUCTURAL HELPERS
// =============================================================================

type cell struct {
	text     string
	href     string
	typeAttr string
}

type table struct {
	rows [][]cell
}

func parse(t *testing.T, fragment string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)

	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func tables(t *testing.T, fragment string) []table {
	t.Helper()

	var out []table
	for _, tn := range findAll(parse(t, fragment), "table") {
		var tb table
		for _, tr := range findAll(tn, "tr") {
			var row []cell
			for _, td := range findAll(tr, "td") {
				c := cell{text: textOf(td), typeAttr: attr(td, "type")}
				if links := findAll(td, "a"); len(links) > 0 {
					c.href = attr(links[0], "href")
				}
				row = append(row, c)
			}
			tb.rows = append(tb.rows, row)
		}
		out = append(out, tb)
	}
	return out
}

func headings(t *testing.T, fragment string) []string {
	t.Helper()

	var out []string
	for _, h := range findAll(parse(t, fragment), "h4") {
		out = append(out, textOf(h))
	}
	return out
}

func lawRow(session, chapter string) statute.Row {
	return statute.Row{
		Session:       session,
		Type:          statute.TypeLaw,
		PublicPrivate: statute.Public,
		Title:         "An Act " + chapter,
		Date:          "June 1, 1789",
		NumberChapter: chapter,
		PDFStart:      "5",
	}
}

// =============================================================================
// TESTS
// =============================================================================

func TestGenerate_SingleLawGolden(t *testing.T) {
	t.Parallel()

	res := newGenerator(t).Generate([]statute.Row{lawRow("First Session", "Chapter 1")})

	want := `
    <!-- Begin HTML-->
    <a name="1789" id="1791"></a>
    <h3 class="js-expandmore" data-hideshow-prefix-class="light">1st Congress (1789-1791)</h3>
    <div class="js-to_expand">
        <h4>First Session</h4>
            <table class="table-bordered table-padded table-full-width">
                <tbody>
                    <tr>
                        <td><a target="_blank" href="https://example.gov/llsl-c1.pdf#page=5">Chapter 1</a></td>
                        <td>Public</td>
                        <td>An Act Chapter 1</td>
                        <td>June 1, 1789</td>
                    </tr></tbody></table>`

	assert.Equal(t, want, res.HTML)
	assert.Equal(t, 1, res.Tables)
	assert.Equal(t, 1, res.Rows)
	assert.Empty(t, res.Diagnostics)
}

func TestGenerate_SessionGrouping(t *testing.T) {
	t.Parallel()

	rows := []statute.Row{
		lawRow("A", "1"),
		{Session: "A", Type: "Treaty", Title: "t"},
		lawRow("B", "3"),
		{Session: "B", Type: "Article", Title: "a"},
		{Session: "B", Type: "Unknown", Title: "u"},
	}

	res := newGenerator(t).Generate(rows)
	got := tables(t, res.HTML)

	require.Len(t, got, 2)
	assert.Equal(t, 2, res.Tables)
	assert.Len(t, got[0].rows, 2)
	assert.Len(t, got[1].rows, 3)
	assert.Equal(t, []string{"A", "B"}, headings(t, res.HTML))
}

func TestGenerate_BlankSessionJoinsOpenTable(t *testing.T) {
	t.Parallel()

	rows := []statute.Row{
		lawRow("A", "1"),
		lawRow("", "2"),
		lawRow("  ", "3"),
		lawRow("A", "4"),
		lawRow("B", "5"),
	}

	res := newGenerator(t).Generate(rows)
	got := tables(t, res.HTML)

	require.Len(t, got, 2)
	assert.Len(t, got[0].rows, 4)
	assert.Len(t, got[1].rows, 1)
}

func TestGenerate_BlankSessionWithoutOpenTable(t *testing.T) {
	t.Parallel()

	res := newGenerator(t).Generate([]statute.Row{lawRow("", "1"), lawRow("", "2")})

	assert.NotContains(t, res.HTML, "<table")
	assert.NotContains(t, res.HTML, "</table>")
	assert.Equal(t, 2, strings.Count(res.HTML, "<tr>"))
	assert.Zero(t, res.Tables)
}

func TestGenerate_ReturningSessionOpensNewTable(t *testing.T) {
	t.Parallel()

	res := newGenerator(t).Generate([]statute.Row{lawRow("A", "1"), lawRow("B", "2"), lawRow("A", "3")})

	assert.Len(t, tables(t, res.HTML), 3)
	assert.Equal(t, []string{"A", "B", "A"}, headings(t, res.HTML))
}

func TestGenerate_DispatchShapes(t *testing.T) {
	t.Parallel()

	rows := []statute.Row{
		{Session: "S", Type: "Law", PublicPrivate: "Private", Title: "Relief of J. Doe", Date: "1790", NumberChapter: "Chapter 7", PDFStart: "11"},
		{Session: "S", Type: "Act", Title: "An Act", Date: "1790", NumberChapter: "Chapter 14", PDFStart: "12"},
		{Session: "S", Type: "Resolution", PublicPrivate: "Public", Title: "Resolved", Date: "1790", NumberChapter: "No. 4", PDFStart: "13"},
		{Session: "S", Type: "Appendix", Title: "Appendix", Date: "1790", NumberChapter: "none", PDFStart: "14"},
		{Session: "S", Type: "Treaty", Title: "Treaty of Peace", Date: "1790", PDFStart: "15"},
		{Session: "S", Type: "Ordinance", Title: "Northwest Ordinance", Date: "1787", PDFStart: "16"},
		{Session: "S", Type: "Special Page", Title: "Index", Date: "1790", PDFStart: "17"},
		{Session: "S", Type: "Blank", Title: "Blank", Date: "1790", PDFStart: "18"},
	}

	res := newGenerator(t).Generate(rows)
	require.Empty(t, res.Diagnostics)

	got := tables(t, res.HTML)
	require.Len(t, got, 1)
	r := got[0].rows
	require.Len(t, r, 9)

	// Law: number/chapter link, public/private, title, date.
	assert.Equal(t, []cell{
		{text: "Chapter 7", href: privateURL + "#page=11"},
		{text: "Private"},
		{text: "Relief of J. Doe"},
		{text: "1790"},
	}, r[0])

	// Act/resolution/appendix: type link, blank, roman-prefixed title, date.
	assert.Equal(t, []cell{
		{text: "Act", href: publicURL + "#page=12"},
		{},
		{text: "XIV. An Act"},
		{text: "1790"},
	}, r[1])
	assert.Equal(t, "IV. Resolved", r[2][2].text)
	assert.Empty(t, r[2][1].text)
	assert.Equal(t, "Appendix", r[3][2].text, "no digits leaves the title alone")

	// Generic: type link, blank, title, date.
	assert.Equal(t, []cell{
		{text: "Treaty", href: publicURL + "#page=15"},
		{},
		{text: "Treaty of Peace"},
		{text: "1790"},
	}, r[4])

	// Article/ordinance: date blank.
	assert.Equal(t, "Northwest Ordinance", r[5][2].text)
	assert.Empty(t, r[5][3].text)

	// Special page: spacer row then linked row without date.
	for _, c := range r[6] {
		assert.Equal(t, "\u00a0", c.text)
	}
	assert.Equal(t, []cell{
		{text: "Special Page", href: publicURL + "#page=17"},
		{},
		{text: "Index"},
		{},
	}, r[7])

	// Empty cells.
	assert.Equal(t, []cell{
		{text: "Blank", href: publicURL + "#page=18", typeAttr: "empty"},
		{},
		{},
		{},
	}, r[8])
}

func TestGenerate_UnknownTypeFallsBack(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	g := htmlgen.New(testSettings(), testDispatch(t), zap.New(core))

	var res htmlgen.Result
	require.NotPanics(t, func() {
		res = g.Generate([]statute.Row{{Session: "S", Type: "Proclamation", Title: "p", PDFStart: "3", Line: 9}})
	})

	got := tables(t, res.HTML)
	require.Len(t, got, 1)
	require.Len(t, got[0].rows, 1)
	assert.Equal(t, "empty", got[0].rows[0][0].typeAttr)
	assert.Equal(t, "Proclamation", got[0].rows[0][0].text)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, htmlgen.DiagDispatchMiss, res.Diagnostics[0].Kind)
	assert.Equal(t, 9, res.Diagnostics[0].Line)
	assert.Equal(t, 1, logs.Len())
}

func TestGenerate_NilDispatchFallsBack(t *testing.T) {
	t.Parallel()

	g := htmlgen.New(testSettings(), nil, nil)
	res := g.Generate([]statute.Row{lawRow("S", "1")})

	assert.Contains(t, res.HTML, `<td type="empty">`)
	assert.Len(t, res.Diagnostics, 1)
}

func TestGenerate_RowWithoutTypeIsSkipped(t *testing.T) {
	t.Parallel()

	rows := []statute.Row{
		lawRow("A", "1"),
		{Session: "B", Title: "no type", Line: 4},
		lawRow("A", "2"),
	}

	res := newGenerator(t).Generate(rows)

	got := tables(t, res.HTML)
	require.Len(t, got, 1, "skipped row must not open a session")
	assert.Len(t, got[0].rows, 2)
	assert.Equal(t, 2, res.Rows)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, htmlgen.DiagSkippedRow, res.Diagnostics[0].Kind)
	assert.Equal(t, 1, res.Diagnostics[0].Index)
}

func TestGenerate_TypeIsTrimmed(t *testing.T) {
	t.Parallel()

	row := lawRow("S", "Chapter 2")
	row.Type = " Law "
	row.PublicPrivate = statute.Private

	res := newGenerator(t).Generate([]statute.Row{row})
	assert.Contains(t, res.HTML, privateURL+"#page=5")
	assert.Empty(t, res.Diagnostics)
}

func TestPDFLink(t *testing.T) {
	t.Parallel()

	g := newGenerator(t)

	assert.Equal(t, privateURL+"#page=9", g.PDFLink(statute.TypeLaw, statute.Private, "9"))

	others := []struct {
		typ statute.Type
		pp  string
	}{
		{statute.TypeLaw, statute.Public},
		{statute.TypeLaw, ""},
		{statute.TypeLaw, "private"},
		{statute.TypeResolution, statute.Private},
		{statute.TypeAct, statute.Public},
		{"Treaty", ""},
	}
	for _, o := range others {
		assert.Equal(t, publicURL+"#page=9", g.PDFLink(o.typ, o.pp, "9"), "%s/%s", o.typ, o.pp)
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	t.Parallel()

	res := newGenerator(t).Generate(nil)
	assert.Contains(t, res.HTML, "1st Congress (1789-1791)")
	assert.NotContains(t, res.HTML, "<table")
}

func TestGenerate_OversizedChapterNumber(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	g := htmlgen.New(testSettings(), testDispatch(t), zap.New(core))

	rows := []statute.Row{
		{Session: "S", Type: "Act", Title: "Huge", Date: "1790", NumberChapter: "No. 300000000000", PDFStart: "3", Line: 5},
		{Session: "S", Type: "Appendix", Title: "Overflow", Date: "1790", NumberChapter: "No. 99999999999999999999999", PDFStart: "4", Line: 6},
		{Session: "S", Type: "Resolution", Title: "Edge", Date: "1790", NumberChapter: "No. 3999", PDFStart: "5", Line: 7},
		{Session: "S", Type: "Law", Title: "Law", Date: "1790", NumberChapter: "Chapter 5000", PDFStart: "6", Line: 8},
	}

	res := g.Generate(rows)
	assert.Less(t, len(res.HTML), 10000)

	got := tables(t, res.HTML)
	require.Len(t, got, 1)
	require.Len(t, got[0].rows, 4)
	assert.Equal(t, "Huge", got[0].rows[0][2].text)
	assert.Equal(t, "Overflow", got[0].rows[1][2].text)
	assert.Equal(t, "MMMCMXCIX. Edge", got[0].rows[2][2].text)

	// Laws never take a numeral, so a large chapter is not reported.
	require.Len(t, res.Diagnostics, 2)
	for i, d := range res.Diagnostics {
		assert.Equal(t, htmlgen.DiagNumberOutOfRange, d.Kind)
		assert.Equal(t, i, d.Index)
	}
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 4, res.Rows)
}
