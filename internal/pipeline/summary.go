package pipeline

import (
	"strings"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// SessionSummary counts the records of one session.
type SessionSummary struct {
	Session string
	Rows    int
	ByType  map[statute.Type]int
}

// TypeSummary counts the records of one statute type.
type TypeSummary struct {
	Type statute.Type
	Rows int
}

// Summary describes the contents of a sheet in first-seen order.
type Summary struct {
	SourceFile string
	Rows       int
	Untyped    int
	Sessions   []SessionSummary
	Types      []TypeSummary
}

// Summarize counts records per session and per statute type. Rows with a
// blank session are counted under the most recent session, the same way
// the generator groups them.
func Summarize(sheet *statute.Sheet) Summary {
	sum := Summary{SourceFile: sheet.SourceFile, Rows: len(sheet.Rows)}

	sessionIdx := make(map[string]int)
	typeIdx := make(map[statute.Type]int)
	current := -1

	for _, row := range sheet.Rows {
		if s := row.Session; strings.TrimSpace(s) != "" {
			i, ok := sessionIdx[s]
			if !ok {
				i = len(sum.Sessions)
				sessionIdx[s] = i
				sum.Sessions = append(sum.Sessions, SessionSummary{Session: s, ByType: make(map[statute.Type]int)})
			}
			current = i
		}

		typ := statute.Type(strings.TrimSpace(string(row.Type)))
		if typ == "" {
			sum.Untyped++
			continue
		}

		if current >= 0 {
			sum.Sessions[current].Rows++
			sum.Sessions[current].ByType[typ]++
		}

		i, ok := typeIdx[typ]
		if !ok {
			i = len(sum.Types)
			typeIdx[typ] = i
			sum.Types = append(sum.Types, TypeSummary{Type: typ})
		}
		sum.Types[i].Rows++
	}

	return sum
}
