// =============================================================================
// Statutes at Large Tools - Interactive Audit
// =============================================================================
//
// This module walks the rows of a sheet and asks a human to confirm the
// PDF Start page of each record.
//
// STATES:
//   pending(i)            -> awaitingConfirmation    (show row i)
//   awaitingConfirmation  -> pending(i+1)            on "y"
//                         -> awaitingCorrection      on "n"
//                         -> paused                  on "exit"
//   awaitingCorrection    -> pending(i+1)            on an integer (row i updated)
//                         -> paused                  on "exit"
//   any prompt            -> same prompt             on anything else
//   pending(len)          -> completed
//
// Pausing saves i to the checkpoint store, so the next run re-asks row i.
// Completing writes nothing; the caller decides what completion means.
//
// =============================================================================

package audit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// Responses understood at the prompts (case-insensitive).
const (
	answerYes  = "y"
	answerNo   = "n"
	answerExit = "exit"
)

// clearSequence homes the cursor and clears an ANSI terminal.
const clearSequence = "\033[H\033[2J"

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Outcome is how an audit run ended.
type Outcome int

const (
	// Completed means every row from the start index was answered.
	Completed Outcome = iota
	// Paused means the auditor typed exit (or input ended).
	Paused
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "complete"
	case Paused:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Result summarizes an audit run.
type Result struct {
	Outcome Outcome

	// Index is the row the run stopped at. Equal to the row count when
	// completed.
	Index int

	Confirmed int
	Corrected int
}

// Checkpointer persists the resume index.
type Checkpointer interface {
	Save(workbook string, idx int) error
}

// =============================================================================
// AUDITOR
// =============================================================================

// Options configures an Auditor.
type Options struct {
	// Workbook names the checkpoint.
	Workbook string

	// DisplayOffset is added to the row index to get the row number shown
	// to the auditor.
	DisplayOffset int

	// ClearScreen clears the terminal before each question.
	ClearScreen bool

	Logger *zap.Logger
}

// Auditor runs the interactive loop over one input stream.
type Auditor struct {
	in    *bufio.Scanner
	out   io.Writer
	store Checkpointer
	opts  Options

	heading *color.Color
	warn    *color.Color
}

// New creates an Auditor reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, store Checkpointer, opts Options) *Auditor {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Auditor{
		in:      bufio.NewScanner(in),
		out:     out,
		store:   store,
		opts:    opts,
		heading: color.New(color.FgCyan, color.Bold),
		warn:    color.New(color.FgYellow),
	}
}

type state int

const (
	pending state = iota
	awaitingConfirmation
	awaitingCorrection
)

// Run audits rows[start:], updating PDFStart in place. Rows before start are
// not asked again. A start beyond the last row is treated as a stale
// checkpoint and the audit restarts from the first row.
func (a *Auditor) Run(rows []statute.Row, start int) (Result, error) {
	if start < 0 || start > len(rows) {
		a.opts.Logger.Warn("ignoring stale checkpoint",
			zap.Int("checkpoint", start),
			zap.Int("rows", len(rows)))
		start = 0
	}

	res := Result{Index: start}
	st := pending
	i := start

	for i < len(rows) {
		row := &rows[i]

		switch st {
		case pending:
			a.clear()
			a.heading.Fprint(a.out, "\nIs the PDF Start for:\n\n")
			fmt.Fprintf(a.out, "%s\n\n%s - %s\n\nPDF Page: %s\n\n",
				row.Session, row.NumberChapter, row.Title, row.PDFStart)
			st = awaitingConfirmation

		case awaitingConfirmation:
			fmt.Fprint(a.out, "Correct? Yes (Y) or No (N) - (Enter 'exit' to stop):")
			answer, ok := a.readLine()
			switch {
			case !ok || answer == answerExit:
				return a.pause(rows, i, res)
			case answer == answerYes:
				res.Confirmed++
				i++
				st = pending
			case answer == answerNo:
				st = awaitingCorrection
			default:
				a.warn.Fprintln(a.out, "\nInvalid input. Please enter 'Y', 'N', or 'exit'.")
			}

		case awaitingCorrection:
			fmt.Fprintf(a.out, "\nWhat is the correct PDF Start for %s, %s-%s? (Enter 'exit' to stop) ",
				row.Title, row.Session, row.NumberChapter)
			answer, ok := a.readLine()
			if !ok || answer == answerExit {
				return a.pause(rows, i, res)
			}
			page, err := strconv.Atoi(answer)
			if err != nil {
				a.warn.Fprintln(a.out, "Invalid input. Please enter a valid PDF Start value (an integer).")
				continue
			}
			a.opts.Logger.Debug("corrected PDF start",
				zap.Int("index", i),
				zap.String("from", row.PDFStart),
				zap.Int("to", page))
			row.PDFStart = strconv.Itoa(page)
			res.Corrected++
			i++
			st = pending
		}
	}

	res.Outcome = Completed
	res.Index = len(rows)
	return res, nil
}

// pause saves the checkpoint and reports the row the audit stopped at.
func (a *Auditor) pause(rows []statute.Row, i int, res Result) (Result, error) {
	fmt.Fprintf(a.out, "\nAudit process paused at row %d of %d.\n", i+a.opts.DisplayOffset, len(rows))
	if i < len(rows) && rows[i].Line > 0 {
		fmt.Fprintf(a.out, "Next record is on sheet line %d.\n", rows[i].Line)
	}

	if err := a.store.Save(a.opts.Workbook, i); err != nil {
		return res, fmt.Errorf("save checkpoint at row %d: %w", i, err)
	}

	res.Outcome = Paused
	res.Index = i
	return res, nil
}

// readLine returns the next answer, trimmed and lower-cased. ok is false
// when input has ended.
func (a *Auditor) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(a.in.Text())), true
}

func (a *Auditor) clear() {
	if a.opts.ClearScreen {
		fmt.Fprint(a.out, clearSequence)
	}
}
