package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Diagnostics prints errors for humans: code, message, caret context and
// suggestion, one block per error.
type Diagnostics struct {
	w       io.Writer
	label   *color.Color
	caret   *color.Color
	hint    *color.Color
	subject *color.Color
}

// NewDiagnostics creates a diagnostics printer writing to w. Colors are
// only emitted when colored is true.
func NewDiagnostics(w io.Writer, colored bool) *Diagnostics {
	d := &Diagnostics{
		w:       w,
		label:   color.New(color.FgRed, color.Bold),
		caret:   color.New(color.FgRed),
		hint:    color.New(color.FgCyan),
		subject: color.New(color.Bold),
	}
	for _, c := range []*color.Color{d.label, d.caret, d.hint, d.subject} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// Print writes every error reachable from err. Expression error lists and
// multierrors print each member separately.
func (d *Diagnostics) Print(err error) {
	d.PrintFor("", err)
}

// PrintFor prints err prefixed with the input it came from, such as a file
// and line.
func (d *Diagnostics) PrintFor(origin string, err error) {
	if err == nil {
		return
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			d.PrintFor(origin, e)
		}
		return
	}

	var list *exprErrors.ErrorList
	if errors.As(err, &list) {
		for _, e := range list.Errors {
			d.printExpr(origin, e)
		}
		return
	}

	var exprErr *exprErrors.Error
	if errors.As(err, &exprErr) {
		d.printExpr(origin, exprErr)
		return
	}

	fmt.Fprintf(d.w, "%s %s\n", d.label.Sprint("error:"), d.withOrigin(origin, err.Error()))
}

func (d *Diagnostics) printExpr(origin string, e *exprErrors.Error) {
	message := e.Message
	if e.Position.IsValid() {
		message = fmt.Sprintf("%s (%s)", message, e.Position)
	}
	fmt.Fprintf(d.w, "%s %s\n", d.label.Sprintf("error[%s]:", e.Code), d.withOrigin(origin, message))

	if e.Context != "" {
		lines := strings.Split(strings.TrimRight(e.Context, "\n"), "\n")
		for i, line := range lines {
			if i == len(lines)-1 && strings.HasSuffix(line, "^") {
				trimmed := strings.TrimSuffix(line, "^")
				fmt.Fprintf(d.w, "%s%s\n", trimmed, d.caret.Sprint("^"))
				continue
			}
			fmt.Fprintln(d.w, line)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(d.w, "  = %s %s\n", d.hint.Sprint("suggestion:"), e.Suggestion)
	}
}

func (d *Diagnostics) withOrigin(origin, message string) string {
	if origin == "" {
		return message
	}
	return d.subject.Sprint(origin) + ": " + message
}
