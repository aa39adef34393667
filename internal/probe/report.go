package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter prints an Outcome for a human: one line, or two when there is a
// body worth showing next to an error.
type Reporter struct {
	Out   io.Writer
	Color bool
}

// NewStdoutReporter colors its output only when stdout is a terminal and
// NO_COLOR is unset.
func NewStdoutReporter() *Reporter {
	return &Reporter{Out: os.Stdout, Color: !color.NoColor}
}

func (r *Reporter) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (r *Reporter) Report(o Outcome) error {
	ok := r.paint(color.FgGreen)
	bad := r.paint(color.FgRed)

	var err error
	switch v := o.(type) {
	case Success:
		text := v.Raw
		if text == "" {
			text = v.Body.JSONString()
		}
		_, err = ok.Fprintf(r.Out, "Response: %s\n", text)
	case UnexpectedStatus:
		if _, err = bad.Fprintf(r.Out, "Error: Received status code %d\n", v.Code); err == nil {
			_, err = fmt.Fprintf(r.Out, "Response content: %s\n", v.RawBody)
		}
	case MalformedSuccess:
		if _, err = bad.Fprintf(r.Out, "Error: Received status code 200 with a non-JSON body: %s\n", v.Description); err == nil {
			_, err = fmt.Fprintf(r.Out, "Response content: %s\n", v.RawBody)
		}
	case TransportFailure:
		_, err = bad.Fprintf(r.Out, "An error occurred: %s\n", v.Description)
	default:
		_, err = fmt.Fprintf(r.Out, "Unknown outcome %T\n", o)
	}
	return err
}
