package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError lists every problem found in a layout.
type ValidationError struct {
	Source   string
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	b.WriteString("invalid layout")
	for i, p := range e.Problems {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// problem is one located layout error.
type problem struct {
	at  string
	err error
}

func (p *problem) Error() string { return p.at + ": " + p.err.Error() }

func (p *problem) Unwrap() error { return p.err }

func problemf(at, format string, args ...any) error {
	return &problem{at: at, err: fmt.Errorf(format, args...)}
}

func located(at string, err error) error {
	return &problem{at: at, err: err}
}

// schemaProblems flattens a schema failure into its leaf causes.
func schemaProblems(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	var walk func(*jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			at := v.InstanceLocation
			if at == "" {
				at = "/"
			}
			out = append(out, problemf(at, "%s", v.Message))
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}
