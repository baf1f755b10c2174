package policy

import "fmt"

// Reaction is how a controller answers error events.
type Reaction string

const (
	ReactReport        Reaction = "report"
	ReactSkipExtension Reaction = "skip-extension"
	ReactSkipAll       Reaction = "skip-all"
	ReactAbort         Reaction = "abort"
)

func ParseReaction(s string) (Reaction, error) {
	switch r := Reaction(s); r {
	case "":
		return ReactReport, nil
	case ReactReport, ReactSkipExtension, ReactSkipAll, ReactAbort:
		return r, nil
	}
	return "", fmt.Errorf("unknown error reaction %q", s)
}

// Apply updates p (or cancels the job) in response to an error. ext is the
// extension the error was tagged with, empty when the error kind is not an
// extension; such errors are only reported under ReactSkipExtension.
func (r Reaction) Apply(p *ErrorPolicy, ext string, cancel func()) {
	switch r {
	case ReactSkipExtension:
		if ext != "" {
			p.SkipExtension(ext)
		}
	case ReactSkipAll:
		p.SetSkipAll(true)
	case ReactAbort:
		if cancel != nil {
			cancel()
		}
	}
}
