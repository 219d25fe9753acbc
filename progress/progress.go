// Package progress renders poll-loop progress. A Sink receives every
// observed job status and a final Stop when polling ends, whatever the
// outcome, so it can release the display.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aidooit/qualidoo/qualidoo"
)

// Sink observes polled job statuses. OnStatus is called once per
// observation, including the terminal one; Stop exactly once afterwards.
type Sink interface {
	OnStatus(status qualidoo.JobStatus)
	Stop()
}

// NewSink picks a spinner for interactive terminals and plain line output
// otherwise.
func NewSink(w io.Writer) Sink {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewSpinnerSink(w)
	}
	return NewWriterSink(w)
}

// WriterSink prints one line per status change. Suited to logs and pipes.
type WriterSink struct {
	w    io.Writer
	last string
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// OnStatus prints the status when it differs from the previous one.
func (s *WriterSink) OnStatus(status qualidoo.JobStatus) {
	if status.Status == s.last {
		return
	}
	s.last = status.Status
	fmt.Fprintf(s.w, "Analyzing... (%s)\n", status.Status)
}

func (s *WriterSink) Stop() {}
