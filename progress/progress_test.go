package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidooit/qualidoo/qualidoo"
)

func TestWriterSinkPrintsStatusChanges(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.OnStatus(qualidoo.JobStatus{Status: "pending"})
	sink.OnStatus(qualidoo.JobStatus{Status: "pending"})
	sink.OnStatus(qualidoo.JobStatus{Status: "running"})
	sink.OnStatus(qualidoo.JobStatus{Status: "completed"})
	sink.Stop()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Analyzing... (pending)",
		"Analyzing... (running)",
		"Analyzing... (completed)",
	}, lines, "repeated statuses collapse to one line each")
}

func TestNewSinkFallsBackToWriter(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	assert.IsType(t, &WriterSink{}, sink)
}

func TestSpinnerSinkStopWithoutStart(t *testing.T) {
	sink := NewSpinnerSink(&bytes.Buffer{})
	assert.NotPanics(t, func() { sink.Stop() })
}

func TestSpinnerModelView(t *testing.T) {
	m := newSpinnerModel()
	assert.Contains(t, m.View(), "Analyzing...")

	updated, _ := m.Update(statusMsg("running"))
	assert.Contains(t, updated.(spinnerModel).View(), "(running)")

	stopped, _ := updated.(spinnerModel).Update(stopMsg{})
	assert.Empty(t, stopped.(spinnerModel).View())
}
