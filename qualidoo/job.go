package qualidoo

import "strings"

// Job statuses reported by the service. The service owns all transitions;
// the client only observes them. Anything not listed here is treated as
// still in progress.
const (
	JobStatusPending    = "pending"
	JobStatusRunning    = "running"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

/*
The shape changes somewhat depending on Status:
If Status == failed:

	Error holds the service-provided failure reason.

Otherwise:

	Error is empty.
*/
type JobStatus struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// IsTerminal reports whether the status names a state the job cannot leave.
func (s JobStatus) IsTerminal() bool {
	switch strings.ToLower(s.Status) {
	case JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// UploadResponse is returned by the upload endpoint once the addon archive
// has been accepted for analysis.
type UploadResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
