package qualidoo

// Finding severities, most severe first.
const (
	SeverityCritical = "CRITICAL"
	SeverityMajor    = "MAJOR"
	SeverityMinor    = "MINOR"
	SeverityInfo     = "INFO"
)

// Finding is a single issue reported by an analysis agent. FilePath,
// LineNumber and Suggestion are optional and may be zero.
type Finding struct {
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	FilePath   string `json:"file_path,omitempty"`
	LineNumber int    `json:"line_number,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// AgentResult holds one agent's score and findings for the analyzed addon.
type AgentResult struct {
	AgentName       string    `json:"agent_name"`
	DisplayName     string    `json:"display_name,omitempty"`
	Score           float64   `json:"score"`
	Findings        []Finding `json:"findings,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

/*
AnalysisResult is the full report for a completed job.

TopIssues duplicates a subset of the per-agent findings for quick display.
The service decides what goes there; the client renders both lists as
received and maintains no relationship between them.
*/
type AnalysisResult struct {
	JobID        string        `json:"job_id,omitempty"`
	OverallScore float64       `json:"overall_score"`
	AgentResults []AgentResult `json:"agent_results,omitempty"`
	TopIssues    []Finding     `json:"top_issues,omitempty"`
}

// UserInfo describes the authenticated account, as returned by the
// identity endpoint. Nil limits mean unlimited.
type UserInfo struct {
	Email             string `json:"email"`
	Tier              string `json:"tier"`
	AnalysesThisMonth int    `json:"analyses_this_month"`
	AnalysesLimit     *int   `json:"analyses_limit"`
	APIRequestsToday  int    `json:"api_requests_today"`
	APILimit          *int   `json:"api_limit"`
}
