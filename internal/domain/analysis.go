package domain

// SimilarIssue is a prior resolution offered for a new issue.
type SimilarIssue struct {
	Description string `json:"description"`
	Resolution  string `json:"resolution"`
}

// Analysis is the derived triage context for a new issue. It is never persisted.
type Analysis struct {
	PastIssuesCount   int            `json:"past_issues_count"`
	SimilarIssues     []SimilarIssue `json:"similar_issues"`
	Severity          Severity       `json:"severity"`
	HasCriticalIssues bool           `json:"has_critical_issues"`
}
