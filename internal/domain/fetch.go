package domain

// FetchTask is one remote file to retrieve, derived 1:1 from an Assembly
// record and the run's output format. Immutable; owned by the worker that
// executes it.
type FetchTask struct {
	RemotePath  string `json:"remote_path"`
	URL         string `json:"url"`
	Destination string `json:"destination"`
}

// FetchOutcome is the terminal state of one FetchTask.
type FetchOutcome struct {
	RemotePath string `json:"remote_path"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
	Bytes      int64  `json:"bytes"`
}

// FetchFailure identifies a record or task that did not produce a file.
type FetchFailure struct {
	RemotePath string `json:"remote_path"`
	Reason     string `json:"reason"`
}

// Summary is the batch completion report for a whole run.
type Summary struct {
	RecordsConsidered int            `json:"records_considered"`
	RecordsMatched    int            `json:"records_matched_filter"`
	FetchAttempted    int            `json:"fetch_attempted"`
	FetchSucceeded    int            `json:"fetch_succeeded"`
	FetchFailed       int            `json:"fetch_failed"`
	Failures          []FetchFailure `json:"failures,omitempty"`
}
