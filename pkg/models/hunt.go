package models

import "time"

// HuntStatus is the lifecycle state of a hunt execution.
// There is no idle status: no task at all means idle.
type HuntStatus string

const (
	HuntRunning   HuntStatus = "running"
	HuntCompleted HuntStatus = "completed"
	HuntFailed    HuntStatus = "failed"
)

// Terminal reports whether no further transition follows s.
func (s HuntStatus) Terminal() bool {
	return s == HuntCompleted || s == HuntFailed
}

// HuntResult is one finding produced by a hunt.
type HuntResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Confidence  int       `json:"confidence"`
	Severity    Severity  `json:"severity"`
	Category    string    `json:"category,omitempty"`
	Tactic      string    `json:"tactic,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Artifacts   []string  `json:"artifacts,omitempty"`
}

// HuntTask describes one execution of a threat-hunting query.
type HuntTask struct {
	ID            string       `json:"id"`
	Query         string       `json:"query"`
	Status        HuntStatus   `json:"status"`
	StartTime     time.Time    `json:"start_time"`
	EndTime       *time.Time   `json:"end_time,omitempty"`
	ExecutionTime float64      `json:"execution_time"` // seconds
	Results       []HuntResult `json:"results"`
	Error         string       `json:"error,omitempty"`
}

// Clone returns a deep copy of t.
func (t *HuntTask) Clone() *HuntTask {
	if t == nil {
		return nil
	}
	out := *t
	if t.EndTime != nil {
		end := *t.EndTime
		out.EndTime = &end
	}
	out.Results = make([]HuntResult, len(t.Results))
	for i, r := range t.Results {
		r.Artifacts = append([]string(nil), r.Artifacts...)
		out.Results[i] = r
	}
	return &out
}
