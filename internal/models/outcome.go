package models

import "time"

// ItemStatus is the terminal state of one shopping-list item within a run.
// Every item ends in exactly one of these.
type ItemStatus string

const (
	StatusAdded        ItemStatus = "ADDED"
	StatusNoCandidates ItemStatus = "NO_CANDIDATES"
	StatusCommitFailed ItemStatus = "COMMIT_FAILED"
)

// ItemOutcome records how a single shopping-list item was resolved.
type ItemOutcome struct {
	RunID     string     `json:"run_id"`
	Item      string     `json:"item"`
	Status    ItemStatus `json:"status"`
	Product   string     `json:"product,omitempty"`
	Price     float64    `json:"price,omitempty"`
	Delivery  string     `json:"delivery,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
