package model

// Promise represents a tracked political promise or commitment.
type Promise struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Authority   string `json:"authority"` // who made it
	Party       string `json:"party"`
	Date        string `json:"date"`
	TargetDate  string `json:"targetDate"` // "TBD" when the source gave none
	Status      string `json:"status"`     // Active, In Progress, Delayed, Completed
	Category    string `json:"category"`
	Scope       string `json:"scope"` // "Centre" or "State"
	Progress    int    `json:"progress"`
}
