package models

import "time"

// Snapshot is a projection of one engine's state after its last write.
type Snapshot struct {
	// BillAmount is the parsed bill, or 0 when the bill text is not a number.
	BillAmount float64 `json:"bill_amount"`

	// IsValidBill is true iff BillAmount > 0.
	IsValidBill bool `json:"is_valid_bill"`

	// TipAmount is 0 when the bill is invalid.
	TipAmount float64 `json:"tip_amount"`

	// TotalPerPerson is (bill + tip) / split, or 0 when the bill is invalid.
	TotalPerPerson float64 `json:"total_per_person"`

	SplitCount int `json:"split_count"`

	// TipPercent is the slider fraction rounded to a whole percentage.
	TipPercent int `json:"tip_percent"`
}

// Display holds the strings a UI shows for a Snapshot.
type Display struct {
	Bill           string `json:"bill"`
	TotalPerPerson string `json:"total_per_person"`
	Tip            string `json:"tip"`
	Split          string `json:"split"`
	TipPercent     string `json:"tip_percent"`

	// ShowDetails tells the UI whether to render the split, tip and
	// percentage controls. They stay hidden until the bill is valid.
	ShowDetails bool `json:"show_details"`
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID        string
	CreatedAt time.Time
}
