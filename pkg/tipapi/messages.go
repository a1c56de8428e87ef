// Package tipapi defines the wire messages of the tipwiser.v1.TipService
// Connect service. Messages travel as JSON.
package tipapi

// Snapshot mirrors the engine's derived values.
type Snapshot struct {
	BillAmount     float64 `json:"bill_amount"`
	IsValidBill    bool    `json:"is_valid_bill"`
	TipAmount      float64 `json:"tip_amount"`
	TotalPerPerson float64 `json:"total_per_person"`
	SplitCount     int     `json:"split_count"`
	TipPercent     int     `json:"tip_percent"`
}

// Display carries the formatted strings for a Snapshot.
type Display struct {
	Bill           string `json:"bill"`
	TotalPerPerson string `json:"total_per_person"`
	Tip            string `json:"tip"`
	Split          string `json:"split"`
	TipPercent     string `json:"tip_percent"`
	ShowDetails    bool   `json:"show_details"`
}

type CreateSessionRequest struct{}

type SetBillTextRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SplitRequest is used by both IncrementSplit and DecrementSplit.
type SplitRequest struct {
	SessionID string `json:"session_id"`
}

type SetTipFractionRequest struct {
	SessionID string  `json:"session_id"`
	Fraction  float64 `json:"fraction"`
}

type GetSnapshotRequest struct {
	SessionID string `json:"session_id"`
}

type EndSessionRequest struct {
	SessionID string `json:"session_id"`
}

type EndSessionResponse struct{}

// SessionState is returned by every call that creates, reads or mutates a
// session. It always reflects the request's own write.
type SessionState struct {
	SessionID string   `json:"session_id"`
	Snapshot  Snapshot `json:"snapshot"`
	Display   Display  `json:"display"`

	// Changed is false when a split change was ignored because it would
	// leave [1, 100].
	Changed bool `json:"changed"`
}

func (r *SetBillTextRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *SplitRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *SetTipFractionRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *GetSnapshotRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}

func (r *EndSessionRequest) GetSessionID() string {
	if r == nil {
		return ""
	}
	return r.SessionID
}
