// Package engine holds the input state of one tip calculation session and
// keeps its derived values current.
//
// An Engine is owned by exactly one session and is not safe for concurrent
// use; callers that share it across goroutines must serialize access.
package engine

import (
	"math"

	"github.com/mmynk/tipwiser/internal/calculator"
	"github.com/mmynk/tipwiser/internal/models"
)

// Engine is the state holder behind a tip calculator screen.
// Every mutator recomputes the snapshot before returning, so a read
// that follows a write always sees it.
type Engine struct {
	billText    string
	splitCount  int
	tipFraction float64

	snap models.Snapshot
}

// New returns an engine with an empty bill, a split of one and no tip.
func New() *Engine {
	e := &Engine{splitCount: calculator.MinSplit}
	e.recompute()
	return e
}

// BillText returns the bill exactly as last entered.
func (e *Engine) BillText() string { return e.billText }

// SplitCount returns the number of people sharing the bill.
func (e *Engine) SplitCount() int { return e.splitCount }

// TipFraction returns the tip slider position in [0, 1].
func (e *Engine) TipFraction() float64 { return e.tipFraction }

// SetBillText stores text verbatim. Validation happens on read.
func (e *Engine) SetBillText(text string) {
	e.billText = text
	e.recompute()
}

// SetSplitCount moves the split to n. Values outside [1, 100] are ignored
// and the previous count is kept. It reports whether the count changed.
func (e *Engine) SetSplitCount(n int) bool {
	if !calculator.ValidSplit(n) || n == e.splitCount {
		return false
	}
	e.splitCount = n
	e.recompute()
	return true
}

// IncrementSplit adds one person, unless the split is already at the maximum.
func (e *Engine) IncrementSplit() bool {
	return e.SetSplitCount(e.splitCount + 1)
}

// DecrementSplit removes one person, unless the split is already at one.
func (e *Engine) DecrementSplit() bool {
	return e.SetSplitCount(e.splitCount - 1)
}

// SetTipFraction moves the tip slider. The value is clamped to [0, 1].
func (e *Engine) SetTipFraction(f float64) {
	e.tipFraction = calculator.ClampFraction(f)
	e.recompute()
}

// Snapshot returns the derived values for the current state.
func (e *Engine) Snapshot() models.Snapshot {
	return e.snap
}

// recompute runs parse, validity, tip and total in that order.
func (e *Engine) recompute() {
	amount := calculator.ParseBillAmount(e.billText)
	valid := amount > 0
	percent := calculator.TipPercent(e.tipFraction)

	snap := models.Snapshot{
		BillAmount:  amount,
		IsValidBill: valid,
		SplitCount:  e.splitCount,
		TipPercent:  percent,
	}
	if valid {
		tip := calculator.CalculateTip(amount, percent)
		total := calculator.CalculateTotalPerPerson(amount, e.splitCount, percent)
		// A bill near the float64 limit can overflow once the tip is added.
		if isFinite(tip) && isFinite(total) {
			snap.TipAmount = tip
			snap.TotalPerPerson = total
		} else {
			snap.IsValidBill = false
		}
	}
	e.snap = snap
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
