package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tipwiser/internal/engine"
	"github.com/mmynk/tipwiser/internal/metrics"
	"github.com/mmynk/tipwiser/internal/models"
	"github.com/mmynk/tipwiser/internal/storage"
	"github.com/mmynk/tipwiser/pkg/tipapi"
	"github.com/mmynk/tipwiser/pkg/tipapi/tipapiconnect"
)

// Input event names, used for logging and metrics.
const (
	EventBillText       = "set_bill_text"
	EventSplitIncrement = "increment_split"
	EventSplitDecrement = "decrement_split"
	EventTipFraction    = "set_tip_fraction"
)

// TipService implements the Connect TipService. Each RPC maps onto exactly
// one engine mutator of the caller's session.
type TipService struct {
	store    storage.Store
	metrics  *metrics.Metrics
	currency string
}

var _ tipapiconnect.TipServiceHandler = (*TipService)(nil)

// NewTipService creates a TipService backed by store. m may be nil.
func NewTipService(store storage.Store, m *metrics.Metrics, currency string) *TipService {
	if currency == "" {
		currency = engine.DefaultCurrency
	}
	return &TipService{store: store, metrics: m, currency: currency}
}

// CreateSession starts a session with an empty bill.
func (s *TipService) CreateSession(ctx context.Context, req *connect.Request[tipapi.CreateSessionRequest]) (*connect.Response[tipapi.SessionState], error) {
	info, err := s.store.Create(ctx)
	if err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.SessionStarted()
	slog.Info("Session started", "session_id", info.ID)

	var snap models.Snapshot
	if err := s.store.View(ctx, info.ID, func(e *engine.Engine) { snap = e.Snapshot() }); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(s.state(info.ID, snap, true)), nil
}

// SetBillText stores the bill text. Surrounding whitespace is dropped, as
// an input field does when the user commits the value.
func (s *TipService) SetBillText(ctx context.Context, req *connect.Request[tipapi.SetBillTextRequest]) (*connect.Response[tipapi.SessionState], error) {
	id, err := requireSessionID(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Msg.Text)

	snap, err := s.store.Update(ctx, id, func(e *engine.Engine) { e.SetBillText(text) })
	if err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.Event(EventBillText)
	slog.Debug("Bill text set",
		"session_id", id,
		"bill_amount", snap.BillAmount,
		"valid", snap.IsValidBill,
	)
	return connect.NewResponse(s.state(id, snap, true)), nil
}

// IncrementSplit adds one person to the split.
func (s *TipService) IncrementSplit(ctx context.Context, req *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error) {
	return s.changeSplit(ctx, req.Msg.SessionID, EventSplitIncrement, (*engine.Engine).IncrementSplit)
}

// DecrementSplit removes one person from the split.
func (s *TipService) DecrementSplit(ctx context.Context, req *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error) {
	return s.changeSplit(ctx, req.Msg.SessionID, EventSplitDecrement, (*engine.Engine).DecrementSplit)
}

func (s *TipService) changeSplit(ctx context.Context, sessionID, event string, step func(*engine.Engine) bool) (*connect.Response[tipapi.SessionState], error) {
	id, err := requireSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	var changed bool
	snap, err := s.store.Update(ctx, id, func(e *engine.Engine) { changed = step(e) })
	if err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.Event(event)
	if !changed {
		s.metrics.SplitRejected()
		slog.Debug("Split change ignored", "session_id", id, "event", event, "split", snap.SplitCount)
	}
	return connect.NewResponse(s.state(id, snap, changed)), nil
}

// SetTipFraction moves the tip slider; out-of-range values are clamped.
func (s *TipService) SetTipFraction(ctx context.Context, req *connect.Request[tipapi.SetTipFractionRequest]) (*connect.Response[tipapi.SessionState], error) {
	id, err := requireSessionID(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	snap, err := s.store.Update(ctx, id, func(e *engine.Engine) { e.SetTipFraction(req.Msg.Fraction) })
	if err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.Event(EventTipFraction)
	return connect.NewResponse(s.state(id, snap, true)), nil
}

// GetSnapshot returns the session's current values without changing them.
func (s *TipService) GetSnapshot(ctx context.Context, req *connect.Request[tipapi.GetSnapshotRequest]) (*connect.Response[tipapi.SessionState], error) {
	id, err := requireSessionID(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := s.store.View(ctx, id, func(e *engine.Engine) { snap = e.Snapshot() }); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(s.state(id, snap, false)), nil
}

// EndSession discards the session and its inputs.
func (s *TipService) EndSession(ctx context.Context, req *connect.Request[tipapi.EndSessionRequest]) (*connect.Response[tipapi.EndSessionResponse], error) {
	id, err := requireSessionID(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	s.metrics.SessionsRemoved("ended", 1)
	slog.Info("Session ended", "session_id", id)
	return connect.NewResponse(&tipapi.EndSessionResponse{}), nil
}

func (s *TipService) state(id string, snap models.Snapshot, changed bool) *tipapi.SessionState {
	return &tipapi.SessionState{
		SessionID: id,
		Snapshot:  snapshotToProto(snap),
		Display:   displayToProto(engine.Format(snap, s.currency)),
		Changed:   changed,
	}
}

func requireSessionID(id string) (string, error) {
	if id == "" {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id is required"))
	}
	return id, nil
}

// toConnectError maps storage errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrTooManySessions):
		return connect.NewError(connect.CodeResourceExhausted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func snapshotToProto(snap models.Snapshot) tipapi.Snapshot {
	return tipapi.Snapshot{
		BillAmount:     snap.BillAmount,
		IsValidBill:    snap.IsValidBill,
		TipAmount:      snap.TipAmount,
		TotalPerPerson: snap.TotalPerPerson,
		SplitCount:     snap.SplitCount,
		TipPercent:     snap.TipPercent,
	}
}

func displayToProto(d models.Display) tipapi.Display {
	return tipapi.Display{
		Bill:           d.Bill,
		TotalPerPerson: d.TotalPerPerson,
		Tip:            d.Tip,
		Split:          d.Split,
		TipPercent:     d.TipPercent,
		ShowDetails:    d.ShowDetails,
	}
}
