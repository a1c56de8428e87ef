package console

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tipwiser/internal/engine"
	"github.com/mmynk/tipwiser/internal/models"
	"github.com/mmynk/tipwiser/pkg/tipapi"
	"github.com/mmynk/tipwiser/pkg/tipapi/tipapiconnect"
)

// Session is the state-update contract the console drives. Every method
// returns the display for the state after the call.
type Session interface {
	SetBillText(ctx context.Context, text string) (models.Display, error)
	IncrementSplit(ctx context.Context) (models.Display, error)
	DecrementSplit(ctx context.Context) (models.Display, error)
	SetTipFraction(ctx context.Context, f float64) (models.Display, error)
	Display(ctx context.Context) (models.Display, error)
	Close(ctx context.Context) error
}

// LocalSession runs an engine in-process.
type LocalSession struct {
	engine   *engine.Engine
	currency string
}

// NewLocalSession returns a session with a fresh engine.
func NewLocalSession(currency string) *LocalSession {
	return &LocalSession{engine: engine.New(), currency: currency}
}

func (s *LocalSession) SetBillText(ctx context.Context, text string) (models.Display, error) {
	s.engine.SetBillText(strings.TrimSpace(text))
	return s.engine.Display(s.currency), nil
}

func (s *LocalSession) IncrementSplit(ctx context.Context) (models.Display, error) {
	s.engine.IncrementSplit()
	return s.engine.Display(s.currency), nil
}

func (s *LocalSession) DecrementSplit(ctx context.Context) (models.Display, error) {
	s.engine.DecrementSplit()
	return s.engine.Display(s.currency), nil
}

func (s *LocalSession) SetTipFraction(ctx context.Context, f float64) (models.Display, error) {
	s.engine.SetTipFraction(f)
	return s.engine.Display(s.currency), nil
}

func (s *LocalSession) Display(ctx context.Context) (models.Display, error) {
	return s.engine.Display(s.currency), nil
}

func (s *LocalSession) Close(ctx context.Context) error { return nil }

// RemoteSession drives a session hosted by a tipwiser server.
type RemoteSession struct {
	client tipapiconnect.TipServiceClient
	id     string
}

// NewRemoteSession opens a session on the server behind client.
func NewRemoteSession(ctx context.Context, client tipapiconnect.TipServiceClient) (*RemoteSession, error) {
	resp, err := client.CreateSession(ctx, connect.NewRequest(&tipapi.CreateSessionRequest{}))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &RemoteSession{client: client, id: resp.Msg.SessionID}, nil
}

// ID returns the server-assigned session ID.
func (s *RemoteSession) ID() string { return s.id }

func (s *RemoteSession) SetBillText(ctx context.Context, text string) (models.Display, error) {
	resp, err := s.client.SetBillText(ctx, connect.NewRequest(&tipapi.SetBillTextRequest{SessionID: s.id, Text: text}))
	return displayFrom(resp, err)
}

func (s *RemoteSession) IncrementSplit(ctx context.Context) (models.Display, error) {
	resp, err := s.client.IncrementSplit(ctx, connect.NewRequest(&tipapi.SplitRequest{SessionID: s.id}))
	return displayFrom(resp, err)
}

func (s *RemoteSession) DecrementSplit(ctx context.Context) (models.Display, error) {
	resp, err := s.client.DecrementSplit(ctx, connect.NewRequest(&tipapi.SplitRequest{SessionID: s.id}))
	return displayFrom(resp, err)
}

func (s *RemoteSession) SetTipFraction(ctx context.Context, f float64) (models.Display, error) {
	resp, err := s.client.SetTipFraction(ctx, connect.NewRequest(&tipapi.SetTipFractionRequest{SessionID: s.id, Fraction: f}))
	return displayFrom(resp, err)
}

func (s *RemoteSession) Display(ctx context.Context) (models.Display, error) {
	resp, err := s.client.GetSnapshot(ctx, connect.NewRequest(&tipapi.GetSnapshotRequest{SessionID: s.id}))
	return displayFrom(resp, err)
}

func (s *RemoteSession) Close(ctx context.Context) error {
	_, err := s.client.EndSession(ctx, connect.NewRequest(&tipapi.EndSessionRequest{SessionID: s.id}))
	return err
}

func displayFrom(resp *connect.Response[tipapi.SessionState], err error) (models.Display, error) {
	if err != nil {
		return models.Display{}, err
	}
	d := resp.Msg.Display
	return models.Display{
		Bill:           d.Bill,
		TotalPerPerson: d.TotalPerPerson,
		Tip:            d.Tip,
		Split:          d.Split,
		TipPercent:     d.TipPercent,
		ShowDetails:    d.ShowDetails,
	}, nil
}
