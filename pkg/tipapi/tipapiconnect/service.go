// Package tipapiconnect wires tipwiser.v1.TipService onto Connect handlers
// and clients.
package tipapiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tipwiser/pkg/tipapi"
)

const (
	// TipServiceName is the fully-qualified name of the TipService service.
	TipServiceName = "tipwiser.v1.TipService"
)

// Procedure paths for the TipService methods.
const (
	CreateSessionProcedure  = "/tipwiser.v1.TipService/CreateSession"
	SetBillTextProcedure    = "/tipwiser.v1.TipService/SetBillText"
	IncrementSplitProcedure = "/tipwiser.v1.TipService/IncrementSplit"
	DecrementSplitProcedure = "/tipwiser.v1.TipService/DecrementSplit"
	SetTipFractionProcedure = "/tipwiser.v1.TipService/SetTipFraction"
	GetSnapshotProcedure    = "/tipwiser.v1.TipService/GetSnapshot"
	EndSessionProcedure     = "/tipwiser.v1.TipService/EndSession"
)

// TipServiceHandler is implemented by the server.
type TipServiceHandler interface {
	CreateSession(context.Context, *connect.Request[tipapi.CreateSessionRequest]) (*connect.Response[tipapi.SessionState], error)
	SetBillText(context.Context, *connect.Request[tipapi.SetBillTextRequest]) (*connect.Response[tipapi.SessionState], error)
	IncrementSplit(context.Context, *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error)
	DecrementSplit(context.Context, *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error)
	SetTipFraction(context.Context, *connect.Request[tipapi.SetTipFractionRequest]) (*connect.Response[tipapi.SessionState], error)
	GetSnapshot(context.Context, *connect.Request[tipapi.GetSnapshotRequest]) (*connect.Response[tipapi.SessionState], error)
	EndSession(context.Context, *connect.Request[tipapi.EndSessionRequest]) (*connect.Response[tipapi.EndSessionResponse], error)
}

// NewTipServiceHandler builds an HTTP handler for svc and returns the path
// prefix to mount it on.
func NewTipServiceHandler(svc TipServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(tipapi.JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateSessionProcedure, connect.NewUnaryHandler(CreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(SetBillTextProcedure, connect.NewUnaryHandler(SetBillTextProcedure, svc.SetBillText, opts...))
	mux.Handle(IncrementSplitProcedure, connect.NewUnaryHandler(IncrementSplitProcedure, svc.IncrementSplit, opts...))
	mux.Handle(DecrementSplitProcedure, connect.NewUnaryHandler(DecrementSplitProcedure, svc.DecrementSplit, opts...))
	mux.Handle(SetTipFractionProcedure, connect.NewUnaryHandler(SetTipFractionProcedure, svc.SetTipFraction, opts...))
	mux.Handle(GetSnapshotProcedure, connect.NewUnaryHandler(GetSnapshotProcedure, svc.GetSnapshot, opts...))
	mux.Handle(EndSessionProcedure, connect.NewUnaryHandler(EndSessionProcedure, svc.EndSession, opts...))
	return "/" + TipServiceName + "/", mux
}

// TipServiceClient calls a remote TipService.
type TipServiceClient interface {
	CreateSession(context.Context, *connect.Request[tipapi.CreateSessionRequest]) (*connect.Response[tipapi.SessionState], error)
	SetBillText(context.Context, *connect.Request[tipapi.SetBillTextRequest]) (*connect.Response[tipapi.SessionState], error)
	IncrementSplit(context.Context, *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error)
	DecrementSplit(context.Context, *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error)
	SetTipFraction(context.Context, *connect.Request[tipapi.SetTipFractionRequest]) (*connect.Response[tipapi.SessionState], error)
	GetSnapshot(context.Context, *connect.Request[tipapi.GetSnapshotRequest]) (*connect.Response[tipapi.SessionState], error)
	EndSession(context.Context, *connect.Request[tipapi.EndSessionRequest]) (*connect.Response[tipapi.EndSessionResponse], error)
}

type tipServiceClient struct {
	createSession  *connect.Client[tipapi.CreateSessionRequest, tipapi.SessionState]
	setBillText    *connect.Client[tipapi.SetBillTextRequest, tipapi.SessionState]
	incrementSplit *connect.Client[tipapi.SplitRequest, tipapi.SessionState]
	decrementSplit *connect.Client[tipapi.SplitRequest, tipapi.SessionState]
	setTipFraction *connect.Client[tipapi.SetTipFractionRequest, tipapi.SessionState]
	getSnapshot    *connect.Client[tipapi.GetSnapshotRequest, tipapi.SessionState]
	endSession     *connect.Client[tipapi.EndSessionRequest, tipapi.EndSessionResponse]
}

// NewTipServiceClient constructs a client for the TipService at baseURL
// (for example, http://localhost:8080).
func NewTipServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TipServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(tipapi.JSONCodec{})}, opts...)

	return &tipServiceClient{
		createSession:  connect.NewClient[tipapi.CreateSessionRequest, tipapi.SessionState](httpClient, baseURL+CreateSessionProcedure, opts...),
		setBillText:    connect.NewClient[tipapi.SetBillTextRequest, tipapi.SessionState](httpClient, baseURL+SetBillTextProcedure, opts...),
		incrementSplit: connect.NewClient[tipapi.SplitRequest, tipapi.SessionState](httpClient, baseURL+IncrementSplitProcedure, opts...),
		decrementSplit: connect.NewClient[tipapi.SplitRequest, tipapi.SessionState](httpClient, baseURL+DecrementSplitProcedure, opts...),
		setTipFraction: connect.NewClient[tipapi.SetTipFractionRequest, tipapi.SessionState](httpClient, baseURL+SetTipFractionProcedure, opts...),
		getSnapshot:    connect.NewClient[tipapi.GetSnapshotRequest, tipapi.SessionState](httpClient, baseURL+GetSnapshotProcedure, opts...),
		endSession:     connect.NewClient[tipapi.EndSessionRequest, tipapi.EndSessionResponse](httpClient, baseURL+EndSessionProcedure, opts...),
	}
}

func (c *tipServiceClient) CreateSession(ctx context.Context, req *connect.Request[tipapi.CreateSessionRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *tipServiceClient) SetBillText(ctx context.Context, req *connect.Request[tipapi.SetBillTextRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.setBillText.CallUnary(ctx, req)
}

func (c *tipServiceClient) IncrementSplit(ctx context.Context, req *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.incrementSplit.CallUnary(ctx, req)
}

func (c *tipServiceClient) DecrementSplit(ctx context.Context, req *connect.Request[tipapi.SplitRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.decrementSplit.CallUnary(ctx, req)
}

func (c *tipServiceClient) SetTipFraction(ctx context.Context, req *connect.Request[tipapi.SetTipFractionRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.setTipFraction.CallUnary(ctx, req)
}

func (c *tipServiceClient) GetSnapshot(ctx context.Context, req *connect.Request[tipapi.GetSnapshotRequest]) (*connect.Response[tipapi.SessionState], error) {
	return c.getSnapshot.CallUnary(ctx, req)
}

func (c *tipServiceClient) EndSession(ctx context.Context, req *connect.Request[tipapi.EndSessionRequest]) (*connect.Response[tipapi.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}
