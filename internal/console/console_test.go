package console

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmynk/tipwiser/internal/service"
	"github.com/mmynk/tipwiser/internal/storage/memory"
	"github.com/mmynk/tipwiser/pkg/tipapi/tipapiconnect"
)

func TestRun_Local(t *testing.T) {
	in := strings.NewReader("bill 50\n+\ntip 0.18\nquit\nbill 999\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, NewLocalSession("$")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Total Per Person: $0.00",
		"enter a bill to split it",
		"Total Per Person: $50.00",
		"Split: 2",
		"Total Per Person: $29.50",
		"Tip:   $9.00 (18%)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "$999.00") {
		t.Error("commands after quit should not run")
	}
}

func TestRun_InputMistakes(t *testing.T) {
	in := strings.NewReader("tip lots\ntip 150%\nfrobnicate\n\nhelp\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, NewLocalSession("$")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{`invalid tip "lots"`, "outside 0%..100%", `unknown command "frobnicate"`, "commands:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRun_SplitStaysAtOne(t *testing.T) {
	in := strings.NewReader("bill 40\n-\ndown\n")
	var out bytes.Buffer

	if err := Run(context.Background(), in, &out, NewLocalSession("$")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.Contains(out.String(), "Split: 0") {
		t.Errorf("split went below one:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Total Per Person: $40.00") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestParseTip(t *testing.T) {
	tests := []struct {
		arg     string
		want    float64
		wantErr bool
	}{
		{arg: "0.18", want: 0.18},
		{arg: "18%", want: 0.18},
		{arg: "100%", want: 1},
		{arg: "0", want: 0},
		{arg: "", wantErr: true},
		{arg: "abc", wantErr: true},
		{arg: "NaN", wantErr: true},
		{arg: "nan%", wantErr: true},
		{arg: "1.5", wantErr: true},
		{arg: "-5%", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTip(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTip(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseTip(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestRun_Remote(t *testing.T) {
	store := memory.New(memory.Options{})
	path, handler := tipapiconnect.NewTipServiceHandler(service.NewTipService(store, nil, "€"))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	client := tipapiconnect.NewTipServiceClient(http.DefaultClient, server.URL)
	sess, err := NewRemoteSession(ctx, client)
	if err != nil {
		t.Fatalf("NewRemoteSession failed: %v", err)
	}
	if sess.ID() == "" {
		t.Fatal("expected session ID")
	}

	in := strings.NewReader("bill 200\n+\n+\n+\ntip 15%\n")
	var out bytes.Buffer
	if err := Run(ctx, in, &out, sess); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Total Per Person: €57.50") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := sess.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected session removed on close, %d left", store.Len())
	}
	if _, err := sess.Display(ctx); err == nil {
		t.Error("expected error after close")
	}
}
