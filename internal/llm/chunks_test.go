package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/opencontratos/contratista/internal/model"
)

// mockProvider scripts one response per call, in order.
type mockProvider struct {
	calls     int
	responses []func() (Completion, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, _ string) (Completion, error) {
	if m.calls >= len(m.responses) {
		return Completion{}, errors.New("unexpected call")
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp()
}

func ok(json string) func() (Completion, error) {
	return func() (Completion, error) { return Completion{Text: json}, nil }
}

func fail(msg string) func() (Completion, error) {
	return func() (Completion, error) { return Completion{}, errors.New(msg) }
}

func testLLMConfig() model.LLMConfig {
	cfg := model.DefaultConfig().LLM
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 1000
	cfg.BackoffBase = time.Millisecond
	return cfg
}

func newTestExtractor(p Provider) *ChunkExtractor {
	return NewChunkExtractor(p, testLLMConfig(), false)
}

func TestSplitChunks(t *testing.T) {
	text := strings.Repeat("a", 40000)
	chunks := SplitChunks(text, 15000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 15000 || len(chunks[1]) != 15000 || len(chunks[2]) != 10000 {
		t.Errorf("chunk lengths = %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks must reassemble to the original text")
	}

	if got := SplitChunks("", 15000); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
	if got := SplitChunks("corto", 15000); len(got) != 1 {
		t.Errorf("expected single chunk, got %d", len(got))
	}
}

func TestExtract_FailedChunkNeverAbortsDocument(t *testing.T) {
	origSleep := sleepFunc
	sleepFunc = func(time.Duration) {}
	defer func() { sleepFunc = origSleep }()

	p := &mockProvider{responses: []func() (Completion, error){
		ok(`{"razon_social": "ANDES S.A."}`),
		// chunk 2 exhausts all three attempts
		fail("rate limited"),
		fail("rate limited"),
		fail("rate limited"),
		ok(`{"razon_social": "OTRA EMPRESA S.A.", "ruc": "1790012345001"}`),
	}}
	e := newTestExtractor(p)

	got, err := e.Extract(context.Background(), "doc.txt", strings.Repeat("x", 40000))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.calls != 5 {
		t.Errorf("expected 5 provider calls, got %d", p.calls)
	}
	// first non-empty wins: chunk 3 must not overwrite chunk 1
	if got.RazonSocial != "ANDES S.A." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.RUC != "1790012345001" {
		t.Errorf("ruc = %q", got.RUC)
	}
}

func TestExtract_RetryThenSuccess(t *testing.T) {
	origSleep := sleepFunc
	var slept []time.Duration
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleepFunc = origSleep }()

	p := &mockProvider{responses: []func() (Completion, error){
		fail("transient"),
		fail("transient"),
		ok(`{"ruc": "1790012345001"}`),
	}}
	e := newTestExtractor(p)

	got, err := e.Extract(context.Background(), "doc.txt", "texto corto")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.RUC != "1790012345001" {
		t.Errorf("ruc = %q", got.RUC)
	}
	// backoff doubles from the base on each retry
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond}
	if len(slept) != len(want) || slept[0] != want[0] || slept[1] != want[1] {
		t.Errorf("backoffs = %v, want %v", slept, want)
	}
}

func TestExtract_ContentFilterIsNoDataNotError(t *testing.T) {
	p := &mockProvider{responses: []func() (Completion, error){
		func() (Completion, error) { return Completion{Reason: FailContentFiltered}, nil },
	}}
	e := newTestExtractor(p)

	got, err := e.Extract(context.Background(), "doc.txt", "texto corto")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !got.Empty() {
		t.Errorf("expected empty result, got %+v", got)
	}
	if p.calls != 1 {
		t.Errorf("content filter must not be retried, got %d calls", p.calls)
	}
}

func TestExtract_StopsWhenComplete(t *testing.T) {
	full := `{"razon_social": "ANDES S.A.", "representante": "Juan Pérez", "ruc": "1790012345001",
		"telefono": "0991234567", "mail": "g@andes.com", "domicilio": "Av. Quito 402"}`
	p := &mockProvider{responses: []func() (Completion, error){ok(full)}}
	e := newTestExtractor(p)

	got, err := e.Extract(context.Background(), "doc.txt", strings.Repeat("x", 40000))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !got.Complete() {
		t.Fatalf("expected complete result, got %+v", got)
	}
	if p.calls != 1 {
		t.Errorf("expected early exit after chunk 1, got %d calls", p.calls)
	}
}

func TestExtract_ContextCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &mockProvider{responses: []func() (Completion, error){
		func() (Completion, error) {
			cancel()
			return Completion{}, fmt.Errorf("context canceled")
		},
	}}
	e := newTestExtractor(p)

	_, err := e.Extract(ctx, "doc.txt", strings.Repeat("x", 40000))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("expected no further chunks after cancellation, got %d calls", p.calls)
	}
}
