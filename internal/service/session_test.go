package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/jjenkins/vinlookup/internal/vin"
)

// fakeDecoder returns canned results per VIN. VINs listed in block wait
// for their context to be cancelled or for release to be closed.
type fakeDecoder struct {
	mu      sync.Mutex
	results map[string]*model.Vehicle
	errs    map[string]error
	block   map[string]chan struct{}
	started chan string
	calls   int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		results: map[string]*model.Vehicle{},
		errs:    map[string]error{},
		block:   map[string]chan struct{}{},
		started: make(chan string, 10),
	}
}

func (f *fakeDecoder) Decode(ctx context.Context, v string) (*model.Vehicle, error) {
	f.mu.Lock()
	f.calls++
	release := f.block[v]
	vehicle, err := f.results[v], f.errs[v]
	f.mu.Unlock()

	f.started <- v

	if release != nil {
		select {
		case <-ctx.Done():
			return nil, &RequestError{Detail: ctx.Err().Error(), Err: ctx.Err()}
		case <-release:
		}
	}
	return vehicle, err
}

type fakeRecorder struct {
	mu    sync.Mutex
	saved []*model.Lookup
	err   error
}

func (f *fakeRecorder) Save(_ context.Context, l *model.Lookup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, l)
	return f.err
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

const (
	camryVIN = "4T1B11HK5LU000000"
	civicVIN = "2HGFC2F59JH000000"
)

func newTestResolver(dec Decoder, rec Recorder) *Resolver {
	r := NewResolver(dec, rec)
	r.SetErrorLogger(log.New(io.Discard, "", 0))
	return r
}

func TestSession_Success(t *testing.T) {
	dec := newFakeDecoder()
	dec.results[camryVIN] = camry()
	rec := &fakeRecorder{}
	s := NewSession(newTestResolver(dec, rec))

	if s.State() != StateIdle {
		t.Fatalf("new session should be idle, got %s", s.State())
	}

	out, err := s.Search(context.Background(), " 4t1b11hk5lu000000 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != StateSuccess || out.VIN != camryVIN {
		t.Errorf("unexpected outcome %+v", out)
	}
	if len(out.Lines) != 10 {
		t.Errorf("expected 10 lines, got %d", len(out.Lines))
	}
	if !s.ImageSearchAvailable() || !out.ImageSearchAvailable() {
		t.Errorf("image search should be available after success")
	}
	if u, err := out.ImageSearchURL(); err != nil || u != "https://www.google.com/search?tbm=isch&q=2020%20TOYOTA%20Camry" {
		t.Errorf("ImageSearchURL() = %q, %v", u, err)
	}
	if rec.count() != 1 {
		t.Errorf("expected one recorded lookup, got %d", rec.count())
	}
}

func TestSession_TerminalStates(t *testing.T) {
	dec := newFakeDecoder()
	dec.errs[camryVIN] = ErrNoResults
	dec.errs[civicVIN] = errors.New("connection refused")
	rec := &fakeRecorder{}
	s := NewSession(newTestResolver(dec, rec))

	tests := []struct {
		name    string
		input   string
		state   State
		message string
	}{
		{"Test invalid length", "SHORT", StateInvalid, "Invalid VIN. Must be 17 characters."},
		{"Test no results", camryVIN, StateNoResults, "No results found."},
		{"Test request failed", civicVIN, StateRequestFailed, "Error: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.Search(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.State != tt.state || s.State() != tt.state {
				t.Errorf("state = %s (session %s), want %s", out.State, s.State(), tt.state)
			}
			if out.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", out.Message(), tt.message)
			}
			if out.ImageSearchAvailable() || s.ImageSearchAvailable() {
				t.Errorf("image search must not be available in %s", tt.state)
			}
			if _, err := out.ImageSearchURL(); !errors.Is(err, ErrImageSearchUnavailable) {
				t.Errorf("expected ErrImageSearchUnavailable, got %v", err)
			}
		})
	}

	if rec.count() != 0 {
		t.Errorf("failed lookups must not be recorded, got %d", rec.count())
	}
}

func TestSession_InvalidDoesNotCallDecoder(t *testing.T) {
	dec := newFakeDecoder()
	s := NewSession(newTestResolver(dec, nil))

	out, _ := s.Search(context.Background(), "")
	if !errors.Is(out.Err, vin.ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", out.Err)
	}
	if dec.calls != 0 {
		t.Errorf("decoder should not be called, got %d calls", dec.calls)
	}
}

func TestSession_NewSearchSupersedesInFlight(t *testing.T) {
	dec := newFakeDecoder()
	dec.results[camryVIN] = camry()
	dec.results[civicVIN] = &model.Vehicle{Make: "HONDA", Model: "Civic", ModelYear: "2018"}
	dec.block[camryVIN] = make(chan struct{})
	rec := &fakeRecorder{}
	s := NewSession(newTestResolver(dec, rec))

	type result struct {
		out Outcome
		err error
	}
	first := make(chan result, 1)
	go func() {
		out, err := s.Search(context.Background(), camryVIN)
		first <- result{out, err}
	}()

	select {
	case <-dec.started:
	case <-time.After(time.Second):
		t.Fatal("first search never reached the decoder")
	}
	if s.State() != StateRequesting {
		t.Fatalf("expected requesting, got %s", s.State())
	}

	out, err := s.Search(context.Background(), civicVIN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Vehicle.Make != "HONDA" {
		t.Errorf("unexpected vehicle %+v", out.Vehicle)
	}

	select {
	case r := <-first:
		if !errors.Is(r.err, ErrSuperseded) {
			t.Errorf("expected ErrSuperseded, got %v", r.err)
		}
	case <-time.After(time.Second):
		t.Fatal("superseded search was not cancelled")
	}

	if s.State() != StateSuccess {
		t.Errorf("session state should belong to the newest search, got %s", s.State())
	}
	if rec.count() != 1 {
		t.Errorf("only the newest search should be recorded, got %d", rec.count())
	}
}

func TestSession_BeginOrderDecidesWinner(t *testing.T) {
	dec := newFakeDecoder()
	dec.results[camryVIN] = camry()
	dec.results[civicVIN] = &model.Vehicle{Make: "HONDA", Model: "Civic", ModelYear: "2018"}
	rec := &fakeRecorder{}
	s := NewSession(newTestResolver(dec, rec))

	older := s.Begin(context.Background())
	newer := s.Begin(context.Background())

	out, err := s.Run(newer, civicVIN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != newer.ID() || out.Vehicle.Make != "HONDA" {
		t.Errorf("unexpected outcome %+v", out)
	}

	if _, err := s.Run(older, camryVIN); !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded for the older ticket, got %v", err)
	}
	if dec.calls != 1 {
		t.Errorf("the older ticket must not reach the decoder, got %d calls", dec.calls)
	}
	if s.State() != StateSuccess || rec.count() != 1 {
		t.Errorf("state %s with %d recorded, want success with 1", s.State(), rec.count())
	}
}

func TestSession_Reset(t *testing.T) {
	dec := newFakeDecoder()
	dec.results[camryVIN] = camry()
	s := NewSession(newTestResolver(dec, nil))

	if _, err := s.Search(context.Background(), camryVIN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Reset()

	if s.State() != StateIdle || s.ImageSearchAvailable() {
		t.Errorf("reset should return to idle, got %s", s.State())
	}
}

func TestResolver_RecordFailureIsNotSurfaced(t *testing.T) {
	dec := newFakeDecoder()
	dec.results[camryVIN] = camry()
	rec := &fakeRecorder{err: errors.New("db down")}
	r := newTestResolver(dec, rec)

	out := r.Resolve(context.Background(), camryVIN)
	if out.State != StateSuccess || out.Err != nil {
		t.Errorf("unexpected outcome %+v", out)
	}
	if rec.count() != 1 {
		t.Errorf("expected a save attempt, got %d", rec.count())
	}
}

func TestResolver_NilVehicleIsNoResults(t *testing.T) {
	dec := newFakeDecoder()
	r := newTestResolver(dec, nil)

	out := r.Resolve(context.Background(), camryVIN)
	if out.State != StateNoResults {
		t.Errorf("expected no results, got %s", out.State)
	}
}
