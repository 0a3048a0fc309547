package service

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/jjenkins/vinlookup/internal/vin"
)

// State is the position of a search in its lifecycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateRequesting
	StateSuccess
	StateNoResults
	StateRequestFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateRequesting:
		return "requesting"
	case StateSuccess:
		return "success"
	case StateNoResults:
		return "no_results"
	case StateRequestFailed:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a search
func (s State) Terminal() bool {
	return s == StateInvalid || s == StateSuccess || s == StateNoResults || s == StateRequestFailed
}

// Decoder resolves a validated VIN into vehicle attributes
type Decoder interface {
	Decode(ctx context.Context, vin string) (*model.Vehicle, error)
}

// Recorder persists successful lookups
type Recorder interface {
	Save(ctx context.Context, l *model.Lookup) error
}

// Outcome is the terminal result of one search. It carries everything the
// image search needs, so callers hold it instead of any shared state.
type Outcome struct {
	ID      uuid.UUID
	Input   string
	VIN     string
	State   State
	Vehicle *model.Vehicle
	Lines   []model.Line
	Err     error
}

// ImageSearchAvailable reports whether the image search may be offered
func (o Outcome) ImageSearchAvailable() bool {
	return o.State == StateSuccess
}

// ImageSearchURL returns the image search URL for the decoded vehicle
func (o Outcome) ImageSearchURL() (string, error) {
	if o.State != StateSuccess {
		return "", ErrImageSearchUnavailable
	}
	return BuildImageSearchURL(o.Vehicle.Ref())
}

// Message returns the user-facing message for a failed outcome
func (o Outcome) Message() string {
	return UserMessage(o.Err)
}

// Resolver runs validate, decode and format for a single input
type Resolver struct {
	decoder   Decoder
	recorder  Recorder
	errLogger *log.Logger
}

// NewResolver creates a new Resolver. recorder may be nil.
func NewResolver(decoder Decoder, recorder Recorder) *Resolver {
	return &Resolver{
		decoder:   decoder,
		recorder:  recorder,
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// SetErrorLogger replaces the logger used for recording failures
func (r *Resolver) SetErrorLogger(l *log.Logger) {
	r.errLogger = l
}

// Resolve validates input, decodes it and records a success
func (r *Resolver) Resolve(ctx context.Context, input string) Outcome {
	out := r.validate(uuid.New(), input)
	if out.State == StateInvalid {
		return out
	}

	out = r.decode(ctx, out)
	r.record(ctx, out)
	return out
}

func (r *Resolver) validate(id uuid.UUID, input string) Outcome {
	out := Outcome{ID: id, Input: input, State: StateValidating}

	v, err := vin.Validate(input)
	if err != nil {
		out.State = StateInvalid
		out.Err = err
		return out
	}

	out.VIN = v
	return out
}

func (r *Resolver) decode(ctx context.Context, out Outcome) Outcome {
	vehicle, err := r.decoder.Decode(ctx, out.VIN)
	switch {
	case err == nil && vehicle == nil:
		out.State = StateNoResults
		out.Err = ErrNoResults
	case err == nil:
		out.State = StateSuccess
		out.Vehicle = vehicle
		out.Lines = FormatVehicle(vehicle)
	case errors.Is(err, ErrNoResults):
		out.State = StateNoResults
		out.Err = err
	default:
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			err = &RequestError{Detail: err.Error(), Err: err}
		}
		out.State = StateRequestFailed
		out.Err = err
	}
	return out
}

// record saves a successful outcome; failures are logged, never surfaced
func (r *Resolver) record(ctx context.Context, out Outcome) {
	if r.recorder == nil || out.State != StateSuccess {
		return
	}

	l := &model.Lookup{
		ID:         out.ID,
		VIN:        out.VIN,
		Make:       out.Vehicle.Make,
		Model:      out.Vehicle.Model,
		ModelYear:  out.Vehicle.ModelYear,
		BodyClass:  out.Vehicle.BodyClass,
		SearchedAt: time.Now(),
	}
	if err := r.recorder.Save(context.WithoutCancel(ctx), l); err != nil {
		r.errLogger.Printf("Failed to record lookup %s: %v", out.VIN, err)
	}
}
