package service

import (
	"errors"

	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
)

// Sink receives the outcome of an add, edit or delete attempt. Exactly one
// of its methods is called, synchronously, before the operation returns.
type Sink interface {
	OnError(kind engine.ErrorKind, message string)
	OnSuccess()
}

// Result is a Sink that records the outcome.
type Result struct {
	Success bool
	Kind    engine.ErrorKind
	Message string
}

func (r *Result) OnError(kind engine.ErrorKind, message string) {
	r.Success = false
	r.Kind = kind
	r.Message = message
}

func (r *Result) OnSuccess() {
	r.Success = true
	r.Kind = ""
	r.Message = ""
}

// Discard is a Sink for callers that only look at the returned error.
var Discard Sink = discard{}

type discard struct{}

func (discard) OnError(engine.ErrorKind, string) {}
func (discard) OnSuccess()                       {}

// reportStoreError reports a failed store operation to sink. Database
// faults are reported as storage errors, everything else that is not a
// missing record was rejected by the model.
func reportStoreError(sink Sink, err error) {
	switch {
	case errors.Is(err, models.ErrGeneral):
		sink.OnError(engine.ErrorKindStorage, err.Error())
	case errors.Is(err, models.ErrResourceNotFound):
		sink.OnError(engine.ErrorKindNotFound, err.Error())
	default:
		sink.OnError(engine.ErrorKindInvalidField, err.Error())
	}
}

// reportValidationError reports err to sink if it is a validation error and
// returns whether it was one.
func reportValidationError(sink Sink, err error, kind engine.PlanKind) bool {
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	sink.OnError(verr.Kind, verr.Message(kind))
	return true
}
