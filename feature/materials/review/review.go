package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"material-manager/core/errs"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"

	"github.com/looplab/fsm"
)

// Events accepted by the review state machine.
const (
	// EventAprobar marks the list reviewed.
	EventAprobar = "aprobar"
	// EventReabrir sends a reviewed list back to review after an edit.
	EventReabrir = "reabrir"
)

func events() fsm.Events {
	return fsm.Events{
		{Name: EventAprobar, Src: []string{models.EstadoPendiente, models.EstadoEnRevision, models.EstadoRevisado}, Dst: models.EstadoRevisado},
		{Name: EventReabrir, Src: []string{models.EstadoRevisado}, Dst: models.EstadoEnRevision},
	}
}

// Transition is the outcome of firing an event.
type Transition struct {
	Event   string
	From    string
	To      string
	Changed bool
}

func known(state string) bool {
	switch state {
	case models.EstadoPendiente, models.EstadoEnRevision, models.EstadoRevisado:
		return true
	}
	return false
}

// Next fires event from the current state. An empty or unrecognised state
// reads as pendiente, so approval always lands on revisado.
// Firing an event that does not apply to the state fails with errs.ErrInvalidInput.
func Next(ctx context.Context, current, event string) (Transition, error) {
	if current == "" {
		current = models.EstadoPendiente
	}
	t := Transition{Event: event, From: current, To: current}

	start := current
	if !known(start) {
		start = models.EstadoPendiente
	}
	machine := fsm.NewFSM(start, events(), fsm.Callbacks{})
	err := machine.Event(ctx, event)

	var noTransition fsm.NoTransitionError
	var invalid fsm.InvalidEventError
	var unknown fsm.UnknownEventError
	switch {
	case err == nil:
		t.To = machine.Current()
		t.Changed = true
	case errors.As(err, &noTransition):
	case errors.As(err, &invalid), errors.As(err, &unknown):
		return t, errs.Invalid("estado_revision", fmt.Sprintf("cannot %s a list in state %s", event, current))
	default:
		return t, err
	}
	return t, nil
}

// Apply fires event for the course and writes the new state. Entering
// revisado also stamps fecha_revision, even when the state was already
// revisado.
func Apply(ctx context.Context, docs store.Store, curso *models.Curso, event string, now time.Time) (Transition, error) {
	t, err := Next(ctx, curso.EstadoRevision, event)
	if err != nil {
		return t, err
	}

	var update store.CursoUpdate
	if t.Changed {
		update.EstadoRevision = &t.To
	}
	if t.To == models.EstadoRevisado {
		update.FechaRevision = &now
	}
	if update.Empty() {
		return t, nil
	}
	if err := docs.UpdateCurso(ctx, curso.ID, update); err != nil {
		return t, err
	}

	curso.EstadoRevision = t.To
	if update.FechaRevision != nil {
		curso.FechaRevision = update.FechaRevision
	}
	return t, nil
}
