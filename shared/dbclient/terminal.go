package dbclient

import (
	"context"
	"sync"

	"github.com/dracory/mysqlmanager/shared/profile"
)

// ErrBusyMessage is the failure delivered when a profile already has a statement in flight.
const ErrBusyMessage = "a statement is already running for this profile"

// Terminal tracks the statement outcome per profile and runs statements
// off the caller's goroutine. A submission moves the profile to Pending;
// the dispatcher result then replaces it. There is no cancellation.
type Terminal struct {
	dispatcher *Dispatcher

	mu     sync.Mutex
	states map[uint]Outcome
	wg     sync.WaitGroup
}

// NewTerminal creates a terminal over the given dispatcher.
func NewTerminal(d *Dispatcher) *Terminal {
	return &Terminal{
		dispatcher: d,
		states:     map[uint]Outcome{},
	}
}

// Status returns the current outcome for the profile, Idle if nothing ran.
func (t *Terminal) Status(profileID uint) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	if o, ok := t.states[profileID]; ok {
		return o
	}
	return Idle{}
}

// Submit starts sqlText for the profile and returns a channel that receives
// the terminal outcome exactly once. done, when not nil, is called with the
// same outcome before it is delivered. Cancelling ctx does not abort the
// statement.
func (t *Terminal) Submit(ctx context.Context, p profile.ConnectionProfile, database, sqlText string, done func(Outcome)) <-chan Outcome {
	out := make(chan Outcome, 1)

	t.mu.Lock()
	if _, busy := t.states[p.ID].(Pending); busy {
		t.mu.Unlock()
		failure := Failure{Message: ErrBusyMessage}
		if done != nil {
			done(failure)
		}
		out <- failure
		return out
	}
	t.states[p.ID] = Pending{}
	t.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		outcome := t.dispatcher.Execute(ctx, p, database, sqlText)

		t.mu.Lock()
		t.states[p.ID] = outcome
		t.mu.Unlock()

		if done != nil {
			done(outcome)
		}
		out <- outcome
	}()
	return out
}

// Reset forgets the profile's last outcome, returning it to Idle.
// A statement in flight is left alone.
func (t *Terminal) Reset(profileID uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.states[profileID].(Pending); busy {
		return
	}
	delete(t.states, profileID)
}

// Wait blocks until every submitted statement has finished.
func (t *Terminal) Wait() {
	t.wg.Wait()
}
