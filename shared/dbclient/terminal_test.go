package dbclient_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// gatedOpener blocks every session until release is closed, then fails.
type gatedOpener struct {
	entered chan struct{}
	release chan struct{}
}

func newGatedOpener() *gatedOpener {
	return &gatedOpener{entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedOpener) Open(context.Context, profile.ConnectionProfile, string) (*gorm.DB, error) {
	g.entered <- struct{}{}
	<-g.release
	return nil, errors.New("gate closed")
}

func receive(t *testing.T, ch <-chan dbclient.Outcome) dbclient.Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return nil
	}
}

func TestTerminal_StatusDefaultsToIdle(t *testing.T) {
	term := dbclient.NewTerminal(dbclient.NewDispatcher(failingOpener))
	assert.Equal(t, dbclient.Idle{}, term.Status(42))
}

func TestTerminal_SubmitStoresOutcome(t *testing.T) {
	opener := setupSQLite(t)
	term := dbclient.NewTerminal(dbclient.NewDispatcher(opener.Open))
	p := testProfile()

	outcome := receive(t, term.Submit(context.Background(), p, "", "SELECT 7 AS n", nil))
	term.Wait()

	rowSet, ok := outcome.(dbclient.RowSet)
	require.True(t, ok, "expected RowSet, got %#v", outcome)
	assert.Equal(t, [][]string{{"7"}}, rowSet.Result.Rows)
	assert.Equal(t, outcome, term.Status(p.ID))
}

func TestTerminal_PendingWhileRunning(t *testing.T) {
	gate := newGatedOpener()
	term := dbclient.NewTerminal(dbclient.NewDispatcher(gate.Open))
	p := testProfile()

	ch := term.Submit(context.Background(), p, "", "SELECT 1", nil)
	<-gate.entered

	assert.Equal(t, dbclient.Pending{}, term.Status(p.ID))

	close(gate.release)
	outcome := receive(t, ch)
	term.Wait()

	failure, ok := outcome.(dbclient.Failure)
	require.True(t, ok)
	assert.Contains(t, failure.Message, "gate closed")
	assert.Equal(t, outcome, term.Status(p.ID))
}

func TestTerminal_RejectsSecondSubmissionWhilePending(t *testing.T) {
	gate := newGatedOpener()
	term := dbclient.NewTerminal(dbclient.NewDispatcher(gate.Open))
	p := testProfile()

	first := term.Submit(context.Background(), p, "", "SELECT 1", nil)
	<-gate.entered

	second := receive(t, term.Submit(context.Background(), p, "", "SELECT 2", nil))
	assert.Equal(t, dbclient.Failure{Message: dbclient.ErrBusyMessage}, second)
	assert.Equal(t, dbclient.Pending{}, term.Status(p.ID))

	close(gate.release)
	receive(t, first)
	term.Wait()
}

func TestTerminal_ProfilesAreIndependent(t *testing.T) {
	gate := newGatedOpener()
	term := dbclient.NewTerminal(dbclient.NewDispatcher(gate.Open))
	a := testProfile()
	b := testProfile()
	b.ID = 2

	chA := term.Submit(context.Background(), a, "", "SELECT 1", nil)
	chB := term.Submit(context.Background(), b, "", "SELECT 1", nil)
	<-gate.entered
	<-gate.entered

	assert.Equal(t, dbclient.Pending{}, term.Status(a.ID))
	assert.Equal(t, dbclient.Pending{}, term.Status(b.ID))

	close(gate.release)
	receive(t, chA)
	receive(t, chB)
	term.Wait()
}

func TestTerminal_DoneCallback(t *testing.T) {
	opener := setupSQLite(t)
	term := dbclient.NewTerminal(dbclient.NewDispatcher(opener.Open))

	got := make(chan dbclient.Outcome, 1)
	outcome := receive(t, term.Submit(context.Background(), testProfile(), "", "SELECT 1", func(o dbclient.Outcome) {
		got <- o
	}))
	term.Wait()

	assert.Equal(t, outcome, receive(t, got))
}

func TestTerminal_CancelledContextStillCompletes(t *testing.T) {
	opener := setupSQLite(t)
	term := dbclient.NewTerminal(dbclient.NewDispatcher(opener.Open))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := receive(t, term.Submit(ctx, testProfile(), "", "SELECT 1 AS one", nil))
	term.Wait()

	_, ok := outcome.(dbclient.RowSet)
	assert.True(t, ok, "expected RowSet, got %#v", outcome)
}

func TestTerminal_Reset(t *testing.T) {
	term := dbclient.NewTerminal(dbclient.NewDispatcher(failingOpener))
	p := testProfile()

	receive(t, term.Submit(context.Background(), p, "", "SELECT 1", nil))
	term.Wait()
	_, failed := term.Status(p.ID).(dbclient.Failure)
	require.True(t, failed)

	term.Reset(p.ID)
	assert.Equal(t, dbclient.Idle{}, term.Status(p.ID))
}

func TestTerminal_ResetKeepsPending(t *testing.T) {
	gate := newGatedOpener()
	term := dbclient.NewTerminal(dbclient.NewDispatcher(gate.Open))
	p := testProfile()

	ch := term.Submit(context.Background(), p, "", "SELECT 1", nil)
	<-gate.entered

	term.Reset(p.ID)
	assert.Equal(t, dbclient.Pending{}, term.Status(p.ID))

	close(gate.release)
	receive(t, ch)
	term.Wait()
}
