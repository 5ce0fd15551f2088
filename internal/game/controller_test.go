package game

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/jeopardy/internal/board"
)

func newTestController(f *fakeFetcher) (*Controller, *recordingView, *countingPacer) {
	view := newRecordingView()
	pacer := &countingPacer{}
	return NewController(f, pacer, view), view, pacer
}

func TestStartRendersFullBoard(t *testing.T) {
	// Given an API returning six categories of five clues
	c, view, pacer := newTestController(newFakeFetcher(10, 20, 30, 40, 50, 60))
	require.Equal(t, Idle, c.Status())
	require.Equal(t, LabelStart, c.TriggerLabel())

	// When the player presses start
	require.NoError(t, c.Start(context.Background()))

	// Then six headers and thirty hidden cells are shown
	snap := view.Snapshot()
	require.Len(t, snap.Headers, 6)
	assert.Equal(t, "Category 10", snap.Headers[0])
	require.Len(t, snap.Rows, 5)
	for _, row := range snap.Rows {
		require.Len(t, row, 6)
		for _, cell := range row {
			assert.Equal(t, "?", cell.Content)
		}
	}

	assert.Equal(t, Ready, c.Status())
	assert.Equal(t, LabelRestart, c.TriggerLabel())
	assert.Equal(t, []bool{true, false}, view.loading)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, view.progress)
	assert.Equal(t, 6, pacer.waits)
	assert.Empty(t, view.Alerts())
}

func TestClickCyclesCell(t *testing.T) {
	// Given a ready board
	c, view, _ := newTestController(newFakeFetcher(10, 20, 30, 40, 50, 60))
	require.NoError(t, c.Start(context.Background()))
	at := board.Coord{Category: 2, Clue: 3}

	// When cell 2-3 is clicked once
	require.NoError(t, c.Dispatch("2-3"))

	// Then it shows the question of category 30
	cell, _ := view.Snapshot().Cell(at)
	assert.Equal(t, "Q30-3", cell.Content)
	assert.False(t, cell.Answered)

	// When it is clicked again
	tr, err := c.Click(at)
	require.NoError(t, err)

	// Then it shows the answer with the answered treatment
	assert.Equal(t, board.Answer, tr.State)
	cell, _ = view.Snapshot().Cell(at)
	assert.Equal(t, "A30-3", cell.Content)
	assert.True(t, cell.Answered)
	assert.Equal(t, 2, view.cellCalls)
}

func TestClickOnAnsweredCellIsNoop(t *testing.T) {
	c, view, _ := newTestController(newFakeFetcher(10, 20, 30, 40, 50, 60))
	require.NoError(t, c.Start(context.Background()))

	for i := 0; i < 2; i++ {
		require.NoError(t, c.Dispatch("0-0"))
	}
	before := view.Snapshot()

	// a third and fourth click change nothing and render nothing
	require.NoError(t, c.Dispatch("0-0"))
	require.NoError(t, c.Dispatch("0-0"))

	assert.Equal(t, before, view.Snapshot())
	assert.Equal(t, 2, view.cellCalls)
}

func TestClickBeforeStart(t *testing.T) {
	c, _, _ := newTestController(newFakeFetcher(10, 20, 30, 40, 50, 60))

	_, err := c.Click(board.Coord{})
	assert.ErrorIs(t, err, ErrNotReady)

	assert.ErrorIs(t, c.Dispatch("0-0"), ErrNoSubscriber)
}

func TestDispatchUnknownCell(t *testing.T) {
	c, _, _ := newTestController(newFakeFetcher(10, 20, 30, 40, 50, 60))
	require.NoError(t, c.Start(context.Background()))

	assert.ErrorIs(t, c.Dispatch("9-9"), ErrNoSubscriber)
}

func TestCategoryFailureAlertsOnce(t *testing.T) {
	// Given the third category fetch is rate limited
	f := newFakeFetcher(10, 20, 30, 40, 50, 60)
	f.failID = 30
	f.failErr = rateLimited
	c, view, pacer := newTestController(f)

	// When the board is set up
	err := c.Start(context.Background())

	// Then exactly one alert is shown and no board is rendered
	require.Error(t, err)
	alerts := view.Alerts()
	require.Len(t, alerts, 1)
	assert.True(t, strings.HasSuffix(alerts[0], "Too many requests. Please wait a minute and try again"))
	assert.Equal(t, 0, view.boards)
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, LabelStart, c.TriggerLabel())
	assert.Equal(t, []bool{true, false}, view.loading)

	// and the fetch stopped at the failing category
	assert.Equal(t, []int{10, 20, 30}, f.requests)
	assert.Equal(t, []bool{false, false, true}, pacer.throttled)
}

func TestFailedRestartKeepsPreviousBoard(t *testing.T) {
	// Given a ready board with one cell showing its question
	f := newFakeFetcher(10, 20, 30, 40, 50, 60)
	c, view, _ := newTestController(f)
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Dispatch("1-1"))

	// When a restart fails
	f.failID = 40
	f.failErr = rateLimited
	require.Error(t, c.Start(context.Background()))

	// Then the old board is still there and playable
	assert.Equal(t, Ready, c.Status())
	assert.Len(t, view.Alerts(), 1)
	assert.Equal(t, 1, view.boards)

	cats := c.Categories()
	require.Len(t, cats, 6)
	assert.Equal(t, board.Question, cats[1].Clues[1].State)

	require.NoError(t, c.Dispatch("1-1"))
	cell, _ := view.Snapshot().Cell(board.Coord{Category: 1, Clue: 1})
	assert.True(t, cell.Answered)
}

func TestIDFailureAlerts(t *testing.T) {
	f := newFakeFetcher()
	f.idsErr = rateLimited
	c, view, pacer := newTestController(f)

	require.Error(t, c.Start(context.Background()))
	assert.Len(t, view.Alerts(), 1)
	assert.Equal(t, 0, pacer.waits)
}

func TestShortIDListRejected(t *testing.T) {
	c, view, _ := newTestController(newFakeFetcher(10, 20, 30))

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, board.ErrInvalidBoard)
	assert.Len(t, view.Alerts(), 1)
	assert.Equal(t, Idle, c.Status())
}

func TestRestartReplacesBoard(t *testing.T) {
	f := newFakeFetcher(10, 20, 30, 40, 50, 60)
	c, view, _ := newTestController(f)
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Dispatch("0-0"))

	f.ids = []int{1, 2, 3, 4, 5, 6}
	require.NoError(t, c.Start(context.Background()))

	snap := view.Snapshot()
	assert.Equal(t, "Category 1", snap.Headers[0])
	cell, _ := snap.Cell(board.Coord{})
	assert.Equal(t, "?", cell.Content)
	assert.Equal(t, board.Hidden, c.Categories()[0].Clues[0].State)
}

func TestSecondStartRejectedWhileLoading(t *testing.T) {
	// Given a setup blocked on the id request
	f := newFakeFetcher(10, 20, 30, 40, 50, 60)
	f.block = make(chan struct{})
	c, _, _ := newTestController(f)

	done := make(chan error, 1)
	go func() { done <- c.Start(context.Background()) }()
	require.Eventually(t, func() bool { return c.Status() == Loading }, time.Second, time.Millisecond)
	assert.Equal(t, LabelLoading, c.TriggerLabel())

	// When start is pressed again
	err := c.Start(context.Background())

	// Then it is rejected and the first setup completes normally
	assert.ErrorIs(t, err, ErrSetupInProgress)
	_, err = c.Click(board.Coord{})
	assert.ErrorIs(t, err, ErrNotReady)

	close(f.block)
	require.NoError(t, <-done)
	assert.Equal(t, Ready, c.Status())
}

func TestCancelledSetupDoesNotAlert(t *testing.T) {
	f := newFakeFetcher(10, 20, 30, 40, 50, 60)
	f.block = make(chan struct{})
	c, view, _ := newTestController(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, view.Alerts())
	assert.Equal(t, Idle, c.Status())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
}
