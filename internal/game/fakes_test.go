package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/trivia"
)

// fakeFetcher serves numbered categories and can fail on a chosen id
type fakeFetcher struct {
	mu       sync.Mutex
	ids      []int
	idsErr   error
	failID   int
	failErr  error
	requests []int
	block    chan struct{}
}

func newFakeFetcher(ids ...int) *fakeFetcher {
	return &fakeFetcher{ids: ids}
}

func (f *fakeFetcher) FetchCategoryIDs(ctx context.Context) ([]int, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	return f.ids, nil
}

func (f *fakeFetcher) FetchCategory(ctx context.Context, id int) (*board.Category, error) {
	f.mu.Lock()
	f.requests = append(f.requests, id)
	f.mu.Unlock()

	if id == f.failID && f.failErr != nil {
		return nil, f.failErr
	}
	cat := &board.Category{Title: fmt.Sprintf("Category %d", id)}
	for k := 0; k < board.NumClues; k++ {
		cat.Clues = append(cat.Clues, board.NewClue(fmt.Sprintf("Q%d-%d", id, k), fmt.Sprintf("A%d-%d", id, k)))
	}
	return cat, nil
}

// recordingView keeps a Grid plus a log of every call
type recordingView struct {
	*board.Grid

	mu        sync.Mutex
	loading   []bool
	progress  []int
	alerts    []string
	boards    int
	cellCalls int
}

func newRecordingView() *recordingView {
	return &recordingView{Grid: board.NewGrid()}
}

func (v *recordingView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *recordingView) Progress(done, total int, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, done)
}

func (v *recordingView) RenderBoard(categories []board.Category) {
	v.mu.Lock()
	v.boards++
	v.mu.Unlock()
	v.Grid.RenderBoard(categories)
}

func (v *recordingView) RenderCell(at board.Coord, content string, answered bool) {
	v.mu.Lock()
	v.cellCalls++
	v.mu.Unlock()
	v.Grid.RenderCell(at, content, answered)
}

func (v *recordingView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *recordingView) Alerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.alerts...)
}

// countingPacer never sleeps
type countingPacer struct {
	mu        sync.Mutex
	waits     int
	throttled []bool
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return ctx.Err()
}

func (p *countingPacer) Observe(throttled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.throttled = append(p.throttled, throttled)
}

var rateLimited = trivia.NewHTTPError(429, "unexpected status code: 429")
