package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/logging"
	"github.com/muurk/jeopardy/internal/pacing"
	"github.com/muurk/jeopardy/internal/trivia"
)

var (
	ErrSetupInProgress = errors.New("a board is already being set up")
	ErrNotReady        = errors.New("board is not ready")
	ErrNoSubscriber    = errors.New("no handler for cell")
)

// Status is the lifecycle state of the controller
type Status int

const (
	Idle Status = iota
	Loading
	Ready
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Trigger labels
const (
	LabelStart   = "Start"
	LabelRestart = "Restart"
	LabelLoading = "Loading, please wait."
)

// View is a rendering surface for the board.
type View interface {
	// SetLoading(true) disables the trigger, shows the loading indicator and
	// hides the board. SetLoading(false) reverses it.
	SetLoading(loading bool)

	// Progress reports how many categories of a setup have been fetched
	Progress(done, total int, label string)

	// RenderBoard replaces the displayed board with all-hidden cells
	RenderBoard(categories []board.Category)

	// RenderCell updates one cell
	RenderCell(at board.Coord, content string, answered bool)

	// Alert shows a blocking message to the player
	Alert(message string)
}

// Fetcher is the part of the trivia client a setup needs
type Fetcher interface {
	FetchCategoryIDs(ctx context.Context) ([]int, error)
	FetchCategory(ctx context.Context, id int) (*board.Category, error)
}

// Controller runs board setups and routes clicks to the store.
type Controller struct {
	fetcher Fetcher
	pacer   pacing.Pacer
	view    View
	store   *board.Store
	events  *Events

	mu     sync.Mutex
	status Status
}

// NewController wires a fetcher, pacer and view around an empty board
func NewController(fetcher Fetcher, pacer pacing.Pacer, view View) *Controller {
	if pacer == nil {
		pacer = pacing.NewFixed(pacing.DefaultDelay)
	}
	return &Controller{
		fetcher: fetcher,
		pacer:   pacer,
		view:    view,
		store:   board.NewStore(),
		events:  NewEvents(),
		status:  Idle,
	}
}

// Status returns the current lifecycle state
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// TriggerLabel is the text of the start/restart control
func (c *Controller) TriggerLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.status == Loading:
		return LabelLoading
	case c.store.Len() > 0:
		return LabelRestart
	default:
		return LabelStart
	}
}

// Categories returns a copy of the current board
func (c *Controller) Categories() []board.Category {
	return c.store.Categories()
}

// Start sets up a fresh board. It blocks until the setup finishes and is
// meant to run on its own goroutine. A second Start while one is running is
// rejected with ErrSetupInProgress.
//
// When any request fails the player is alerted once and the previous board,
// if any, stays as it was.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.status == Loading {
		c.mu.Unlock()
		return ErrSetupInProgress
	}
	c.status = Loading
	c.mu.Unlock()

	c.view.SetLoading(true)
	defer c.view.SetLoading(false)

	logging.Info("Board setup started")

	categories, err := Deal(ctx, c.fetcher, c.pacer, c.view.Progress)
	if err == nil {
		err = c.install(categories)
	}
	if err != nil {
		c.abort(err)
		return err
	}

	logging.Info("Board ready", zap.Strings("categories", titles(categories)))
	return nil
}

// install replaces the board, re-subscribes every cell and renders
func (c *Controller) install(categories []board.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Replace(categories); err != nil {
		return err
	}

	c.events.Clear()
	for _, at := range board.AllCoords() {
		c.events.Subscribe(at.ID(), func() error {
			_, err := c.Click(at)
			return err
		})
	}

	c.view.RenderBoard(c.store.Categories())
	c.status = Ready
	return nil
}

// abort restores the status after a failed setup and tells the player
func (c *Controller) abort(err error) {
	c.mu.Lock()
	if c.store.Len() > 0 {
		c.status = Ready
	} else {
		c.status = Idle
	}
	c.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		logging.Info("Board setup cancelled")
		return
	}

	logging.Warn("Board setup failed", zap.Error(err))
	c.view.Alert(trivia.AlertMessage(err))
}

// Click advances the clue at the coordinate by one reveal step and redraws
// the cell if it changed.
func (c *Controller) Click(at board.Coord) (board.Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != Ready {
		return board.Transition{}, ErrNotReady
	}

	tr, err := c.store.Reveal(at)
	if err != nil {
		return tr, err
	}
	if tr.Changed {
		logging.Debug("Cell revealed", zap.String("cell", at.ID()), zap.Stringer("state", tr.State))
		c.view.RenderCell(at, tr.Content, tr.Answered())
	}
	return tr, nil
}

// Dispatch routes a click on a cell id such as "2-3"
func (c *Controller) Dispatch(cellID string) error {
	return c.events.Dispatch(cellID)
}

// Deal fetches a complete board: NumCategories ids, then each category in
// turn, pausing on the pacer before every category request. progress may be
// nil.
func Deal(ctx context.Context, fetcher Fetcher, pacer pacing.Pacer, progress func(done, total int, label string)) ([]board.Category, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}

	ids, err := fetcher.FetchCategoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	total := len(ids)
	progress(0, total, "")

	categories := make([]board.Category, 0, total)
	for i, id := range ids {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}

		cat, err := fetcher.FetchCategory(ctx, id)
		pacer.Observe(trivia.IsRateLimited(err))
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("%w: category %d missing", board.ErrInvalidBoard, id)
		}

		logging.Debug("Category loaded", zap.Int("id", id), zap.String("title", cat.Title), zap.Int("loaded", i+1))
		categories = append(categories, *cat)
		progress(i+1, total, cat.Title)
	}

	if err := board.Validate(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func titles(categories []board.Category) []string {
	out := make([]string, len(categories))
	for i, cat := range categories {
		out[i] = cat.Title
	}
	return out
}
