package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/model"
)

// DefaultDebounce is how long the engine waits after the last edit before
// writing the model back to the server.
const DefaultDebounce = 600 * time.Millisecond

// SaveStatus reflects the most recent debounced write.
type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveError  SaveStatus = "error"
)

// SyncState is a snapshot of the engine's save status.
type SyncState struct {
	Status      SaveStatus
	LastSavedAt time.Time
	Err         string
}

// ModelAPI is the remote surface the engine needs.
type ModelAPI interface {
	GetModel(ctx context.Context, id string) (*model.Detail, error)
	UpdateModel(ctx context.Context, id string, req model.UpdateRequest) (*model.Detail, error)
}

// Engine bridges the diagram store and the remote model endpoint. It loads a
// model's diagram into the store and turns bursts of local edits into a
// single debounced write.
//
// Loads go through the store's silent hydrate path, so they never re-enter
// the engine as edits. Concurrent loads are ordered by a monotonic token and
// only the most recently issued one may touch the store.
type Engine struct {
	store     *c4.Store
	api       ModelAPI
	logger    *slog.Logger
	debounce  time.Duration
	onLoadErr func(error)

	mu          sync.Mutex
	activeID    string
	hydrated    bool
	loadSeq     int64
	timer       *time.Timer
	pending     bool
	running     bool
	saveDone    chan struct{}
	status      SaveStatus
	saveErr     string
	lastSavedAt time.Time
	unsubscribe func()
}

// NewEngine creates an engine subscribed to the store's edit notifications.
// A debounce of zero selects the default window.
func NewEngine(store *c4.Store, api ModelAPI, logger *slog.Logger, debounce time.Duration) *Engine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	e := &Engine{
		store:    store,
		api:      api,
		logger:   logger,
		debounce: debounce,
		status:   SaveIdle,
	}
	e.unsubscribe = store.Subscribe(e.storeChanged)
	return e
}

// Load makes id the engine's active model and fetches its diagram into the
// store. The fetch runs in the background; a Load issued later supersedes
// this one even if this one resolves last. Edits made before the diagram
// arrives are ignored, since the store still shows the previous model.
func (e *Engine) Load(id string) {
	e.mu.Lock()
	e.loadSeq++
	token := e.loadSeq
	e.activeID = id
	e.hydrated = false
	e.pending = false
	e.stopTimerLocked()
	e.mu.Unlock()

	go e.load(token, id)
}

func (e *Engine) load(token int64, id string) {
	detail, err := e.api.GetModel(context.Background(), id)

	e.mu.Lock()
	if token != e.loadSeq {
		e.mu.Unlock()
		e.logger.Debug("discarding superseded model load", "modelId", id)
		return
	}
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("failed to load model", "modelId", id, "error", err)
		if e.onLoadErr != nil {
			e.onLoadErr(err)
		}
		return
	}
	e.store.Hydrate(detail.Model)
	e.hydrated = true
	e.mu.Unlock()

	e.logger.Debug("model loaded", "modelId", id)
}

// Adopt makes id the active model and hydrates the store from a diagram
// already in hand, skipping the fetch. Unlike Load there is no window in
// which edits are ignored: by the time Adopt returns, the store shows id's
// content and every subsequent edit is tracked. Any in-flight load is
// superseded.
func (e *Engine) Adopt(id string, diagram c4.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadSeq++
	e.activeID = id
	e.pending = false
	e.stopTimerLocked()
	e.store.Hydrate(diagram)
	e.hydrated = true
}

// Deactivate detaches the engine from its current model. Any in-flight load
// is superseded and any pending save is dropped.
func (e *Engine) Deactivate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadSeq++
	e.activeID = ""
	e.hydrated = false
	e.pending = false
	e.stopTimerLocked()
}

// storeChanged runs on every edit notification from the store.
func (e *Engine) storeChanged(c4.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeID == "" || !e.hydrated {
		return
	}
	e.pending = true
	if e.timer == nil {
		e.timer = time.AfterFunc(e.debounce, e.onTimer)
		return
	}
	e.timer.Reset(e.debounce)
}

func (e *Engine) onTimer() {
	e.mu.Lock()
	if e.running {
		// A write is in flight; come back for the pending edits after it.
		if e.timer != nil {
			e.timer.Reset(e.debounce)
		}
		e.mu.Unlock()
		return
	}
	if !e.pending || e.activeID == "" {
		e.mu.Unlock()
		return
	}
	id := e.beginRunLocked()
	e.mu.Unlock()

	snapshot := e.store.Current()
	if err := e.write(context.Background(), id, snapshot); err != nil {
		e.logger.Error("debounced save failed", "modelId", id, "error", err)
	}
	e.finishRun()
}

// Flush cancels any pending timer and writes the pending snapshot now,
// returning once the write completes. With nothing pending it still waits
// out any write already in flight, so it doubles as a barrier.
func (e *Engine) Flush(ctx context.Context) error {
	for {
		e.mu.Lock()
		e.stopTimerLocked()
		if e.running {
			done := e.saveDone
			e.mu.Unlock()
			select {
			case <-done:
				// Re-check: the finished write may have left new edits pending.
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if !e.pending || e.activeID == "" {
			e.pending = false
			e.mu.Unlock()
			return nil
		}
		id := e.beginRunLocked()
		e.mu.Unlock()

		snapshot := e.store.Current()
		err := e.write(ctx, id, snapshot)
		e.finishRun()
		return err
	}
}

// DropPending cancels any pending save without writing it. Used when the
// model owning the edits is about to be deleted.
func (e *Engine) DropPending() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = false
	e.stopTimerLocked()
}

// Detach unsubscribes from the store and stops the timer. The engine must
// not be used afterwards.
func (e *Engine) Detach() {
	e.mu.Lock()
	e.pending = false
	e.activeID = ""
	e.loadSeq++
	e.stopTimerLocked()
	unsub := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// State returns a snapshot of the save status.
func (e *Engine) State() SyncState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return SyncState{
		Status:      e.status,
		LastSavedAt: e.lastSavedAt,
		Err:         e.saveErr,
	}
}

// beginRunLocked claims the pending snapshot for a write. Callers hold e.mu.
func (e *Engine) beginRunLocked() string {
	e.pending = false
	e.running = true
	e.saveDone = make(chan struct{})
	e.status = SaveSaving
	return e.activeID
}

func (e *Engine) finishRun() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	close(e.saveDone)
	if e.pending && e.timer != nil {
		e.timer.Reset(e.debounce)
	}
}

func (e *Engine) write(ctx context.Context, id string, snapshot c4.Model) error {
	_, err := e.api.UpdateModel(ctx, id, model.UpdateRequest{Model: &snapshot})

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.status = SaveError
		e.saveErr = err.Error()
		return err
	}
	e.status = SaveIdle
	e.saveErr = ""
	e.lastSavedAt = time.Now().UTC()
	return nil
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
}
