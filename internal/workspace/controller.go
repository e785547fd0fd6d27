// Package workspace implements the active-selection controller: it tracks
// which project and model are open, keeps the cached listings consistent
// through create/rename/delete operations, and drives the sync engine that
// loads diagrams into the shared store and autosaves edits back out.
package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/prefs"
)

// ErrNoProject is returned when an operation needs a project and none is
// active or given.
var ErrNoProject = errors.New("no active project")

// ErrNotActiveProject is returned when a listing refresh names a project
// other than the active one.
var ErrNotActiveProject = errors.New("project is not active")

// API is the remote surface the controller drives.
type API interface {
	ModelAPI
	ListProjects(ctx context.Context) ([]project.Project, error)
	CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListModels(ctx context.Context, projectID string) ([]model.Summary, error)
	CreateModel(ctx context.Context, projectID string, req model.CreateRequest) (*model.Detail, error)
	DeleteModel(ctx context.Context, id string) error
}

// Config wires a Controller.
type Config struct {
	API    API
	Store  *c4.Store
	Prefs  prefs.Store
	Logger *slog.Logger
	// Debounce overrides the autosave window. Zero selects the default.
	Debounce time.Duration
}

// Controller owns the active selection and the cached listings.
//
// Public operations are serialized: each one runs to completion, including
// its remote calls and the reconciliation pass, before the next may start.
// Accessors only touch the state lock and never block on I/O.
type Controller struct {
	api    API
	store  *c4.Store
	prefs  prefs.Store
	logger *slog.Logger
	engine *Engine

	opMu sync.Mutex

	mu              sync.Mutex
	projects        []project.Project
	models          []model.Summary
	activeProjectID string
	activeModelID   string
	// listedProjectID is the project whose models the cache currently holds;
	// loadedModelID is the model the engine last loaded. Reconciliation
	// compares them against the active ids to detect changes.
	listedProjectID string
	loadedModelID   string
	loading         bool
	lastErr         error
}

// New creates a controller. Call Start to load the persisted selection and
// the initial listings.
func New(cfg Config) *Controller {
	c := &Controller{
		api:    cfg.API,
		store:  cfg.Store,
		prefs:  cfg.Prefs,
		logger: cfg.Logger,
		models: []model.Summary{},
	}
	c.engine = NewEngine(cfg.Store, cfg.API, cfg.Logger, cfg.Debounce)
	c.engine.onLoadErr = c.recordAsyncErr
	return c
}

// Start restores the persisted selection and fetches the project listing.
// The persisted ids survive only if they still exist on the server; the
// reconciliation rules replace stale ones.
func (c *Controller) Start(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	sel := c.prefs.Load()
	c.mu.Lock()
	c.activeProjectID = sel.ProjectID
	c.activeModelID = sel.ModelID
	c.mu.Unlock()

	return c.refreshProjects(ctx)
}

// Close flushes any pending save and releases the store subscription.
func (c *Controller) Close(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	err := c.engine.Flush(ctx)
	c.engine.Detach()
	return err
}

// RefreshProjects fetches the project listing and replaces the cache.
func (c *Controller) RefreshProjects(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.refreshProjects(ctx)
}

func (c *Controller) refreshProjects(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	projects, err := c.api.ListProjects(ctx)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// RefreshModels refetches the model listing. An explicit projectID must name
// the active project: the cache always mirrors the active project's models,
// so a listing for any other project would be discarded by the
// reconciliation rules anyway. With no active project the cache is cleared
// without a network call.
func (c *Controller) RefreshModels(ctx context.Context, projectID string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	c.mu.Lock()
	target := c.activeProjectID
	c.mu.Unlock()
	if projectID != "" && projectID != target {
		return c.fail(ErrNotActiveProject)
	}

	if target == "" {
		c.mu.Lock()
		c.models = []model.Summary{}
		c.listedProjectID = ""
		c.mu.Unlock()
	} else {
		summaries, err := c.api.ListModels(ctx, target)
		if err != nil {
			return c.fail(err)
		}
		c.mu.Lock()
		c.models = summaries
		c.listedProjectID = target
		c.mu.Unlock()
	}

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// SelectProject makes id the active project. An empty id clears the explicit
// choice; reconciliation then falls back to the first listed project. Any
// pending save for the previous model is flushed first.
func (c *Controller) SelectProject(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.activeProjectID == id {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before project switch failed", "error", err)
	}

	c.mu.Lock()
	c.activeProjectID = id
	c.activeModelID = ""
	c.models = []model.Summary{}
	c.listedProjectID = ""
	c.mu.Unlock()

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// SelectModel makes id the active model, flushing any pending save for the
// previous one first. An empty id falls back to the first listed model.
func (c *Controller) SelectModel(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.activeModelID == id {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before model switch failed", "error", err)
	}

	c.mu.Lock()
	c.activeModelID = id
	c.mu.Unlock()

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// CreateProject creates a project and makes it active.
func (c *Controller) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before project create failed", "error", err)
	}

	created, err := c.api.CreateProject(ctx, req)
	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	c.projects = append(c.projects, *created)
	c.activeProjectID = created.ID
	c.activeModelID = ""
	c.models = []model.Summary{}
	c.listedProjectID = ""
	c.mu.Unlock()

	if err := c.reconcile(ctx); err != nil {
		return created, c.fail(err)
	}
	return created, c.ok()
}

// UpdateProject renames a project and updates the cached entry in place.
// Selection is untouched.
func (c *Controller) UpdateProject(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	updated, err := c.api.UpdateProject(ctx, id, req)
	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	for i := range c.projects {
		if c.projects[i].ID == id {
			c.projects[i] = *updated
			break
		}
	}
	c.mu.Unlock()

	return updated, c.ok()
}

// DeleteProject deletes a project. Deleting the active project clears the
// selection and resets the store; reconciliation then falls back to the
// first remaining project, if any.
func (c *Controller) DeleteProject(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	wasActive := id == c.activeProjectID
	c.mu.Unlock()

	if wasActive {
		// The pending edits belong to a model this delete removes.
		c.engine.DropPending()
	} else if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before project delete failed", "error", err)
	}

	if err := c.api.DeleteProject(ctx, id); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.projects = removeProject(c.projects, id)
	if wasActive {
		c.activeProjectID = ""
		c.activeModelID = ""
		c.models = []model.Summary{}
		c.listedProjectID = ""
		c.loadedModelID = ""
		c.mu.Unlock()
		c.engine.Deactivate()
		c.store.Reset()
	} else {
		c.mu.Unlock()
	}

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// CreateModel creates a model inside projectID (default: active project) and
// makes it active.
func (c *Controller) CreateModel(ctx context.Context, projectID string, req model.CreateRequest) (*model.Detail, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if projectID == "" {
		projectID = c.activeProjectID
	}
	c.mu.Unlock()
	if projectID == "" {
		return nil, c.fail(ErrNoProject)
	}

	if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before model create failed", "error", err)
	}

	created, err := c.api.CreateModel(ctx, projectID, req)
	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	if projectID == c.activeProjectID && projectID == c.listedProjectID {
		c.models = append(c.models, created.Summary)
	} else {
		// Creating into another project switches to it.
		c.activeProjectID = projectID
		c.models = []model.Summary{}
		c.listedProjectID = ""
	}
	c.activeModelID = created.ID
	c.loadedModelID = created.ID
	bumpModelCount(c.projects, projectID, 1)
	c.mu.Unlock()

	// The create response already carries the diagram; adopting it directly
	// closes the gap where an edit made right after the create would race a
	// background fetch.
	c.engine.Adopt(created.ID, created.Model)

	if err := c.reconcile(ctx); err != nil {
		return created, c.fail(err)
	}
	return created, c.ok()
}

// UpdateModel renames a model or replaces its diagram and updates the cached
// summary in place. The shared store is not touched; diagram edits flow
// through it in the other direction.
func (c *Controller) UpdateModel(ctx context.Context, id string, req model.UpdateRequest) (*model.Detail, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	updated, err := c.api.UpdateModel(ctx, id, req)
	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	for i := range c.models {
		if c.models[i].ID == id {
			c.models[i] = updated.Summary
			break
		}
	}
	c.mu.Unlock()

	return updated, c.ok()
}

// DeleteModel deletes a model. Deleting the active model clears the model
// selection and resets the store; reconciliation then falls back to the
// first remaining model, if any.
func (c *Controller) DeleteModel(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	wasActive := id == c.activeModelID
	projectID := projectOfModel(c.models, id)
	c.mu.Unlock()

	if wasActive {
		c.engine.DropPending()
	} else if err := c.engine.Flush(ctx); err != nil {
		c.logger.Warn("flush before model delete failed", "error", err)
	}

	if err := c.api.DeleteModel(ctx, id); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.models = removeModel(c.models, id)
	bumpModelCount(c.projects, projectID, -1)
	if wasActive {
		c.activeModelID = ""
		c.loadedModelID = ""
		c.mu.Unlock()
		c.engine.Deactivate()
		c.store.Reset()
	} else {
		c.mu.Unlock()
	}

	if projectID == "" {
		// The summary was not in the cached listing, so the owning project's
		// modelCount cannot be adjusted locally. Resync from the server.
		return c.refreshProjects(ctx)
	}

	if err := c.reconcile(ctx); err != nil {
		return c.fail(err)
	}
	return c.ok()
}

// SaveCurrentModel immediately writes any pending debounced save.
func (c *Controller) SaveCurrentModel(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.engine.Flush(ctx)
}

// reconcile repairs the selection invariant after any cache or selection
// change. The rules run in a fixed order:
//
//  1. no projects: selection cleared, store reset
//  2. no active project: first project becomes active
//  3. active project gone from the listing: first project becomes active
//  4. active project changed: its model listing is refetched
//  5. no models: active model cleared, store reset
//  6. no active model: first model becomes active
//  7. active model gone from the listing: first model becomes active
//  8. active model changed: the engine loads it
func (c *Controller) reconcile(ctx context.Context) error {
	c.mu.Lock()
	if len(c.projects) == 0 {
		c.activeProjectID = ""
		c.activeModelID = ""
	} else if c.activeProjectID == "" {
		c.activeProjectID = c.projects[0].ID
	} else if !hasProject(c.projects, c.activeProjectID) {
		c.activeProjectID = c.projects[0].ID
	}
	projectChanged := c.activeProjectID != c.listedProjectID
	target := c.activeProjectID
	c.mu.Unlock()

	if projectChanged {
		if target == "" {
			c.mu.Lock()
			c.models = []model.Summary{}
			c.listedProjectID = ""
			c.mu.Unlock()
		} else {
			summaries, err := c.api.ListModels(ctx, target)
			if err != nil {
				// The stale cache must not leak another project's models
				// into the rules below.
				c.mu.Lock()
				c.models = []model.Summary{}
				c.listedProjectID = target
				c.mu.Unlock()
				c.finishReconcile()
				return err
			}
			c.mu.Lock()
			c.models = summaries
			c.listedProjectID = target
			c.mu.Unlock()
		}
	}

	c.finishReconcile()
	return nil
}

// finishReconcile applies the model-level rules and persists the selection.
func (c *Controller) finishReconcile() {
	c.mu.Lock()
	if len(c.models) == 0 {
		c.activeModelID = ""
	} else if c.activeModelID == "" {
		c.activeModelID = c.models[0].ID
	} else if !hasModel(c.models, c.activeModelID) {
		c.activeModelID = c.models[0].ID
	}
	modelChanged := c.activeModelID != c.loadedModelID
	modelID := c.activeModelID
	c.loadedModelID = modelID
	sel := prefs.Selection{ProjectID: c.activeProjectID, ModelID: modelID}
	c.mu.Unlock()

	if modelChanged {
		if modelID == "" {
			c.engine.Deactivate()
			c.store.Reset()
		} else {
			c.engine.Load(modelID)
		}
	}

	if err := c.prefs.Save(sel); err != nil {
		c.logger.Warn("failed to persist selection", "error", err)
	}
}

// Projects returns a copy of the cached project listing.
func (c *Controller) Projects() []project.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]project.Project(nil), c.projects...)
}

// Models returns a copy of the cached model listing.
func (c *Controller) Models() []model.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Summary(nil), c.models...)
}

// ActiveProjectID returns the active project id, or "" when none is active.
func (c *Controller) ActiveProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeProjectID
}

// ActiveModelID returns the active model id, or "" when none is active.
func (c *Controller) ActiveModelID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeModelID
}

// ActiveProject returns a copy of the active project's cached entry.
func (c *Controller) ActiveProject() *project.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.projects {
		if p.ID == c.activeProjectID {
			out := p
			return &out
		}
	}
	return nil
}

// ActiveModel returns a copy of the active model's cached summary.
func (c *Controller) ActiveModel() *model.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.models {
		if m.ID == c.activeModelID {
			out := m
			return &out
		}
	}
	return nil
}

// Loading reports whether a listing refresh is in progress.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error recorded by the most recent operation, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SaveState returns the sync engine's save status.
func (c *Controller) SaveState() SyncState {
	return c.engine.State()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *Controller) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	return err
}

func (c *Controller) ok() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
	return nil
}

func (c *Controller) recordAsyncErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

func hasProject(projects []project.Project, id string) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func hasModel(models []model.Summary, id string) bool {
	for _, m := range models {
		if m.ID == id {
			return true
		}
	}
	return false
}

func removeProject(projects []project.Project, id string) []project.Project {
	out := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func removeModel(models []model.Summary, id string) []model.Summary {
	out := models[:0]
	for _, m := range models {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

func projectOfModel(models []model.Summary, id string) string {
	for _, m := range models {
		if m.ID == id {
			return m.ProjectID
		}
	}
	return ""
}

func bumpModelCount(projects []project.Project, projectID string, delta int) {
	for i := range projects {
		if projects[i].ID == projectID {
			projects[i].ModelCount += delta
			if projects[i].ModelCount < 0 {
				projects[i].ModelCount = 0
			}
			return
		}
	}
}
