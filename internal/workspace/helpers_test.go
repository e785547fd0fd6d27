package workspace_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/prefs"
	"github.com/c4board/c4board/internal/workspace"
)

// testDebounce keeps autosave tests fast while still exercising the window.
const testDebounce = 25 * time.Millisecond

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type updateCall struct {
	id  string
	req model.UpdateRequest
}

// fakeAPI is an in-memory server double. Gates let tests hold individual
// fetches open to force a particular resolution order.
type fakeAPI struct {
	mu       sync.Mutex
	seq      int
	projects []project.Project
	models   map[string][]model.Summary
	details  map[string]model.Detail

	updates    []updateCall
	updateErr  error
	updateGate chan struct{}
	getGates   map[string]chan struct{}

	listProjectCalls int
	listModelCalls   int
}

var _ workspace.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		models:   map[string][]model.Summary{},
		details:  map[string]model.Detail{},
		getGates: map[string]chan struct{}{},
	}
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

// addProject seeds a project directly, bypassing the API surface.
func (f *fakeAPI) addProject(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("p")
	f.projects = append(f.projects, project.Project{ID: id, Name: name})
	return id
}

// addModel seeds a model with the given diagram.
func (f *fakeAPI) addModel(projectID, name string, diagram c4.Model) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("m")
	summary := model.Summary{ID: id, ProjectID: projectID, Name: name}
	f.models[projectID] = append(f.models[projectID], summary)
	f.details[id] = model.Detail{Summary: summary, Model: diagram.Normalize()}
	for i := range f.projects {
		if f.projects[i].ID == projectID {
			f.projects[i].ModelCount++
		}
	}
	return id
}

// gateGet makes GetModel(id) block until the returned function is called.
func (f *fakeAPI) gateGet(id string) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.getGates[id] = ch
	return func() { close(ch) }
}

// gateUpdates makes every UpdateModel block until the returned function is
// called.
func (f *fakeAPI) gateUpdates() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.updateGate = ch
	return func() { close(ch) }
}

func (f *fakeAPI) updateCalls() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updates...)
}

func (f *fakeAPI) setUpdateErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateErr = err
}

// calls reports how many listing fetches the fake has served.
func (f *fakeAPI) calls() (projectLists, modelLists int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listProjectCalls, f.listModelCalls
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listProjectCalls++
	return append([]project.Project(nil), f.projects...), nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := project.Project{ID: f.nextID("p"), Name: req.Name, Description: req.Description}
	f.projects = append(f.projects, created)
	return &created, nil
}

func (f *fakeAPI) UpdateProject(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Name = req.Name
			f.projects[i].Description = req.Description
			out := f.projects[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("project not found")
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			for _, summary := range f.models[id] {
				delete(f.details, summary.ID)
			}
			delete(f.models, id)
			return nil
		}
	}
	return fmt.Errorf("project not found")
}

func (f *fakeAPI) ListModels(ctx context.Context, projectID string) ([]model.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listModelCalls++
	return append([]model.Summary(nil), f.models[projectID]...), nil
}

func (f *fakeAPI) CreateModel(ctx context.Context, projectID string, req model.CreateRequest) (*model.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	diagram := c4.Empty()
	if req.Model != nil {
		diagram = req.Model.Normalize()
	}
	summary := model.Summary{ID: f.nextID("m"), ProjectID: projectID, Name: req.Name, Description: req.Description}
	detail := model.Detail{Summary: summary, Model: diagram}
	f.models[projectID] = append(f.models[projectID], summary)
	f.details[summary.ID] = detail
	for i := range f.projects {
		if f.projects[i].ID == projectID {
			f.projects[i].ModelCount++
		}
	}
	return &detail, nil
}

func (f *fakeAPI) GetModel(ctx context.Context, id string) (*model.Detail, error) {
	f.mu.Lock()
	gate := f.getGates[id]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	detail, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("model not found")
	}
	out := detail
	out.Model = detail.Model.Clone()
	return &out, nil
}

func (f *fakeAPI) UpdateModel(ctx context.Context, id string, req model.UpdateRequest) (*model.Detail, error) {
	f.mu.Lock()
	gate := f.updateGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	detail, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("model not found")
	}
	if req.Name != nil {
		detail.Name = *req.Name
	}
	if req.Description != nil {
		detail.Description = req.Description
	}
	if req.Model != nil {
		detail.Model = req.Model.Normalize().Clone()
	}
	f.details[id] = detail
	for i, summary := range f.models[detail.ProjectID] {
		if summary.ID == id {
			f.models[detail.ProjectID][i] = detail.Summary
		}
	}
	f.updates = append(f.updates, updateCall{id: id, req: req})
	out := detail
	out.Model = detail.Model.Clone()
	return &out, nil
}

func (f *fakeAPI) DeleteModel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	detail, ok := f.details[id]
	if !ok {
		return fmt.Errorf("model not found")
	}
	delete(f.details, id)
	summaries := f.models[detail.ProjectID]
	for i := range summaries {
		if summaries[i].ID == id {
			f.models[detail.ProjectID] = append(summaries[:i], summaries[i+1:]...)
			break
		}
	}
	for i := range f.projects {
		if f.projects[i].ID == detail.ProjectID && f.projects[i].ModelCount > 0 {
			f.projects[i].ModelCount--
		}
	}
	return nil
}

// fixture builds a started controller over the fake with a short debounce.
type fixture struct {
	api   *fakeAPI
	store *c4.Store
	prefs *prefs.MemStore
	ctrl  *workspace.Controller
}

func newFixture(t *testing.T, api *fakeAPI) *fixture {
	t.Helper()
	f := &fixture{
		api:   api,
		store: c4.NewStore(),
		prefs: prefs.NewMemStore(),
	}
	f.ctrl = workspace.New(workspace.Config{
		API:      api,
		Store:    f.store,
		Prefs:    f.prefs,
		Logger:   discardLogger(),
		Debounce: testDebounce,
	})
	t.Cleanup(func() {
		_ = f.ctrl.Close(context.Background())
	})
	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	require.NoError(t, f.ctrl.Start(context.Background()))
}

// waitForStore polls until the store content satisfies cond.
func waitForStore(t *testing.T, store *c4.Store, cond func(c4.Model) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cond(store.Current())
	}, 2*time.Second, 5*time.Millisecond)
}

// waitForUpdates polls until the fake has seen n model writes.
func waitForUpdates(t *testing.T, api *fakeAPI, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(api.updateCalls()) == n
	}, 2*time.Second, 5*time.Millisecond)
}

// systemNamed builds a one-system diagram for seeding and edits.
func systemNamed(name string) c4.Model {
	m := c4.Empty()
	m.Systems = append(m.Systems, c4.SystemBlock{ID: "sys-" + name, Name: name})
	return m
}

func hasSystem(m c4.Model, name string) bool {
	for _, s := range m.Systems {
		if s.Name == name {
			return true
		}
	}
	return false
}
