package projects

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/shared"
	"github.com/proven-platform/proven/jobs"
)

type mockRepo struct {
	projects map[string]*Project
	deleted  []string
	err      error
}

func newMockRepo() *mockRepo {
	return &mockRepo{projects: map[string]*Project{}}
}

func (m *mockRepo) ListProjects(ctx context.Context) ([]Project, error) {
	out := make([]Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepo) GetProject(ctx context.Context, id string) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) CreateProject(ctx context.Context, p *Project) error {
	if m.err != nil {
		return m.err
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockRepo) UpdateProject(ctx context.Context, p *Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return shared.ErrNotFound
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockRepo) DeleteProject(ctx context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.projects, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestService(repo *mockRepo, enqueuer *mockEnqueuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, enqueuer, nil, logger)
}

func TestCreateProjectStampsOwnerAndDefaults(t *testing.T) {
	repo := newMockRepo()
	enqueuer := &mockEnqueuer{}
	svc := newTestService(repo, enqueuer)

	p := &Project{Title: "  Harbour Upgrade  "}
	require.NoError(t, svc.CreateProject(context.Background(), "u-1", p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "u-1", p.OwnerID)
	assert.Equal(t, "Harbour Upgrade", p.Title)
	assert.Equal(t, StatusPlanning, p.Status)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, jobs.TaskTypeNotificationFanout, enqueuer.tasks[0].Type())
}

func TestCreateProjectSurvivesEnqueueFailure(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockEnqueuer{err: errors.New("redis down")})

	p := &Project{Title: "Harbour Upgrade"}
	require.NoError(t, svc.CreateProject(context.Background(), "u-1", p))
	assert.Len(t, repo.projects, 1)
}

func TestCreateProjectPropagatesRepoFailure(t *testing.T) {
	repo := newMockRepo()
	repo.err = errors.New("insert failed")
	enqueuer := &mockEnqueuer{}
	svc := newTestService(repo, enqueuer)

	err := svc.CreateProject(context.Background(), "u-1", &Project{Title: "Harbour Upgrade"})
	require.Error(t, err)
	assert.Empty(t, enqueuer.tasks)
}

func TestUpdateProjectMissing(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockEnqueuer{})
	err := svc.UpdateProject(context.Background(), "u-1", &Project{ID: "nope", Title: "X"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockEnqueuer{})

	p := &Project{Title: "Harbour Upgrade"}
	require.NoError(t, svc.CreateProject(context.Background(), "u-1", p))
	require.NoError(t, svc.DeleteProject(context.Background(), "u-1", p.ID))
	assert.Equal(t, []string{p.ID}, repo.deleted)
}
