package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) CreateBatch(ctx context.Context, projects []model.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateFields(ctx context.Context, id int, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ProjectRepository) error) error {
	return fn(ctx, m)
}

func setupProjectRepo(t *testing.T) repository.ProjectRepository {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "projects.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(&model.Project{}))
	return repository.NewProjectRepository(gormDB)
}

func setupCache(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func strPtr(s string) *string { return &s }

func TestProjectService_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(setupProjectRepo(t), nil, 0)

	inserted, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(model.StarterProjects()), inserted)

	inserted, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StarterProjects(), projects)
}

func TestProjectService_Update_MergesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(setupProjectRepo(t), nil, 0)
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, 1, &model.ProjectPatch{Title: strPtr("X")}))

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	want := model.StarterProjects()
	want[0].Title = "X"
	assert.Equal(t, want, projects)
}

func TestProjectService_Update_ImagesRefreshCover(t *testing.T) {
	ctx := context.Background()
	repo := setupProjectRepo(t)
	svc := NewProjectService(repo, nil, 0)
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	images := []string{"https://img/new-cover", "https://img/second"}
	require.NoError(t, svc.Update(ctx, 2, &model.ProjectPatch{Images: &images}))

	got, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://img/new-cover", got.Image)
	assert.Equal(t, images, []string(got.Images))
}

func TestProjectService_Update_UnknownIDIsSilent(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(setupProjectRepo(t), nil, 0)
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, 404, &model.ProjectPatch{Title: strPtr("ghost")}))

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StarterProjects(), projects)
}

func TestProjectService_Update_ConcurrentDisjointFields(t *testing.T) {
	ctx := context.Background()
	repo := setupProjectRepo(t)
	svc := NewProjectService(repo, nil, 0)
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	details := []string{"Drone Work"}
	patches := []*model.ProjectPatch{
		{Title: strPtr("Highlands")},
		{Details: &details, Year: strPtr("2025")},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(patches))
	for i, p := range patches {
		wg.Add(1)
		go func(i int, p *model.ProjectPatch) {
			defer wg.Done()
			errs[i] = svc.Update(ctx, 3, p)
		}(i, p)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Highlands", got.Title)
	assert.Equal(t, "2025", got.Year)
	assert.Equal(t, details, []string(got.Details))
}

func TestProjectService_Update_EmptyPatchSkipsStore(t *testing.T) {
	repo := new(MockProjectRepository)
	svc := NewProjectService(repo, nil, 0)

	assert.NoError(t, svc.Update(context.Background(), 1, &model.ProjectPatch{}))
	assert.NoError(t, svc.Update(context.Background(), 1, nil))
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	repo := new(MockProjectRepository)
	repo.On("List", mock.Anything).Return(nil, dbErr)
	repo.On("UpdateFields", mock.Anything, 1, mock.Anything).Return(int64(0), dbErr)
	repo.On("Count", mock.Anything).Return(int64(0), dbErr)
	svc := NewProjectService(repo, nil, 0)

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	err = svc.Update(ctx, 1, &model.ProjectPatch{Title: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	_, err = svc.SeedIfEmpty(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestProjectService_SeedSkipsNonEmpty(t *testing.T) {
	repo := new(MockProjectRepository)
	repo.On("Count", mock.Anything).Return(int64(7), nil)
	svc := NewProjectService(repo, nil, 0)

	inserted, err := svc.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserted)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestProjectService_ListIsCachedAndUpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	starter := model.StarterProjects()
	repo := new(MockProjectRepository)
	repo.On("List", mock.Anything).Return(starter, nil).Once()
	repo.On("UpdateFields", mock.Anything, 1, map[string]interface{}{"title": "X"}).Return(int64(1), nil).Once()
	svc := NewProjectService(repo, c, time.Minute)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(projectsCacheKey+":0"))
	repo.AssertNumberOfCalls(t, "List", 1)

	require.NoError(t, svc.Update(ctx, 1, &model.ProjectPatch{Title: strPtr("X")}))
	version, err := mr.Get(projectsVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	updated := model.StarterProjects()
	updated[0].Title = "X"
	repo.On("List", mock.Anything).Return(updated, nil).Once()

	third, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X", third[0].Title)
	assert.True(t, mr.Exists(projectsCacheKey+":1"))
	repo.AssertExpectations(t)
}

// pausingRepository holds the first List call after the store read until
// release is closed.
type pausingRepository struct {
	repository.ProjectRepository
	read    chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *pausingRepository) List(ctx context.Context) ([]model.Project, error) {
	projects, err := r.ProjectRepository.List(ctx)
	r.once.Do(func() {
		close(r.read)
		<-r.release
	})
	return projects, err
}

func TestProjectService_ListReadBeforeUpdateIsNotServedAfterIt(t *testing.T) {
	ctx := context.Background()
	base := setupProjectRepo(t)
	_, err := NewProjectService(base, nil, 0).SeedIfEmpty(ctx)
	require.NoError(t, err)

	repo := &pausingRepository{
		ProjectRepository: base,
		read:              make(chan struct{}),
		release:           make(chan struct{}),
	}
	c, _ := setupCache(t)
	svc := NewProjectService(repo, c, time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := svc.List(ctx)
		done <- err
	}()

	<-repo.read
	require.NoError(t, svc.Update(ctx, 1, &model.ProjectPatch{Title: strPtr("Updated")}))
	close(repo.release)
	require.NoError(t, <-done)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Updated", projects[0].Title)
}

func TestProjectService_UpdateFallsBackToDeleteWhenVersionFails(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	repo := new(MockProjectRepository)
	repo.On("UpdateFields", mock.Anything, 1, mock.Anything).Return(int64(1), nil)
	svc := NewProjectService(repo, c, time.Minute)

	require.NoError(t, mr.Set(projectsVersionKey, "not-a-number"))
	require.NoError(t, mr.Set(projectsCacheKey+":not-a-number", "[]"))
	require.NoError(t, svc.Update(ctx, 1, &model.ProjectPatch{Title: strPtr("X")}))

	assert.False(t, mr.Exists(projectsCacheKey+":not-a-number"))
}

func TestProjectService_UpdateNoRowsChecksExistence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		findErr error
	}{
		{name: "unknown id", findErr: gorm.ErrRecordNotFound},
		{name: "unchanged values", findErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProjectRepository)
			repo.On("UpdateFields", mock.Anything, 9, mock.Anything).Return(int64(0), nil)
			if tt.findErr != nil {
				repo.On("FindByID", mock.Anything, 9).Return(nil, tt.findErr)
			} else {
				repo.On("FindByID", mock.Anything, 9).Return(&model.Project{ID: 9}, nil)
			}
			svc := NewProjectService(repo, nil, 0)

			assert.NoError(t, svc.Update(ctx, 9, &model.ProjectPatch{Title: strPtr("same")}))
			repo.AssertExpectations(t)
		})
	}
}
