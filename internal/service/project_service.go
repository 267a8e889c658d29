package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const (
	projectsCacheKey   = "projects:all"
	projectsVersionKey = "projects:version"
)

// ProjectService is the gateway over the project collection.
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id int, patch *model.ProjectPatch) error
	SeedIfEmpty(ctx context.Context) (int, error)
}

type projectService struct {
	repo     repository.ProjectRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewProjectService creates a new project service. A nil cache or a zero
// cacheTTL reads straight from the repository.
func NewProjectService(repo repository.ProjectRepository, cache *cache.Client, cacheTTL time.Duration) ProjectService {
	return &projectService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// listCacheKey names the cached list for the current collection version.
// Writers bump the version, so a snapshot read before a write is stored
// under a key no later reader looks up.
func (s *projectService) listCacheKey(ctx context.Context) string {
	version := "0"
	if data, _ := s.cache.Get(ctx, projectsVersionKey); data != nil {
		version = string(data)
	}
	return projectsCacheKey + ":" + version
}

// invalidate retires every cached list. If the version cannot be bumped the
// current entry is dropped instead.
func (s *projectService) invalidate(ctx context.Context) {
	if s.cacheTTL <= 0 {
		return
	}
	if _, err := s.cache.Incr(ctx, projectsVersionKey); err != nil {
		_ = s.cache.Delete(ctx, s.listCacheKey(ctx))
	}
}

// List returns the whole collection, served from cache when possible.
func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	var key string
	if s.cacheTTL > 0 {
		key = s.listCacheKey(ctx)
		if data, _ := s.cache.Get(ctx, key); data != nil {
			var cached []model.Project
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", apperrors.ErrStorage, err)
	}

	if s.cacheTTL > 0 {
		if payload, err := json.Marshal(projects); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.cacheTTL)
		}
	}
	return projects, nil
}

// Update merges the fields present in patch into the stored project.
// Updating an id that does not exist succeeds without effect.
func (s *projectService) Update(ctx context.Context, id int, patch *model.ProjectPatch) error {
	if patch == nil || patch.Empty() {
		return nil
	}

	affected, err := s.repo.UpdateFields(ctx, id, patch.Fields())
	if err != nil {
		return fmt.Errorf("%w: update project %d: %v", apperrors.ErrStorage, id, err)
	}
	if affected == 0 {
		// Stores that count only changed rows report zero for a no-op write.
		if _, err := s.repo.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("update project %d matched no record", id)
		}
	}

	s.invalidate(ctx)
	return nil
}

// SeedIfEmpty inserts the starter projects when the collection has none and
// returns how many were inserted. It is a no-op on a non-empty collection.
func (s *projectService) SeedIfEmpty(ctx context.Context) (int, error) {
	inserted := 0
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProjectRepository) error {
		count, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		if count > 0 {
			return nil
		}

		starter := model.StarterProjects()
		if err := repo.CreateBatch(ctx, starter); err != nil {
			return fmt.Errorf("insert starter projects: %w", err)
		}
		inserted = len(starter)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: seed projects: %v", apperrors.ErrStorage, err)
	}

	if inserted > 0 {
		s.invalidate(ctx)
	}
	return inserted, nil
}
