package repository

import (
	"context"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int) (*model.Project, error)
	CreateBatch(ctx context.Context, projects []model.Project) error
	// UpdateFields overwrites only the given columns of the project with the
	// given id. A missing id is not an error; it reports zero rows affected.
	UpdateFields(ctx context.Context, id int, fields map[string]interface{}) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new GORM-backed project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// List returns every project ordered by id.
func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	projects := make([]model.Project, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds a project by id.
func (r *projectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) CreateBatch(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&projects).Error
}

func (r *projectRepository) UpdateFields(ctx context.Context, id int, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// WithTransaction executes a function within a database transaction.
func (r *projectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &projectRepository{db: tx})
	})
}
