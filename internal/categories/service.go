package categories

import (
	"context"
	"fmt"

	"github.com/angelmondragon/bakery-catalog/pkg/db"
	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/metrics"
)

// Service exposes category management operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategory(ctx context.Context, id uint) (*CategoryDTO, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error)
	PatchCategory(ctx context.Context, id uint, patch CategoryPatch) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type service struct {
	repo    *Repository
	metrics *metrics.CatalogMetrics
}

// NewService constructs a category service. m may be nil.
func NewService(repo *Repository, m *metrics.CatalogMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewCategoryDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) GetCategory(ctx context.Context, id uint) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewCategoryDTO(category)
	return &dto, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	input = input.Normalize()
	if err := input.Validate().Err(); err != nil {
		s.metrics.ObserveWrite("create_category", metrics.OutcomeInvalid)
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Category{Name: input.Name})
	if err != nil {
		s.metrics.ObserveWrite("create_category", metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	s.metrics.ObserveWrite("create_category", metrics.OutcomeOK)
	dto := NewCategoryDTO(created)
	return &dto, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*CategoryDTO, error) {
	return s.save(ctx, id, "update_category", func(CategoryInput) CategoryInput { return input })
}

func (s *service) PatchCategory(ctx context.Context, id uint, patch CategoryPatch) (*CategoryDTO, error) {
	return s.save(ctx, id, "patch_category", patch.apply)
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.metrics.ObserveWrite("delete_category", metrics.OutcomeError)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	s.metrics.ObserveWrite("delete_category", metrics.OutcomeOK)
	return nil
}

func (s *service) save(ctx context.Context, id uint, op string, change func(CategoryInput) CategoryInput) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	input := change(CategoryInput{Name: category.Name}).Normalize()
	if err := input.Validate().Err(); err != nil {
		s.metrics.ObserveWrite(op, metrics.OutcomeInvalid)
		return nil, err
	}

	category.Name = input.Name
	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		s.metrics.ObserveWrite(op, metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	s.metrics.ObserveWrite(op, metrics.OutcomeOK)
	dto := NewCategoryDTO(updated)
	return &dto, nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return category, nil
}
