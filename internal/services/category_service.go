package services

import (
	"context"

	"storeadmin/internal/domain"
)

type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) error
	UpdateCategory(ctx context.Context, id int, in domain.CategoryInput) error
	DeleteCategory(ctx context.Context, id int) error
}

type CategoryService struct {
	API  CategoryAPI
	Sync *Synchronizer[domain.Category]
}

func NewCategoryService(api CategoryAPI) *CategoryService {
	return &CategoryService{API: api, Sync: NewSynchronizer("categories", api.ListCategories)}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	err := s.Sync.Load(ctx)
	return s.Sync.Snapshot(), err
}

// Get fetches one category with its sub-categories; it bypasses the store.
func (s *CategoryService) Get(ctx context.Context, id int) (domain.Category, error) {
	return s.API.GetCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in domain.CategoryInput) error {
	return s.Sync.Write(ctx, "category.create", func(ctx context.Context) error {
		return s.API.CreateCategory(ctx, in)
	})
}

func (s *CategoryService) Update(ctx context.Context, id int, in domain.CategoryInput) error {
	return s.Sync.Write(ctx, "category.update", func(ctx context.Context) error {
		return s.API.UpdateCategory(ctx, id, in)
	})
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	return s.Sync.Write(ctx, "category.delete", func(ctx context.Context) error {
		return s.API.DeleteCategory(ctx, id)
	})
}
