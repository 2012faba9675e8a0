package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storeadmin/internal/domain"
	applog "storeadmin/internal/log"
)

type SubCategoryAPI interface {
	ListSubCategories(ctx context.Context) ([]domain.SubCategory, error)
	ListSubCategoriesByCategory(ctx context.Context, categoryID int) ([]domain.SubCategory, error)
	GetSubCategory(ctx context.Context, id int) (domain.SubCategory, error)
	CreateSubCategory(ctx context.Context, in domain.SubCategoryInput) error
	UpdateSubCategory(ctx context.Context, id int, name string) error
	DeleteSubCategory(ctx context.Context, id int) error
}

// SubCategoryService keeps the full list plus one store per category.
// Writes reload the owning category's store, then the full list if it
// has been loaded before.
type SubCategoryService struct {
	API SubCategoryAPI
	All *Synchronizer[domain.SubCategory]

	mu         sync.Mutex
	byCategory map[int]*Synchronizer[domain.SubCategory]
}

func NewSubCategoryService(api SubCategoryAPI) *SubCategoryService {
	return &SubCategoryService{
		API:        api,
		All:        NewSynchronizer("subcategories", api.ListSubCategories),
		byCategory: map[int]*Synchronizer[domain.SubCategory]{},
	}
}

// ForCategory returns the synchronizer of one category's sub-categories.
func (s *SubCategoryService) ForCategory(categoryID int) *Synchronizer[domain.SubCategory] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.byCategory[categoryID]
	if !ok {
		sc = NewSynchronizer(fmt.Sprintf("subcategories.%d", categoryID), func(ctx context.Context) ([]domain.SubCategory, error) {
			return s.API.ListSubCategoriesByCategory(ctx, categoryID)
		})
		s.byCategory[categoryID] = sc
	}
	return sc
}

func (s *SubCategoryService) List(ctx context.Context) ([]domain.SubCategory, error) {
	err := s.All.Load(ctx)
	return s.All.Snapshot(), err
}

func (s *SubCategoryService) ListByCategory(ctx context.Context, categoryID int) ([]domain.SubCategory, error) {
	sc := s.ForCategory(categoryID)
	err := sc.Load(ctx)
	return sc.Snapshot(), err
}

func (s *SubCategoryService) Get(ctx context.Context, id int) (domain.SubCategory, error) {
	return s.API.GetSubCategory(ctx, id)
}

func (s *SubCategoryService) Create(ctx context.Context, in domain.SubCategoryInput) error {
	return s.write(ctx, in.CategoryID, "subcategory.create", func(ctx context.Context) error {
		return s.API.CreateSubCategory(ctx, in)
	})
}

func (s *SubCategoryService) Update(ctx context.Context, categoryID, id int, name string) error {
	return s.write(ctx, categoryID, "subcategory.update", func(ctx context.Context) error {
		return s.API.UpdateSubCategory(ctx, id, name)
	})
}

func (s *SubCategoryService) Delete(ctx context.Context, categoryID, id int) error {
	return s.write(ctx, categoryID, "subcategory.delete", func(ctx context.Context) error {
		return s.API.DeleteSubCategory(ctx, id)
	})
}

// write returns a *ReloadError when the API accepted the write but either
// list could not be reloaded.
func (s *SubCategoryService) write(ctx context.Context, categoryID int, op string, fn func(context.Context) error) error {
	err := s.ForCategory(categoryID).Write(ctx, op, fn)
	if err != nil && !errors.Is(err, ErrReloadFailed) {
		return err
	}
	if s.All.Store().Version() == 0 {
		return err
	}
	if lerr := s.All.Load(ctx); lerr != nil {
		applog.L().Warn("subcategory.all.reload.fail", zap.String("op", op), zap.Error(lerr))
		if err == nil {
			err = &ReloadError{Op: op, Err: lerr}
		}
	}
	return err
}
