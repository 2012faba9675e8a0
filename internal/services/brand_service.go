package services

import (
	"context"

	"storeadmin/internal/domain"
)

type BrandAPI interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	CreateBrand(ctx context.Context, in domain.BrandInput) error
	UpdateBrand(ctx context.Context, id int, in domain.BrandInput) error
	DeleteBrand(ctx context.Context, id int) error
}

type BrandService struct {
	API  BrandAPI
	Sync *Synchronizer[domain.Brand]
}

func NewBrandService(api BrandAPI) *BrandService {
	return &BrandService{API: api, Sync: NewSynchronizer("brands", api.ListBrands)}
}

// List refreshes the store and returns its contents. On failure the
// previous contents are returned with the error.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	err := s.Sync.Load(ctx)
	return s.Sync.Snapshot(), err
}

func (s *BrandService) Create(ctx context.Context, in domain.BrandInput) error {
	return s.Sync.Write(ctx, "brand.create", func(ctx context.Context) error {
		return s.API.CreateBrand(ctx, in)
	})
}

func (s *BrandService) Update(ctx context.Context, id int, in domain.BrandInput) error {
	return s.Sync.Write(ctx, "brand.update", func(ctx context.Context) error {
		return s.API.UpdateBrand(ctx, id, in)
	})
}

func (s *BrandService) Delete(ctx context.Context, id int) error {
	return s.Sync.Write(ctx, "brand.delete", func(ctx context.Context) error {
		return s.API.DeleteBrand(ctx, id)
	})
}
