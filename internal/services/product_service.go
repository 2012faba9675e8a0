package services

import (
	"context"
	"sync"

	"storeadmin/internal/domain"
)

const (
	DefaultProductPage     = 1
	DefaultProductPageSize = 50
)

type ProductAPI interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) error
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) error
	DeleteProduct(ctx context.Context, id int) error
	DeleteProductImage(ctx context.Context, imageID int) error
}

// ProductService reloads with the last query after every write. The
// brands, colors and price range of the last page are kept alongside.
type ProductService struct {
	API  ProductAPI
	Sync *Synchronizer[domain.Product]

	mu    sync.RWMutex
	query domain.ProductQuery
	meta  domain.ProductPage
}

func NewProductService(api ProductAPI, pageSize int) *ProductService {
	if pageSize <= 0 {
		pageSize = DefaultProductPageSize
	}
	s := &ProductService{API: api, query: domain.ProductQuery{PageNumber: DefaultProductPage, PageSize: pageSize}}
	s.Sync = NewSynchronizer("products", s.fetch)
	return s
}

func (s *ProductService) fetch(ctx context.Context) ([]domain.Product, error) {
	q := s.Query()
	page, err := s.API.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.meta = domain.ProductPage{Colors: page.Colors, Brands: page.Brands, MinMaxPrice: page.MinMaxPrice}
	s.mu.Unlock()
	return page.Products, nil
}

func (s *ProductService) Query() domain.ProductQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Page returns the store contents with the last fetched side data.
func (s *ProductService) Page() domain.ProductPage {
	s.mu.RLock()
	p := s.meta
	s.mu.RUnlock()
	p.Products = s.Sync.Snapshot()
	if p.Colors == nil {
		p.Colors = []domain.Color{}
	}
	if p.Brands == nil {
		p.Brands = []domain.Brand{}
	}
	return p
}

// List sets the query and reloads. Zero paging falls back to the defaults.
func (s *ProductService) List(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	if q.PageNumber <= 0 {
		q.PageNumber = DefaultProductPage
	}
	if q.PageSize <= 0 {
		q.PageSize = s.Query().PageSize
	}
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
	err := s.Sync.Load(ctx)
	return s.Page(), err
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) error {
	return s.Sync.Write(ctx, "product.create", func(ctx context.Context) error {
		return s.API.CreateProduct(ctx, in)
	})
}

func (s *ProductService) Update(ctx context.Context, id int, in domain.ProductInput) error {
	return s.Sync.Write(ctx, "product.update", func(ctx context.Context) error {
		return s.API.UpdateProduct(ctx, id, in)
	})
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.Sync.Write(ctx, "product.delete", func(ctx context.Context) error {
		return s.API.DeleteProduct(ctx, id)
	})
}

func (s *ProductService) DeleteImage(ctx context.Context, imageID int) error {
	return s.Sync.Write(ctx, "product.image.delete", func(ctx context.Context) error {
		return s.API.DeleteProductImage(ctx, imageID)
	})
}
