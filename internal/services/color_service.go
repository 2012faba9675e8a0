package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"storeadmin/internal/domain"
)

const (
	DefaultColorPage     = 1
	DefaultColorPageSize = 20
)

// ErrBlankColor is returned before any request when a color name is blank.
var ErrBlankColor = errors.New("color name or code is required")

type ColorAPI interface {
	ListColors(ctx context.Context, q domain.ColorQuery) ([]domain.Color, error)
	CreateColor(ctx context.Context, in domain.ColorInput) error
	UpdateColor(ctx context.Context, id int, in domain.ColorInput) error
	DeleteColor(ctx context.Context, id int) error
}

type ColorService struct {
	API  ColorAPI
	Sync *Synchronizer[domain.Color]

	mu    sync.RWMutex
	query domain.ColorQuery
}

func NewColorService(api ColorAPI, pageSize int) *ColorService {
	if pageSize <= 0 {
		pageSize = DefaultColorPageSize
	}
	s := &ColorService{API: api, query: domain.ColorQuery{PageNumber: DefaultColorPage, PageSize: pageSize}}
	s.Sync = NewSynchronizer("colors", func(ctx context.Context) ([]domain.Color, error) {
		return s.API.ListColors(ctx, s.Query())
	})
	return s
}

func (s *ColorService) Query() domain.ColorQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// List applies the name filter and page, keeping the page size.
func (s *ColorService) List(ctx context.Context, name string, page int) ([]domain.Color, error) {
	if page <= 0 {
		page = DefaultColorPage
	}
	s.mu.Lock()
	s.query.ColorName = strings.TrimSpace(name)
	s.query.PageNumber = page
	s.mu.Unlock()
	err := s.Sync.Load(ctx)
	return s.Sync.Snapshot(), err
}

func (s *ColorService) Create(ctx context.Context, in domain.ColorInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrBlankColor
	}
	return s.Sync.Write(ctx, "color.create", func(ctx context.Context) error {
		return s.API.CreateColor(ctx, in)
	})
}

func (s *ColorService) Update(ctx context.Context, id int, in domain.ColorInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrBlankColor
	}
	return s.Sync.Write(ctx, "color.update", func(ctx context.Context) error {
		return s.API.UpdateColor(ctx, id, in)
	})
}

func (s *ColorService) Delete(ctx context.Context, id int) error {
	return s.Sync.Write(ctx, "color.delete", func(ctx context.Context) error {
		return s.API.DeleteColor(ctx, id)
	})
}
