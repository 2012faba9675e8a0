package sandbox

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"storeadmin/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Users []struct {
		UserName string `yaml:"userName"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Brands     []string `yaml:"brands"`
	Colors     []string `yaml:"colors"`
	Categories []struct {
		Name          string   `yaml:"name"`
		SubCategories []string `yaml:"subCategories"`
	} `yaml:"categories"`
	Products []struct {
		Name          string `yaml:"name"`
		Code          string `yaml:"code"`
		Description   string `yaml:"description"`
		Price         string `yaml:"price"`
		DiscountPrice string `yaml:"discountPrice"`
		Quantity      int    `yaml:"quantity"`
		Brand         string `yaml:"brand"`
		Color         string `yaml:"color"`
		SubCategory   string `yaml:"subCategory"`
	} `yaml:"products"`
}

// LoadSeed reads a seed file, or the embedded default when path is empty.
func LoadSeed(m *Memory, path string) error {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed: %w", err)
		}
		raw = b
	}
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	return apply(m, sf)
}

func apply(m *Memory, sf seedFile) error {
	for _, u := range sf.Users {
		if err := m.Register(u.UserName, u.Password); err != nil {
			return fmt.Errorf("seed user %q: %w", u.UserName, err)
		}
	}
	brands := map[string]int{}
	for _, name := range sf.Brands {
		b, err := m.AddBrand(name)
		if err != nil {
			return fmt.Errorf("seed brand %q: %w", name, err)
		}
		brands[name] = b.ID
	}
	colors := map[string]int{}
	for _, name := range sf.Colors {
		c, err := m.AddColor(name)
		if err != nil {
			return fmt.Errorf("seed color %q: %w", name, err)
		}
		colors[name] = c.ID
	}
	subs := map[string]int{}
	for _, c := range sf.Categories {
		cat, err := m.AddCategory(c.Name, nil)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		for _, name := range c.SubCategories {
			s, err := m.AddSubCategory(name, cat.ID)
			if err != nil {
				return fmt.Errorf("seed sub-category %q: %w", name, err)
			}
			subs[name] = s.ID
		}
	}
	for _, p := range sf.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("seed product %q price: %w", p.Name, err)
		}
		in := domain.ProductInput{
			Name:          p.Name,
			Code:          p.Code,
			Description:   p.Description,
			Price:         price,
			Quantity:      p.Quantity,
			BrandID:       brands[p.Brand],
			ColorID:       colors[p.Color],
			SubCategoryID: subs[p.SubCategory],
		}
		if p.DiscountPrice != "" {
			d, err := decimal.NewFromString(p.DiscountPrice)
			if err != nil {
				return fmt.Errorf("seed product %q discount: %w", p.Name, err)
			}
			in.HasDiscount = true
			in.DiscountPrice = &d
		}
		if _, err := m.AddProduct(in); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

// NewSeeded builds a server over a memory store filled from the embedded seed.
func NewSeeded(faults *Faults) (*Server, error) {
	mem := NewMemory()
	if err := LoadSeed(mem, ""); err != nil {
		return nil, err
	}
	if faults == nil {
		faults = NewFaults(nil)
	}
	return NewServer(mem, faults), nil
}
