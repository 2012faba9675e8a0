package domain

import "github.com/shopspring/decimal"

// Upload is a file attached to a multipart write.
type Upload struct {
	FileName    string
	ContentType string
	Content     []byte
}

type BrandInput struct {
	Name string `validate:"required,max=100"`
}

type CategoryInput struct {
	Name  string `validate:"required,max=100"`
	Image *Upload
}

type SubCategoryInput struct {
	Name       string `validate:"required,max=100"`
	CategoryID int    `validate:"required,gt=0"`
}

type ColorInput struct {
	Name string `validate:"required,max=100"`
}

type ProductInput struct {
	Name          string          `validate:"required,max=200"`
	Description   string          `validate:"max=2000"`
	Code          string          `validate:"required,max=64"`
	Price         decimal.Decimal `validate:"-"`
	HasDiscount   bool
	DiscountPrice *decimal.Decimal `validate:"-"`
	Quantity      int              `validate:"gte=0"`
	BrandID       int              `validate:"required,gt=0"`
	ColorID       int              `validate:"required,gt=0"`
	SubCategoryID int              `validate:"required,gt=0"`
	Weight        string           `validate:"max=32"`
	Size          string           `validate:"max=32"`
	Images        []Upload
}

// ProductQuery carries the product list filters. Zero values are omitted.
type ProductQuery struct {
	ProductName   string
	BrandID       int
	ColorID       int
	CategoryID    int
	SubcategoryID int
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	PageNumber    int
	PageSize      int
}

// ColorQuery carries the color list filters.
type ColorQuery struct {
	ColorName  string
	PageNumber int
	PageSize   int
}

type Credentials struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}
