package domain

import "github.com/shopspring/decimal"

type Brand struct {
	ID   int    `json:"brandId"`
	Name string `json:"brandName"`
}

type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"subCategoryName"`
	CategoryID int    `json:"categoryId,omitempty"`
}

type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"categoryName"`
	Image         string        `json:"categoryImage,omitempty"`
	SubCategories []SubCategory `json:"subCategories"`
}

type Color struct {
	ID   int    `json:"id"`
	Name string `json:"colorName"`
}

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"productName"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Color         string          `json:"color"`
	CategoryID    int             `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	HasDiscount   bool            `json:"hasDiscount"`
	Quantity      int             `json:"quantity"`
	Code          string          `json:"code,omitempty"`
	Description   string          `json:"description,omitempty"`
	BrandID       int             `json:"brandId,omitempty"`
	ColorID       int             `json:"colorId,omitempty"`
	SubCategoryID int             `json:"subCategoryId,omitempty"`
	Weight        string          `json:"weight,omitempty"`
	Size          string          `json:"size,omitempty"`
	Images        []ProductImage  `json:"images,omitempty"`
}

type ProductImage struct {
	ID   int    `json:"id"`
	Name string `json:"imageName"`
}

// PriceRange is the min/max price across the filtered product set.
type PriceRange struct {
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// ProductPage is the data payload of the product list endpoint.
type ProductPage struct {
	Products    []Product  `json:"products"`
	Colors      []Color    `json:"colors"`
	Brands      []Brand    `json:"brands"`
	MinMaxPrice PriceRange `json:"minMaxPrice"`
}

// ListEnvelope wraps every list response of the store API.
type ListEnvelope[T any] struct {
	PageNumber  int      `json:"pageNumber"`
	PageSize    int      `json:"pageSize"`
	TotalPage   int      `json:"totalPage"`
	TotalRecord int      `json:"totalRecord"`
	Data        T        `json:"data"`
	Errors      []string `json:"errors"`
	StatusCode  int      `json:"statusCode"`
}

// Envelope wraps single-entity responses.
type Envelope[T any] struct {
	Data       T        `json:"data"`
	Errors     []string `json:"errors,omitempty"`
	StatusCode int      `json:"statusCode,omitempty"`
}
