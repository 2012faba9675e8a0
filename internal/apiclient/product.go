package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

func productQuery(q domain.ProductQuery) url.Values {
	v := url.Values{}
	if q.ProductName != "" {
		v.Set("ProductName", q.ProductName)
	}
	setID := func(k string, id int) {
		if id > 0 {
			v.Set(k, strconv.Itoa(id))
		}
	}
	setID("BrandId", q.BrandID)
	setID("ColorId", q.ColorID)
	setID("CategoryId", q.CategoryID)
	setID("SubcategoryId", q.SubcategoryID)
	if q.MinPrice != nil {
		v.Set("MinPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("MaxPrice", q.MaxPrice.String())
	}
	setID("PageNumber", q.PageNumber)
	setID("PageSize", q.PageSize)
	return v
}

func emptyProductPage() domain.ProductPage {
	return domain.ProductPage{Products: []domain.Product{}, Colors: []domain.Color{}, Brands: []domain.Brand{}}
}

// ListProducts returns an empty page on 204 or a missing data payload.
func (c *Client) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	var env domain.ListEnvelope[*domain.ProductPage]
	if err := c.do(ctx, "product.list", request{method: http.MethodGet, path: "/Product/get-products", query: productQuery(q)}, &env); err != nil {
		return emptyProductPage(), err
	}
	if env.Data == nil {
		return emptyProductPage(), nil
	}
	page := *env.Data
	page.Products = orEmpty(page.Products)
	page.Colors = orEmpty(page.Colors)
	page.Brands = orEmpty(page.Brands)
	return page, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) error {
	return c.writeProduct(ctx, "product.create", http.MethodPost, "/Product/add-product", nil, in)
}

// UpdateProduct sends the full field set; the id travels in the query.
func (c *Client) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.writeProduct(ctx, "product.update", http.MethodPut, "/Product/update-product", q, in)
}

func (c *Client) writeProduct(ctx context.Context, op, method, path string, q url.Values, in domain.ProductInput) error {
	problems := validate.Struct(in)
	if in.Price.IsNegative() {
		problems = append(problems, "Price: gte=0")
	}
	if in.DiscountPrice != nil && in.DiscountPrice.IsNegative() {
		problems = append(problems, "DiscountPrice: gte=0")
	}
	if len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}

	f := newForm()
	for _, img := range in.Images {
		f.file("Images", img)
	}
	f.field("BrandId", strconv.Itoa(in.BrandID))
	f.field("ColorId", strconv.Itoa(in.ColorID))
	f.field("ProductName", in.Name)
	f.field("Description", in.Description)
	f.field("Quantity", strconv.Itoa(in.Quantity))
	f.field("Code", in.Code)
	f.field("Price", in.Price.String())
	f.field("HasDiscount", strconv.FormatBool(in.HasDiscount))
	f.field("SubCategoryId", strconv.Itoa(in.SubCategoryID))
	if in.DiscountPrice != nil && (in.HasDiscount || q == nil) {
		f.field("DiscountPrice", in.DiscountPrice.String())
	}
	if in.Weight != "" {
		f.field("Weight", in.Weight)
	}
	if in.Size != "" {
		f.field("Size", in.Size)
	}
	body, ct, err := f.finish()
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode form", Err: err})
	}
	return c.do(ctx, op, request{method: method, path: path, query: q, body: body, contentType: ct}, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.do(ctx, "product.delete", request{method: http.MethodDelete, path: "/Product/delete-product", query: q}, nil)
}

func (c *Client) DeleteProductImage(ctx context.Context, imageID int) error {
	q := url.Values{"id": {strconv.Itoa(imageID)}}
	return c.do(ctx, "product.image.delete", request{method: http.MethodDelete, path: "/Product/delete-product-image", query: q}, nil)
}
