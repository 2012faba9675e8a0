package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var env domain.ListEnvelope[[]domain.Brand]
	if err := c.do(ctx, "brand.list", request{method: http.MethodGet, path: "/Brand/get-brands"}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Data), nil
}

// CreateBrand sends the name as a query parameter, as the store API expects.
func (c *Client) CreateBrand(ctx context.Context, in domain.BrandInput) error {
	const op = "brand.create"
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	q := url.Values{"BrandName": {in.Name}}
	return c.do(ctx, op, request{method: http.MethodPost, path: "/Brand/add-brand", query: q}, nil)
}

func (c *Client) UpdateBrand(ctx context.Context, id int, in domain.BrandInput) error {
	const op = "brand.update"
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	q := url.Values{"BrandId": {strconv.Itoa(id)}, "BrandName": {in.Name}}
	return c.do(ctx, op, request{method: http.MethodPut, path: "/Brand/update-brand", query: q}, nil)
}

func (c *Client) DeleteBrand(ctx context.Context, id int) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.do(ctx, "brand.delete", request{method: http.MethodDelete, path: "/Brand/delete-brand", query: q}, nil)
}
