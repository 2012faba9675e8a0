package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var env domain.ListEnvelope[[]domain.Category]
	if err := c.do(ctx, "category.list", request{method: http.MethodGet, path: "/Category/get-categories"}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Data), nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	var env domain.Envelope[domain.Category]
	q := url.Values{"id": {strconv.Itoa(id)}}
	if err := c.do(ctx, "category.get", request{method: http.MethodGet, path: "/Category/get-category-by-id", query: q}, &env); err != nil {
		return domain.Category{}, err
	}
	env.Data.SubCategories = orEmpty(env.Data.SubCategories)
	return env.Data, nil
}

func (c *Client) CreateCategory(ctx context.Context, in domain.CategoryInput) error {
	return c.writeCategory(ctx, "category.create", http.MethodPost, "/Category/add-category", 0, in)
}

func (c *Client) UpdateCategory(ctx context.Context, id int, in domain.CategoryInput) error {
	return c.writeCategory(ctx, "category.update", http.MethodPut, "/Category/update-category", id, in)
}

func (c *Client) writeCategory(ctx context.Context, op, method, path string, id int, in domain.CategoryInput) error {
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	f := newForm()
	if id != 0 {
		f.field("Id", strconv.Itoa(id))
	}
	f.field("CategoryName", in.Name)
	if in.Image != nil {
		f.file("CategoryImage", *in.Image)
	}
	body, ct, err := f.finish()
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode form", Err: err})
	}
	return c.do(ctx, op, request{method: method, path: path, body: body, contentType: ct}, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.do(ctx, "category.delete", request{method: http.MethodDelete, path: "/Category/delete-category", query: q}, nil)
}
