package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

func (c *Client) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	var env domain.ListEnvelope[[]domain.SubCategory]
	if err := c.do(ctx, "subcategory.list", request{method: http.MethodGet, path: "/SubCategory/get-sub-category"}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Data), nil
}

func (c *Client) ListSubCategoriesByCategory(ctx context.Context, categoryID int) ([]domain.SubCategory, error) {
	var env domain.ListEnvelope[[]domain.SubCategory]
	q := url.Values{"categoryId": {strconv.Itoa(categoryID)}}
	if err := c.do(ctx, "subcategory.list_by_category", request{method: http.MethodGet, path: "/SubCategory/get-sub-category-by-category", query: q}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Data), nil
}

func (c *Client) GetSubCategory(ctx context.Context, id int) (domain.SubCategory, error) {
	var env domain.Envelope[domain.SubCategory]
	q := url.Values{"id": {strconv.Itoa(id)}}
	if err := c.do(ctx, "subcategory.get", request{method: http.MethodGet, path: "/SubCategory/get-sub-category-by-id", query: q}, &env); err != nil {
		return domain.SubCategory{}, err
	}
	return env.Data, nil
}

func (c *Client) CreateSubCategory(ctx context.Context, in domain.SubCategoryInput) error {
	const op = "subcategory.create"
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	f := newForm()
	f.field("SubCategoryName", in.Name)
	f.field("CategoryId", strconv.Itoa(in.CategoryID))
	body, ct, err := f.finish()
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode form", Err: err})
	}
	return c.do(ctx, op, request{method: http.MethodPost, path: "/SubCategory/add-sub-category", body: body, contentType: ct}, nil)
}

// UpdateSubCategory only renames; the owning category is not sent.
func (c *Client) UpdateSubCategory(ctx context.Context, id int, name string) error {
	const op = "subcategory.update"
	if _, ok := validate.Name(name); !ok {
		return c.fail(validationError(op, []string{"Name: required"}))
	}
	f := newForm()
	f.field("Id", strconv.Itoa(id))
	f.field("SubCategoryName", name)
	body, ct, err := f.finish()
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode form", Err: err})
	}
	return c.do(ctx, op, request{method: http.MethodPut, path: "/SubCategory/update-sub-category", body: body, contentType: ct}, nil)
}

func (c *Client) DeleteSubCategory(ctx context.Context, id int) error {
	q := url.Values{"id": {strconv.Itoa(id)}}
	return c.do(ctx, "subcategory.delete", request{method: http.MethodDelete, path: "/SubCategory/delete-sub-category", query: q}, nil)
}
