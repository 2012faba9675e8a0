package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

func (c *Client) ListColors(ctx context.Context, q domain.ColorQuery) ([]domain.Color, error) {
	v := url.Values{"ColorName": {q.ColorName}}
	if q.PageNumber > 0 {
		v.Set("PageNumber", strconv.Itoa(q.PageNumber))
	}
	if q.PageSize > 0 {
		v.Set("PageSize", strconv.Itoa(q.PageSize))
	}
	var env domain.ListEnvelope[[]domain.Color]
	if err := c.do(ctx, "color.list", request{method: http.MethodGet, path: "/Color/get-colors", query: v}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Data), nil
}

func (c *Client) CreateColor(ctx context.Context, in domain.ColorInput) error {
	const op = "color.create"
	in.Name = strings.TrimSpace(in.Name)
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	q := url.Values{"ColorName": {in.Name}}
	return c.do(ctx, op, request{method: http.MethodPost, path: "/Color/add-color", query: q}, nil)
}

func (c *Client) UpdateColor(ctx context.Context, id int, in domain.ColorInput) error {
	const op = "color.update"
	in.Name = strings.TrimSpace(in.Name)
	if problems := validate.Struct(in); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	q := url.Values{"Id": {strconv.Itoa(id)}, "ColorName": {in.Name}}
	return c.do(ctx, op, request{method: http.MethodPut, path: "/Color/update-color", query: q}, nil)
}

func (c *Client) DeleteColor(ctx context.Context, id int) error {
	q := url.Values{"Id": {strconv.Itoa(id)}}
	return c.do(ctx, "color.delete", request{method: http.MethodDelete, path: "/Color/delete-color", query: q}, nil)
}
