package apiclient

import (
	"context"
	"net/http"

	"storeadmin/internal/domain"
	"storeadmin/internal/validate"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, cr domain.Credentials) (string, error) {
	const op = "account.login"
	if problems := validate.Struct(cr); len(problems) > 0 {
		return "", c.fail(validationError(op, problems))
	}
	body, err := jsonBody(cr)
	if err != nil {
		return "", c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode body", Err: err})
	}
	var env domain.Envelope[string]
	if err := c.do(ctx, op, request{method: http.MethodPost, path: "/Account/login", body: body, contentType: "application/json"}, &env); err != nil {
		return "", err
	}
	if env.Data == "" {
		return "", c.fail(&Error{Op: op, Kind: KindClient, Status: http.StatusOK, Message: "empty token", Err: errNoToken})
	}
	return env.Data, nil
}

func (c *Client) Register(ctx context.Context, cr domain.Credentials) error {
	const op = "account.register"
	if problems := validate.Struct(cr); len(problems) > 0 {
		return c.fail(validationError(op, problems))
	}
	body, err := jsonBody(cr)
	if err != nil {
		return c.fail(&Error{Op: op, Kind: KindNetwork, Message: "encode body", Err: err})
	}
	return c.do(ctx, op, request{method: http.MethodPost, path: "/Account/register", body: body, contentType: "application/json"}, nil)
}
