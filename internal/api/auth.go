package api

import (
	"context"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account. The password confirmation is checked locally
// and never sent.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.AuthResult, error) {
	reg.ConfirmPassword = ""
	return c.authenticate(ctx, "/auth/register", reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (model.AuthResult, error) {
	var res model.AuthResult
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return model.AuthResult{}, err
	}
	if res.Token == "" || res.User.ID == "" {
		return model.AuthResult{}, apperr.New(apperr.KindServer, "backend returned no session")
	}
	return res, nil
}
