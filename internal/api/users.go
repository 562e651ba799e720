package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/listkeeper/internal/model"
)

func (c *Client) User(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, u model.UserUpdate) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
