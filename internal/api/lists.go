package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

func (c *Client) ListsByUser(ctx context.Context, userID string) ([]model.ShoppingList, error) {
	var lists []model.ShoppingList
	if err := c.do(ctx, http.MethodGet, "/shopping-lists/user/"+url.PathEscape(userID), nil, &lists); err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	return lists, nil
}

// GetList returns nil when the backend reports no such list.
func (c *Client) GetList(ctx context.Context, id string) (*model.ShoppingList, error) {
	var list *model.ShoppingList
	err := c.do(ctx, http.MethodGet, "/shopping-lists/"+url.PathEscape(id), nil, &list)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateList(ctx context.Context, in model.NewList) (*model.ShoppingList, error) {
	var list model.ShoppingList
	if err := c.do(ctx, http.MethodPost, "/shopping-lists", in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UpdateList(ctx context.Context, id string, u model.ListUpdate) (*model.ShoppingList, error) {
	var list model.ShoppingList
	if err := c.do(ctx, http.MethodPatch, "/shopping-lists/"+url.PathEscape(id), u, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) DeleteList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/shopping-lists/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddItem(ctx context.Context, listID string, in model.NewItem) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPost, "/shopping-lists/"+url.PathEscape(listID)+"/items", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) ToggleItem(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPatch, "/shopping-lists/items/"+url.PathEscape(itemID)+"/toggle", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID string, u model.ItemUpdate) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPatch, "/shopping-lists/items/"+url.PathEscape(itemID), u, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, listID, itemID string) error {
	path := "/shopping-lists/" + url.PathEscape(listID) + "/items/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
