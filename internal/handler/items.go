package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/auth"
	"github.com/dukerupert/listkeeper/internal/grocery"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/shopping"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

// CategorySource is the part of the catalog needed to file new items.
type CategorySource interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

type ItemHandler struct {
	base
	lists   *shopping.Service
	catalog CategorySource
}

func NewItemHandler(lists *shopping.Service, catalog CategorySource, hub *websocket.Hub, notices *notice.Catalog, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		base:    base{hub: hub, notices: notices, logger: logger},
		lists:   lists,
		catalog: catalog,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	var draft model.ItemDraft
	if err := decode(r, &draft); err != nil {
		h.fail(w, r, notice.ItemAdded, err)
		return
	}

	if needsCategory(draft) {
		draft.Category = grocery.Suggest(draft.Name, h.categoryNames(r.Context()))
	}

	view, err := h.lists.AddItem(r.Context(), auth.UserID(r.Context()), listID, draft)
	if err != nil {
		h.fail(w, r, notice.ItemAdded, err)
		return
	}

	h.announce(listID, websocket.ActionCreated, "")
	h.ok(w, http.StatusCreated, view, notice.ItemAdded)
}

// CreateFromProduct adds a catalog product with its default quantity, unit
// and price, filed under the product's category.
func (h *ItemHandler) CreateFromProduct(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	product, err := h.catalog.Product(r.Context(), r.PathValue("productId"))
	if err != nil {
		h.fail(w, r, notice.ItemAdded, err)
		return
	}
	if product == nil {
		h.fail(w, r, notice.ItemAdded, apperr.NotFound("product not found"))
		return
	}

	view, err := h.lists.AddProduct(r.Context(), auth.UserID(r.Context()), listID, *product, h.categoryName(r.Context(), *product))
	if err != nil {
		h.fail(w, r, notice.ItemAdded, err)
		return
	}

	h.announce(listID, websocket.ActionCreated, "")
	h.ok(w, http.StatusCreated, view, notice.ItemAdded)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID, itemID := r.PathValue("id"), r.PathValue("itemId")

	var patch model.ItemPatch
	if err := decode(r, &patch); err != nil {
		h.fail(w, r, notice.ItemUpdated, err)
		return
	}

	view, err := h.lists.UpdateItem(r.Context(), listID, itemID, patch)
	if err != nil {
		h.fail(w, r, notice.ItemUpdated, err)
		return
	}

	h.announce(listID, websocket.ActionUpdated, itemID)
	h.ok(w, http.StatusOK, view, notice.ItemUpdated)
}

func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	listID, itemID := r.PathValue("id"), r.PathValue("itemId")

	view, err := h.lists.ToggleItemCompletion(r.Context(), listID, itemID)
	if err != nil {
		h.fail(w, r, notice.ItemToggled, err)
		return
	}

	h.announce(listID, websocket.ActionToggled, itemID)
	h.ok(w, http.StatusOK, view, "")
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, itemID := r.PathValue("id"), r.PathValue("itemId")

	view, err := h.lists.DeleteItem(r.Context(), listID, itemID)
	if err != nil {
		h.fail(w, r, notice.ItemDeleted, err)
		return
	}

	h.announce(listID, websocket.ActionDeleted, itemID)
	h.ok(w, http.StatusOK, view, notice.ItemDeleted)
}

// needsCategory reports whether a draft would land in the default section.
// A "Category|..." notes prefix already files the item.
func needsCategory(d model.ItemDraft) bool {
	if strings.TrimSpace(d.Category) != "" || strings.TrimSpace(d.Name) == "" {
		return false
	}
	return shopping.CategoryOf(model.Item{Notes: d.Notes}) == shopping.DefaultCategory
}

func (h *ItemHandler) announce(listID, action, itemID string) {
	h.broadcast(websocket.NewMessage(websocket.EntityItem, action, itemID).ForList(listID))
}

// categoryNames is best effort: without the catalog, suggestions fall back
// to the built-in names.
func (h *ItemHandler) categoryNames(ctx context.Context) []string {
	if h.catalog == nil {
		return nil
	}
	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Warn("categories unavailable for suggestion", "error", err)
		return nil
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

func (h *ItemHandler) categoryName(ctx context.Context, p model.Product) string {
	if p.Category == "" {
		return grocery.Suggest(p.Name, h.categoryNames(ctx))
	}
	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Warn("categories unavailable for product", "product_id", p.ID, "error", err)
		return ""
	}
	for _, c := range cats {
		if c.ID == p.Category || c.Name == p.Category {
			return c.Name
		}
	}
	return ""
}
