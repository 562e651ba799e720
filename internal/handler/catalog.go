package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/grocery"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/validate"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

// Catalog is the backend's category and product collection.
type Catalog interface {
	CategorySource
	CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Products(ctx context.Context) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]model.Product, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CatalogHandler struct {
	base
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog, hub *websocket.Hub, notices *notice.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{base: base{hub: hub, notices: notices, logger: logger}, catalog: catalog}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.fail(w, r, notice.CatalogLoaded, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	h.ok(w, http.StatusOK, cats, "")
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in model.CategoryInput
	if err := h.readInput(r, &in); err != nil {
		h.fail(w, r, notice.CategoryCreated, err)
		return
	}

	cat, err := h.catalog.CreateCategory(r.Context(), in)
	if err != nil {
		h.fail(w, r, notice.CategoryCreated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityCategory, websocket.ActionCreated, cat.ID))
	h.ok(w, http.StatusCreated, cat, notice.CategoryCreated)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in model.CategoryInput
	if err := h.readInput(r, &in); err != nil {
		h.fail(w, r, notice.CategoryUpdated, err)
		return
	}

	cat, err := h.catalog.UpdateCategory(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, notice.CategoryUpdated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityCategory, websocket.ActionUpdated, id))
	h.ok(w, http.StatusOK, cat, notice.CategoryUpdated)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, notice.CategoryDeleted, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityCategory, websocket.ActionDeleted, id))
	h.ok(w, http.StatusOK, map[string]string{"id": id}, notice.CategoryDeleted)
}

// ListProducts returns the whole catalog, or one category's products when
// ?category= is set.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []model.Product
		err      error
	)
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		products, err = h.catalog.ProductsByCategory(r.Context(), categoryID)
	} else {
		products, err = h.catalog.Products(r.Context())
	}
	if err != nil {
		h.fail(w, r, notice.CatalogLoaded, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	h.ok(w, http.StatusOK, products, "")
}

func (h *CatalogHandler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, notice.CatalogLoaded, err)
		return
	}
	if p == nil {
		h.fail(w, r, notice.CatalogLoaded, apperr.NotFound("product not found"))
		return
	}
	h.ok(w, http.StatusOK, p, "")
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in model.ProductInput
	if err := h.readInput(r, &in); err != nil {
		h.fail(w, r, notice.ProductCreated, err)
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		h.fail(w, r, notice.ProductCreated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityProduct, websocket.ActionCreated, p.ID))
	h.ok(w, http.StatusCreated, p, notice.ProductCreated)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in model.ProductInput
	if err := h.readInput(r, &in); err != nil {
		h.fail(w, r, notice.ProductUpdated, err)
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, notice.ProductUpdated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityProduct, websocket.ActionUpdated, id))
	h.ok(w, http.StatusOK, p, notice.ProductUpdated)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, notice.ProductDeleted, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityProduct, websocket.ActionDeleted, id))
	h.ok(w, http.StatusOK, map[string]string{"id": id}, notice.ProductDeleted)
}

// Suggest guesses a category for ?name=, preferring the user's own
// category names.
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.fail(w, r, notice.CatalogLoaded, apperr.Validation("name is required"))
		return
	}

	var known []string
	if cats, err := h.catalog.Categories(r.Context()); err == nil {
		for _, c := range cats {
			known = append(known, c.Name)
		}
	} else {
		h.logger.Warn("categories unavailable for suggestion", "error", err)
	}

	h.ok(w, http.StatusOK, map[string]string{"name": name, "category": grocery.Suggest(name, known)}, "")
}

// readInput decodes and validates a form before anything goes to the backend.
func (h *CatalogHandler) readInput(r *http.Request, v any) error {
	if err := decode(r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}
