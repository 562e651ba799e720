package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/listkeeper/internal/auth"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/shopping"
)

// HomeHandler serves the first tab in one round trip.
type HomeHandler struct {
	base
	lists   *shopping.Service
	catalog Catalog
}

func NewHomeHandler(lists *shopping.Service, catalog Catalog, notices *notice.Catalog, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{base: base{notices: notices, logger: logger}, lists: lists, catalog: catalog}
}

type homeView struct {
	Lists      []shopping.ListSummary `json:"lists"`
	Categories []model.Category       `json:"categories"`
	Products   []model.Product        `json:"products"`
	// Partial is set when the catalog could not be loaded.
	Partial bool `json:"partial"`
}

// Show fetches lists, categories and products concurrently. Only the lists
// are required; a catalog failure leaves those sections empty.
func (h *HomeHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserID(ctx)

	var (
		view     homeView
		catFail  bool
		prodFail bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lists, err := h.lists.ListsForUser(gctx, userID, r.URL.Query().Get("q"))
		view.Lists = lists
		return err
	})
	g.Go(func() error {
		cats, err := h.catalog.Categories(gctx)
		if err != nil {
			h.logger.Warn("home: categories unavailable", "error", err)
			catFail = true
			return nil
		}
		view.Categories = cats
		return nil
	})
	g.Go(func() error {
		products, err := h.catalog.Products(gctx)
		if err != nil {
			h.logger.Warn("home: products unavailable", "error", err)
			prodFail = true
			return nil
		}
		view.Products = products
		return nil
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, notice.ListsLoaded, err)
		return
	}

	view.Partial = catFail || prodFail
	if view.Lists == nil {
		view.Lists = []shopping.ListSummary{}
	}
	if view.Categories == nil {
		view.Categories = []model.Category{}
	}
	if view.Products == nil {
		view.Products = []model.Product{}
	}
	h.ok(w, http.StatusOK, view, "")
}
