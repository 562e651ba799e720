package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/listkeeper/internal/auth"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/shopping"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

type ListHandler struct {
	base
	lists *shopping.Service
}

func NewListHandler(lists *shopping.Service, hub *websocket.Hub, notices *notice.Catalog, logger *slog.Logger) *ListHandler {
	return &ListHandler{base: base{hub: hub, notices: notices, logger: logger}, lists: lists}
}

type createListRequest struct {
	Name string `json:"name"`
}

// Index returns the signed-in user's lists, optionally filtered by ?q=.
func (h *ListHandler) Index(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.lists.ListsForUser(r.Context(), auth.UserID(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, notice.ListsLoaded, err)
		return
	}
	if summaries == nil {
		summaries = []shopping.ListSummary{}
	}
	h.ok(w, http.StatusOK, summaries, "")
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, notice.ListCreated, err)
		return
	}

	view, err := h.lists.CreateList(r.Context(), auth.UserID(r.Context()), req.Name)
	if err != nil {
		h.fail(w, r, notice.ListCreated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, websocket.ActionCreated, view.List.ID))
	h.ok(w, http.StatusCreated, view, notice.ListCreated, view.List.Name)
}

func (h *ListHandler) Show(w http.ResponseWriter, r *http.Request) {
	view, err := h.lists.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, notice.ListLoaded, err)
		return
	}
	h.ok(w, http.StatusOK, view, "")
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.ListPatch
	if err := decode(r, &patch); err != nil {
		h.fail(w, r, notice.ListUpdated, err)
		return
	}

	view, err := h.lists.UpdateList(r.Context(), auth.UserID(r.Context()), id, patch)
	if err != nil {
		h.fail(w, r, notice.ListUpdated, err)
		return
	}

	h.announceList(view, websocket.ActionUpdated)
	h.ok(w, http.StatusOK, view, statusNotice(patch.Status, notice.ListUpdated))
}

// ToggleStatus closes an open list or reopens a closed one.
func (h *ListHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.lists.ToggleStatus(r.Context(), auth.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, notice.ListUpdated, err)
		return
	}

	action := websocket.ActionOpened
	if view.List.Status == model.StatusClosed {
		action = websocket.ActionClosed
	}
	h.announceList(view, action)
	status := view.List.Status
	h.ok(w, http.StatusOK, view, statusNotice(&status, notice.ListUpdated))
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.lists.DeleteList(r.Context(), id); err != nil {
		h.fail(w, r, notice.ListDeleted, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, websocket.ActionDeleted, id).ForList(id))
	h.ok(w, http.StatusOK, map[string]string{"id": id}, notice.ListDeleted)
}

func (h *ListHandler) announceList(view shopping.ListView, action string) {
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, action, view.List.ID).ForList(view.List.ID))
}

func statusNotice(status *model.Status, fallback notice.Key) notice.Key {
	if status == nil {
		return fallback
	}
	switch *status {
	case model.StatusClosed:
		return notice.ListClosed
	case model.StatusOpen:
		return notice.ListReopened
	}
	return fallback
}
