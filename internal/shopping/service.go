package shopping

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

// Repository is the remote store of lists and items.
type Repository interface {
	ListsByUser(ctx context.Context, userID string) ([]model.ShoppingList, error)
	GetList(ctx context.Context, id string) (*model.ShoppingList, error)
	CreateList(ctx context.Context, in model.NewList) (*model.ShoppingList, error)
	UpdateList(ctx context.Context, id string, u model.ListUpdate) (*model.ShoppingList, error)
	DeleteList(ctx context.Context, id string) error
	AddItem(ctx context.Context, listID string, in model.NewItem) (*model.Item, error)
	ToggleItem(ctx context.Context, itemID string) (*model.Item, error)
	UpdateItem(ctx context.Context, itemID string, u model.ItemUpdate) (*model.Item, error)
	DeleteItem(ctx context.Context, listID, itemID string) error
}

// Service runs list actions against the repository. Every mutation is
// followed by a full reload; the reloaded list is the only state returned.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Load fetches a list and builds its view.
func (s *Service) Load(ctx context.Context, listID string) (ListView, error) {
	list, err := s.fetch(ctx, listID)
	if err != nil {
		return ListView{}, err
	}
	return BuildView(*list), nil
}

func (s *Service) fetch(ctx context.Context, listID string) (*model.ShoppingList, error) {
	if strings.TrimSpace(listID) == "" {
		return nil, apperr.Validation("list id is required")
	}
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("load list %s: %w", listID, err)
	}
	if list == nil {
		return nil, apperr.NotFound("shopping list not found")
	}
	return list, nil
}

func (s *Service) fetchOpen(ctx context.Context, listID string) (*model.ShoppingList, error) {
	list, err := s.fetch(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.Status == model.StatusClosed {
		return nil, apperr.State("list is closed")
	}
	return list, nil
}

func (s *Service) ListsForUser(ctx context.Context, userID, query string) ([]ListSummary, error) {
	lists, err := s.repo.ListsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lists for user: %w", err)
	}
	return Summarize(FilterByName(lists, query)), nil
}

func (s *Service) CreateList(ctx context.Context, userID, name string) (ListView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ListView{}, apperr.Validation("name is required").
			WithDetails(map[string]string{"name": "is required"})
	}
	list, err := s.repo.CreateList(ctx, model.NewList{Name: name, CreatedBy: userID})
	if err != nil {
		return ListView{}, fmt.Errorf("create list: %w", err)
	}
	if list.Status == "" {
		list.Status = model.StatusOpen
	}
	s.logger.Info("list created", "list_id", list.ID)
	return BuildView(*list), nil
}

// UpdateList applies a rename and/or a status change.
func (s *Service) UpdateList(ctx context.Context, userID, listID string, patch model.ListPatch) (ListView, error) {
	var u model.ListUpdate
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ListView{}, apperr.Validation("name is required").
				WithDetails(map[string]string{"name": "is required"})
		}
		u.Name = &name
	}
	if patch.Status != nil {
		next, err := ParseStatus(string(*patch.Status))
		if err != nil {
			return ListView{}, err
		}
		current, err := s.fetch(ctx, listID)
		if err != nil {
			return ListView{}, err
		}
		if err := s.transition(&u, current.Status, next, userID); err != nil {
			return ListView{}, err
		}
	}
	if u.Name == nil && u.Status == nil {
		return ListView{}, apperr.Validation("nothing to update")
	}
	return s.save(ctx, listID, u)
}

func (s *Service) transition(u *model.ListUpdate, from, to model.Status, userID string) error {
	t, err := Transition(from, to, userID, s.now())
	if err != nil {
		return err
	}
	u.Status, u.ClosedAt, u.PurchasedBy, u.ClearClosure = t.Status, t.ClosedAt, t.PurchasedBy, t.ClearClosure
	return nil
}

func (s *Service) save(ctx context.Context, listID string, u model.ListUpdate) (ListView, error) {
	if _, err := s.repo.UpdateList(ctx, listID, u); err != nil {
		return ListView{}, fmt.Errorf("update list %s: %w", listID, err)
	}
	return s.Load(ctx, listID)
}

// ToggleStatus flips the current status, the checkout button's action.
func (s *Service) ToggleStatus(ctx context.Context, userID, listID string) (ListView, error) {
	current, err := s.fetch(ctx, listID)
	if err != nil {
		return ListView{}, err
	}
	var u model.ListUpdate
	if err := s.transition(&u, current.Status, Toggled(current.Status), userID); err != nil {
		return ListView{}, err
	}
	return s.save(ctx, listID, u)
}

func (s *Service) DeleteList(ctx context.Context, listID string) error {
	if err := s.repo.DeleteList(ctx, listID); err != nil {
		return fmt.Errorf("delete list %s: %w", listID, err)
	}
	s.logger.Info("list deleted", "list_id", listID)
	return nil
}

func (s *Service) AddItem(ctx context.Context, userID, listID string, draft model.ItemDraft) (ListView, error) {
	in, err := NormalizeDraft(listID, userID, draft)
	if err != nil {
		return ListView{}, err
	}
	if _, err := s.fetchOpen(ctx, listID); err != nil {
		return ListView{}, err
	}
	if _, err := s.repo.AddItem(ctx, listID, in); err != nil {
		return ListView{}, fmt.Errorf("add item to %s: %w", listID, err)
	}
	return s.Load(ctx, listID)
}

// AddProduct adds a catalog product using its defaults.
func (s *Service) AddProduct(ctx context.Context, userID, listID string, p model.Product, categoryName string) (ListView, error) {
	return s.AddItem(ctx, userID, listID, DraftFromProduct(p, categoryName))
}

func (s *Service) UpdateItem(ctx context.Context, listID, itemID string, patch model.ItemPatch) (ListView, error) {
	u, err := NormalizePatch(patch)
	if err != nil {
		return ListView{}, err
	}
	if _, err := s.fetchOpen(ctx, listID); err != nil {
		return ListView{}, err
	}
	if _, err := s.repo.UpdateItem(ctx, itemID, u); err != nil {
		return ListView{}, fmt.Errorf("update item %s: %w", itemID, err)
	}
	return s.Load(ctx, listID)
}

// ToggleItemCompletion flips one item and reloads the list. It is not
// optimistic: on failure nothing changes and the error is returned.
func (s *Service) ToggleItemCompletion(ctx context.Context, listID, itemID string) (ListView, error) {
	if _, err := s.fetchOpen(ctx, listID); err != nil {
		return ListView{}, err
	}
	if _, err := s.repo.ToggleItem(ctx, itemID); err != nil {
		return ListView{}, fmt.Errorf("toggle item %s: %w", itemID, err)
	}
	return s.Load(ctx, listID)
}

func (s *Service) DeleteItem(ctx context.Context, listID, itemID string) (ListView, error) {
	if _, err := s.fetchOpen(ctx, listID); err != nil {
		return ListView{}, err
	}
	if err := s.repo.DeleteItem(ctx, listID, itemID); err != nil {
		return ListView{}, fmt.Errorf("delete item %s: %w", itemID, err)
	}
	return s.Load(ctx, listID)
}
