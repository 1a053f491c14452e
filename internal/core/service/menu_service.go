package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tastecraft/menu-studio/internal/api/metrics"
	"github.com/tastecraft/menu-studio/internal/core/authz"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

// MenuService implements the menu lifecycle. Every operation on an existing
// menu resolves the resource first (missing → not found) and only then checks
// ownership (mismatch → forbidden), in that order.
type MenuService struct {
	menus  ports.MenuRepository
	users  ports.UserRepository
	events ports.LifecycleRecorder
	logger zerolog.Logger
}

func NewMenuService(menus ports.MenuRepository, users ports.UserRepository, events ports.LifecycleRecorder, logger zerolog.Logger) *MenuService {
	return &MenuService{menus: menus, users: users, events: events, logger: logger}
}

func (s *MenuService) Create(ctx context.Context, ownerID int64, in ports.CreateMenuInput) (*domain.Menu, error) {
	if in.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	menu := &domain.Menu{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusDraft,
		OwnerID:     &ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	dishes := make([]domain.Dish, 0, len(in.Dishes))
	for _, d := range in.Dishes {
		dishes = append(dishes, buildDish(d))
	}

	created, err := s.menus.Create(ctx, menu, dishes)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create menu")
		return nil, err
	}

	metrics.MenusCreatedTotal.Inc()
	s.record(domain.LifecycleEvent{
		MenuID:    created.ID,
		OwnerID:   created.OwnerID,
		Action:    domain.ActionCreated,
		Status:    created.Status,
		Timestamp: now,
	})
	s.logger.Info().Int64("menu_id", created.ID).Int64("owner_id", ownerID).Msg("menu created")
	return created, nil
}

func (s *MenuService) Get(ctx context.Context, callerID, menuID int64) (*ports.MenuDetail, error) {
	menu, err := s.authorize(ctx, callerID, menuID)
	if err != nil {
		return nil, err
	}

	dishes, err := s.menus.ListDishes(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	return &ports.MenuDetail{Menu: *menu, Dishes: dishes}, nil
}

func (s *MenuService) List(ctx context.Context, callerID int64) ([]domain.Menu, error) {
	return s.menus.ListByOwner(ctx, callerID)
}

// ListAll is the administrative surface: every menu regardless of owner,
// restricted to admin and manager roles.
func (s *MenuService) ListAll(ctx context.Context, callerID int64) ([]domain.Menu, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireAdminOrManager(caller); err != nil {
		return nil, err
	}
	return s.menus.ListAll(ctx)
}

func (s *MenuService) Update(ctx context.Context, callerID, menuID int64, in ports.UpdateMenuInput) error {
	menu, err := s.authorize(ctx, callerID, menuID)
	if err != nil {
		return err
	}

	if in.Title != nil {
		menu.Title = *in.Title
	}
	if in.Description != nil {
		menu.Description = *in.Description
	}
	if in.Status != nil {
		status := domain.MenuStatus(*in.Status)
		if !status.Valid() {
			return domain.ErrInvalidStatus
		}
		// Membership is the only constraint on a generic status write; moving
		// back from submitted to draft stays legal.
		menu.Status = status
	}
	menu.UpdatedAt = time.Now().UTC()

	if err := s.menus.Update(ctx, menu); err != nil {
		return err
	}

	s.record(domain.LifecycleEvent{
		MenuID:    menu.ID,
		OwnerID:   menu.OwnerID,
		Action:    domain.ActionUpdated,
		Status:    menu.Status,
		Timestamp: menu.UpdatedAt,
	})
	return nil
}

// Submit is the one transition with a guard beyond enumeration membership:
// a menu already submitted cannot be submitted again.
func (s *MenuService) Submit(ctx context.Context, callerID, menuID int64) error {
	menu, err := s.authorize(ctx, callerID, menuID)
	if err != nil {
		return err
	}

	if menu.Status == domain.StatusSubmitted {
		metrics.MenuSubmissionsTotal.WithLabelValues("already_submitted").Inc()
		return domain.ErrAlreadySubmitted
	}

	// Conditional write: of two racing submits exactly one flips the status.
	submitted, err := s.menus.SubmitIfDraft(ctx, menu.ID)
	if err != nil {
		return err
	}
	if !submitted {
		metrics.MenuSubmissionsTotal.WithLabelValues("already_submitted").Inc()
		return domain.ErrAlreadySubmitted
	}

	metrics.MenuSubmissionsTotal.WithLabelValues("success").Inc()
	s.record(domain.LifecycleEvent{
		MenuID:    menu.ID,
		OwnerID:   menu.OwnerID,
		Action:    domain.ActionSubmitted,
		Status:    domain.StatusSubmitted,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Int64("menu_id", menu.ID).Msg("menu submitted")
	return nil
}

func (s *MenuService) Delete(ctx context.Context, callerID, menuID int64) error {
	menu, err := s.authorize(ctx, callerID, menuID)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.menus.DeleteCascade(ctx, menu.ID); err != nil {
		s.logger.Error().Err(err).Int64("menu_id", menu.ID).Msg("menu cascade delete failed")
		return err
	}
	metrics.CascadeDeleteDuration.WithLabelValues("menu").Observe(time.Since(start).Seconds())

	s.record(domain.LifecycleEvent{
		MenuID:    menu.ID,
		OwnerID:   menu.OwnerID,
		Action:    domain.ActionDeleted,
		Status:    menu.Status,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Int64("menu_id", menu.ID).Msg("menu deleted")
	return nil
}

// authorize resolves the menu, then the caller, then the ownership check.
// Admins may act on any menu; managers are confined to the listing surface.
func (s *MenuService) authorize(ctx context.Context, callerID, menuID int64) (*domain.Menu, error) {
	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwnerOrRole(menu.OwnerID, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *MenuService) record(event domain.LifecycleEvent) {
	if s.events != nil {
		s.events.Record(event)
	}
}

// buildDish maps a dish input onto the stored form, filling the three color
// slots in order.
func buildDish(in ports.DishInput) domain.Dish {
	d := domain.Dish{
		Name:        in.Name,
		Description: in.Description,
		Section:     in.Section,
		Bitter:      in.Bitter,
		Salty:       in.Salty,
		Sour:        in.Sour,
		Sweet:       in.Sweet,
		Umami:       in.Umami,
		Fat:         in.Fat,
		Piquant:     in.Piquant,
		Temperature: in.Temperature,
		EmotionIDs:  in.EmotionIDs,
		TextureIDs:  in.TextureIDs,
		ShapeIDs:    in.ShapeIDs,
	}
	slots := []*string{&d.Color1, &d.Color2, &d.Color3}
	for i, color := range in.Colors {
		if i >= len(slots) {
			break
		}
		*slots[i] = color
	}
	return d
}
