package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-ops/internal/domain"
)

type ReservationService struct {
	store       Store
	clock       Clock
	transitions domain.Transitions[domain.ReservationStatus]
}

func NewReservationService(store Store, clock Clock, transitions domain.Transitions[domain.ReservationStatus]) *ReservationService {
	return &ReservationService{store: store, clock: clock, transitions: transitions}
}

// Create does not check table capacity or overlapping reservations: two
// requests for the same table and time both succeed.
func (s *ReservationService) Create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	var created *domain.Reservation
	err := s.store.Atomically(ctx, false, func(repo Repository) error {
		if _, err := resolveRestaurant(ctx, repo, req.RestaurantID); err != nil {
			return err
		}
		if _, err := resolveTable(ctx, repo, req.TableID); err != nil {
			return err
		}
		if _, err := resolveCustomer(ctx, repo, req.CustomerID); err != nil {
			return err
		}
		if !req.ReservationTime.After(s.clock.Now()) {
			return domain.Invalid(domain.ErrInvalidReservationTime, req.ReservationTime.Format(time.RFC3339))
		}
		if req.PartySize < 1 {
			return domain.Invalid(domain.ErrInvalidPartySize, req.PartySize)
		}

		reservation := &domain.Reservation{
			RestaurantID:    req.RestaurantID,
			TableID:         req.TableID,
			CustomerID:      req.CustomerID,
			ReservationTime: req.ReservationTime,
			PartySize:       req.PartySize,
			Status:          domain.ReservationRequested,
			Notes:           req.Notes,
			CreatedAt:       s.clock.Now(),
		}
		if err := repo.CreateReservation(ctx, reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "reservation", id)
	}
	return reservation, nil
}

func (s *ReservationService) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	var updated *domain.Reservation
	err := s.store.Atomically(ctx, false, func(repo Repository) error {
		reservation, err := repo.GetReservation(ctx, id)
		if err != nil {
			return notFoundAs(err, "reservation", id)
		}
		if !s.transitions.Allowed(reservation.Status, status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrTransitionNotAllowed, reservation.Status, status)
		}
		if err := repo.UpdateReservationStatus(ctx, id, status); err != nil {
			return notFoundAs(err, "reservation", id)
		}
		reservation.Status = status
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReservationService) FindForRestaurantOnDate(ctx context.Context, restaurantID int64, day time.Time) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := s.store.Atomically(ctx, true, func(repo Repository) error {
		if _, err := resolveRestaurant(ctx, repo, restaurantID); err != nil {
			return err
		}
		start, end := dayBounds(day)
		found, err := repo.ListReservationsBetween(ctx, restaurantID, start, end)
		if err != nil {
			return err
		}
		reservations = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	return reservations, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	rows, err := s.store.DeleteReservation(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("reservation", id)
	}
	return nil
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
