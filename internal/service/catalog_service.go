package service

import (
	"context"
	"strings"
	"time"

	"restaurant-ops/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func validateRestaurant(rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return domain.Invalid(domain.ErrInvalidRestaurant, "name is required")
	}
	for _, clock := range []string{rest.OpeningTime, rest.ClosingTime} {
		if clock == "" {
			continue
		}
		if _, err := time.Parse("15:04", clock); err != nil {
			return domain.Invalid(domain.ErrInvalidRestaurant, clock)
		}
	}
	return nil
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	return s.repo.CreateRestaurant(ctx, rest)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return resolveRestaurant(ctx, s.repo, id)
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.RestaurantSummary, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summaries = append(summaries, domain.RestaurantSummary{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Address:     r.Address,
			Phone:       r.Phone,
			OpeningTime: r.OpeningTime,
			ClosingTime: r.ClosingTime,
		})
	}
	return summaries, nil
}

// UpdateRestaurant replaces every editable field of an existing restaurant.
func (s *CatalogService) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	if err := s.repo.UpdateRestaurant(ctx, rest); err != nil {
		return notFoundAs(err, "restaurant", rest.ID)
	}
	return nil
}

// DeleteRestaurant cascades to tables, categories and menu items.
func (s *CatalogService) DeleteRestaurant(ctx context.Context, id int64) error {
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("restaurant", id)
	}
	return nil
}

func (s *CatalogService) CreateTable(ctx context.Context, table *domain.DiningTable) error {
	if table.Capacity <= 0 {
		return domain.Invalid(domain.ErrInvalidCapacity, table.Capacity)
	}
	if _, err := resolveRestaurant(ctx, s.repo, table.RestaurantID); err != nil {
		return err
	}
	return s.repo.CreateTable(ctx, table)
}

func (s *CatalogService) ListTables(ctx context.Context, restaurantID int64) ([]domain.DiningTable, error) {
	if _, err := resolveRestaurant(ctx, s.repo, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListTables(ctx, restaurantID)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	if _, err := resolveRestaurant(ctx, s.repo, category.RestaurantID); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *CatalogService) ListCategories(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error) {
	if _, err := resolveRestaurant(ctx, s.repo, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, restaurantID)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if !validPrice(item.Price) {
		return domain.Invalid(domain.ErrInvalidPrice, item.Price.String())
	}
	category, err := s.repo.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return notFoundAs(err, "category", item.CategoryID)
	}
	item.RestaurantID = category.RestaurantID
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "menu item", id)
	}
	return item, nil
}

func (s *CatalogService) ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, notFoundAs(err, "category", categoryID)
	}
	return s.repo.ListMenuItems(ctx, categoryID)
}

// UpdateMenuItem changes the live menu only; prices already captured on
// order items are untouched.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if !validPrice(item.Price) {
		return domain.Invalid(domain.ErrInvalidPrice, item.Price.String())
	}
	existing, err := s.repo.GetMenuItem(ctx, item.ID)
	if err != nil {
		return notFoundAs(err, "menu item", item.ID)
	}
	item.CategoryID = existing.CategoryID
	item.RestaurantID = existing.RestaurantID
	return s.repo.UpdateMenuItem(ctx, item)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)

// Menu prices are stored as NUMERIC(12,2); anything finer would be rounded
// silently by the column.
const priceScale = 2

func validPrice(price decimal.Decimal) bool {
	return !price.IsNegative() && price.Equal(price.Round(priceScale))
}
