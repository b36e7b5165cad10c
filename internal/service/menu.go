package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/funfair-pos/api/internal/database"
	"github.com/funfair-pos/api/internal/domain"
	"github.com/funfair-pos/api/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Errors returned by the menu service.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidPrice     = errors.New("unit_price must be a decimal with at most 2 fractional digits")
	ErrNegativePrice    = errors.New("unit_price must be >= 0")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// NUMERIC(10,2) upper bound.
var maxUnitPrice = decimal.New(1, 8)

// MenuStore defines the DB methods needed by the menu catalog.
// Satisfied by *database.Queries.
type MenuStore interface {
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	GetMenuItemForUpdate(ctx context.Context, id int64) (database.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg database.UpdateMenuItemParams) (database.MenuItem, error)
	ListMenuItems(ctx context.Context, isActive pgtype.Bool) ([]database.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) (int64, error)
}

// NewMenuStore creates a MenuStore from a DBTX (pool or tx).
type NewMenuStore func(db database.DBTX) MenuStore

// PhotoStore persists menu photos outside the database.
// Satisfied by *storage.DiskPhotoStore.
type PhotoStore interface {
	Save(u storage.Upload) (string, error)
	Delete(ref string) error
}

// CreateMenuItemRequest is the input for a new menu item.
type CreateMenuItemRequest struct {
	Name      string
	UnitPrice string
	Photo     *storage.Upload
}

// UpdateMenuItemRequest is a partial update; nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name      *string
	UnitPrice *string
	IsActive  *bool
	Photo     *storage.Upload
}

// MenuService handles the menu catalog.
type MenuService struct {
	pool     TxBeginner
	store    MenuStore
	newStore NewMenuStore
	photos   PhotoStore
}

// NewMenuService creates a new MenuService.
func NewMenuService(pool TxBeginner, store MenuStore, newStore NewMenuStore, photos PhotoStore) *MenuService {
	return &MenuService{pool: pool, store: store, newStore: newStore, photos: photos}
}

// Create validates and stores a new, active menu item.
func (s *MenuService) Create(ctx context.Context, req CreateMenuItemRequest) (*domain.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	price, err := ParseUnitPrice(req.UnitPrice)
	if err != nil {
		return nil, err
	}

	photoPath := pgtype.Text{}
	if req.Photo != nil {
		ref, err := s.photos.Save(*req.Photo)
		if err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
		photoPath = pgtype.Text{String: ref, Valid: true}
	}

	row, err := s.store.CreateMenuItem(ctx, database.CreateMenuItemParams{
		Name:      name,
		UnitPrice: decimalToNumeric(price),
		PhotoPath: photoPath,
	})
	if err != nil {
		s.removePhoto(photoPath)
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	item := toDomainMenuItem(row)
	return &item, nil
}

// Update applies the provided fields to a menu item. A replaced photo is
// removed only after the new row is committed.
func (s *MenuService) Update(ctx context.Context, id int64, req UpdateMenuItemRequest) (*domain.MenuItem, error) {
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
	}
	var price decimal.Decimal
	if req.UnitPrice != nil {
		p, err := ParseUnitPrice(*req.UnitPrice)
		if err != nil {
			return nil, err
		}
		price = p
	}

	newPhoto := pgtype.Text{}
	if req.Photo != nil {
		ref, err := s.photos.Save(*req.Photo)
		if err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
		newPhoto = pgtype.Text{String: ref, Valid: true}
	}

	row, oldPhoto, err := s.updateTx(ctx, id, req, name, price, newPhoto)
	if err != nil {
		s.removePhoto(newPhoto)
		return nil, err
	}
	if newPhoto.Valid {
		s.removePhoto(oldPhoto)
	}

	item := toDomainMenuItem(row)
	return &item, nil
}

func (s *MenuService) updateTx(ctx context.Context, id int64, req UpdateMenuItemRequest, name string, price decimal.Decimal, newPhoto pgtype.Text) (database.MenuItem, pgtype.Text, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.MenuItem{}, pgtype.Text{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := store.GetMenuItemForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.MenuItem{}, pgtype.Text{}, ErrMenuItemNotFound
		}
		return database.MenuItem{}, pgtype.Text{}, fmt.Errorf("get menu item: %w", err)
	}

	params := database.UpdateMenuItemParams{
		ID:        id,
		Name:      current.Name,
		UnitPrice: current.UnitPrice,
		IsActive:  current.IsActive,
		PhotoPath: current.PhotoPath,
	}
	if req.Name != nil {
		params.Name = name
	}
	if req.UnitPrice != nil {
		params.UnitPrice = decimalToNumeric(price)
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	if newPhoto.Valid {
		params.PhotoPath = newPhoto
	}

	updated, err := store.UpdateMenuItem(ctx, params)
	if err != nil {
		return database.MenuItem{}, pgtype.Text{}, fmt.Errorf("update menu item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.MenuItem{}, pgtype.Text{}, fmt.Errorf("commit tx: %w", err)
	}
	return updated, current.PhotoPath, nil
}

// List returns menu items ordered by name. A nil active returns all items.
func (s *MenuService) List(ctx context.Context, active *bool) ([]domain.MenuItem, error) {
	filter := pgtype.Bool{}
	if active != nil {
		filter = pgtype.Bool{Bool: *active, Valid: true}
	}

	rows, err := s.store.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	items := make([]domain.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = toDomainMenuItem(row)
	}
	return items, nil
}

// Delete hard-deletes a menu item. Order history keeps its snapshots; the
// photo is removed after commit and failures there are only logged.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := store.GetMenuItemForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("get menu item: %w", err)
	}

	if _, err := store.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.removePhoto(current.PhotoPath)
	return nil
}

// removePhoto is best-effort.
func (s *MenuService) removePhoto(ref pgtype.Text) {
	if !ref.Valid || ref.String == "" {
		return
	}
	if err := s.photos.Delete(ref.String); err != nil {
		log.Printf("WARN: delete photo %s: %v", ref.String, err)
	}
}

// ParseUnitPrice parses a non-negative price with at most two fractional digits.
func ParseUnitPrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Decimal{}, ErrNegativePrice
	}
	if !d.Equal(d.Round(2)) || d.GreaterThanOrEqual(maxUnitPrice) {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return d.Round(2), nil
}
