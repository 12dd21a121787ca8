// Package store is the persistence layer: every operation runs on a gorm session scoped
// to the caller's context.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-blogs/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a row does not exist or is not visible to the caller.
var ErrNotFound = errors.New("not found")

// Category filter modes accepted by NewsFilter.Category besides an exact name.
const (
	CategoryAll  = "all"
	CategoryNone = "no_category"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn against a Store bound to a single transaction. Returning an
// error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.conn(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// UserExists backs the session verifier.
func (s *Store) UserExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────────────────

// Categories returns every category ordered by name.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.conn(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := s.conn(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// EnsureCategory returns the category called name, inserting it first when absent.
// The insert relies on the unique index on name, so concurrent callers end up with the same row.
func (s *Store) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("empty category name")
	}
	c := models.Category{Name: name}
	err := s.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&c).Error
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return s.CategoryByName(ctx, name)
}

// ─────────────────────────────────────────────────────────────────────────────
// News
// ─────────────────────────────────────────────────────────────────────────────

// NewsFilter selects the owner's items by ready flag and category mode
// ("", all, no_category or an exact category name).
type NewsFilter struct {
	OwnerID  uint
	Ready    bool
	Category string
}

func (s *Store) CreateNews(ctx context.Context, n *models.News) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(n).Error; err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// SaveNews writes every column of n. Associations are not touched: CategoryID is authoritative.
// It never inserts: a row deleted since n was loaded yields ErrNotFound.
func (s *Store) SaveNews(ctx context.Context, n *models.News) error {
	res := s.conn(ctx).Model(n).Select("*").Omit("id", clause.Associations).
		Where("user_id = ?", n.UserID).Updates(n)
	if res.Error != nil {
		return fmt.Errorf("save news: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNews(ctx context.Context, n *models.News) error {
	res := s.conn(ctx).Where("user_id = ?", n.UserID).Delete(&models.News{}, n.ID)
	if res.Error != nil {
		return fmt.Errorf("delete news: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnedNews loads news id only if it belongs to owner.
func (s *Store) OwnedNews(ctx context.Context, owner, id uint) (*models.News, error) {
	var n models.News
	err := s.conn(ctx).Preload("Category").
		Where("id = ? AND user_id = ?", id, owner).
		First(&n).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

// ListNews returns the owner's items matching f, newest first.
func (s *Store) ListNews(ctx context.Context, f NewsFilter) ([]models.News, error) {
	q := s.conn(ctx).Preload("Category").
		Where("user_id = ? AND is_ready = ?", f.OwnerID, f.Ready)
	q, err := s.categoryScope(ctx, q, f.Category)
	if err != nil {
		return nil, err
	}
	var out []models.News
	if err := q.Order("created_date DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// PublicNews returns every item shared with anonymous visitors, across owners.
func (s *Store) PublicNews(ctx context.Context) ([]models.News, error) {
	var out []models.News
	err := s.conn(ctx).Preload("Category").Preload("User").
		Where("is_private = ?", true).
		Order("created_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) categoryScope(ctx context.Context, q *gorm.DB, mode string) (*gorm.DB, error) {
	switch mode {
	case "", CategoryAll:
		return q, nil
	case CategoryNone:
		return q.Where("category_id IS NULL"), nil
	}
	c, err := s.CategoryByName(ctx, mode)
	if errors.Is(err, ErrNotFound) {
		return q.Where("1 = 0"), nil
	}
	if err != nil {
		return nil, err
	}
	return q.Where("category_id = ?", c.ID), nil
}
