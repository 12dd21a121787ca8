package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/diewo77/go-blogs/internal/gate"
	"github.com/diewo77/go-blogs/internal/models"
	"github.com/diewo77/go-blogs/internal/policy"
	"github.com/diewo77/go-blogs/internal/storage"
	"github.com/diewo77/go-blogs/internal/store"
)

// ErrNotFound covers missing rows, rows owned by someone else and missing files.
var ErrNotFound = errors.New("not found")

// Upload is a submitted file with its client-side name.
type Upload struct {
	Filename string
	Body     io.Reader
}

// NewsInput carries validated form values.
type NewsInput struct {
	Title        string
	Content      string
	IsPrivate    bool
	CategoryName string
	DueDate      *time.Time
	File         *Upload
}

type NewsService struct {
	store *store.Store
	files storage.Storage
	gate  *gate.Gate[uint]
}

func NewNewsService(st *store.Store, files storage.Storage, g *gate.Gate[uint]) *NewsService {
	return &NewsService{store: st, files: files, gate: g}
}

// mapErr folds ownership and existence failures into ErrNotFound so callers answer 404.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, gate.ErrUnauthorized), errors.Is(err, storage.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// List returns the items for a listing page. Anonymous visitors (userID 0) get the
// shared items of every owner and the category filter is ignored.
func (s *NewsService) List(ctx context.Context, userID uint, ready bool, category string) ([]models.News, error) {
	if userID == 0 {
		return s.store.PublicNews(ctx)
	}
	if err := s.gate.Authorize(ctx, userID, gate.ActionList, policy.News, nil); err != nil {
		return nil, mapErr(err)
	}
	return s.store.ListNews(ctx, store.NewsFilter{OwnerID: userID, Ready: ready, Category: category})
}

func (s *NewsService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories(ctx)
}

// Get loads an item owned by userID.
func (s *NewsService) Get(ctx context.Context, userID, id uint) (*models.News, error) {
	return s.owned(ctx, userID, id, gate.ActionView)
}

func (s *NewsService) owned(ctx context.Context, userID, id uint, action gate.Action) (*models.News, error) {
	n, err := s.store.OwnedNews(ctx, userID, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := s.gate.Authorize(ctx, userID, action, policy.News, n); err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

// acceptedName returns the stored name for an upload, or "" when it must be ignored.
func acceptedName(u *Upload) string {
	if u == nil || !storage.AllowedFile(u.Filename) {
		return ""
	}
	return storage.SecureFilename(u.Filename)
}

// Create stores the attachment (if accepted), then links the category and inserts the
// row in one transaction.
func (s *NewsService) Create(ctx context.Context, userID uint, in NewsInput) (*models.News, error) {
	if err := s.gate.Authorize(ctx, userID, gate.ActionCreate, policy.News, nil); err != nil {
		return nil, mapErr(err)
	}
	n := &models.News{UserID: userID}
	apply(n, in)

	if name := acceptedName(in.File); name != "" {
		if err := s.files.Save(ctx, name, in.File.Body); err != nil {
			return nil, fmt.Errorf("save attachment: %w", err)
		}
		n.FileName = name
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := linkCategory(ctx, tx, n, in.CategoryName); err != nil {
			return err
		}
		return tx.CreateNews(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "news created", "news_id", n.ID, "user_id", userID, "file", n.FileName)
	return n, nil
}

// Update applies in to an owned item. An accepted new file replaces the previous one,
// which is removed from storage first. An empty category name clears the link.
func (s *NewsService) Update(ctx context.Context, userID, id uint, in NewsInput) (*models.News, error) {
	n, err := s.owned(ctx, userID, id, gate.ActionUpdate)
	if err != nil {
		return nil, err
	}
	apply(n, in)

	if name := acceptedName(in.File); name != "" {
		if n.HasFile() {
			if err := s.files.Remove(ctx, n.FileName); err != nil {
				return nil, fmt.Errorf("remove previous attachment: %w", err)
			}
		}
		if err := s.files.Save(ctx, name, in.File.Body); err != nil {
			return nil, fmt.Errorf("save attachment: %w", err)
		}
		n.FileName = name
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := linkCategory(ctx, tx, n, in.CategoryName); err != nil {
			return err
		}
		return tx.SaveNews(ctx, n)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

// Delete removes the attachment, then the row.
func (s *NewsService) Delete(ctx context.Context, userID, id uint) error {
	n, err := s.owned(ctx, userID, id, gate.ActionDelete)
	if err != nil {
		return err
	}
	if n.HasFile() {
		if err := s.files.Remove(ctx, n.FileName); err != nil {
			return fmt.Errorf("remove attachment: %w", err)
		}
	}
	if err := s.store.DeleteNews(ctx, n); err != nil {
		return mapErr(err)
	}
	slog.InfoContext(ctx, "news deleted", "news_id", n.ID, "user_id", userID)
	return nil
}

// SetReady flips the ready flag of an owned item.
func (s *NewsService) SetReady(ctx context.Context, userID, id uint, ready bool) error {
	n, err := s.owned(ctx, userID, id, gate.ActionUpdate)
	if err != nil {
		return err
	}
	n.IsReady = ready
	return mapErr(s.store.SaveNews(ctx, n))
}

// OpenAttachment streams the file attached to an owned item.
func (s *NewsService) OpenAttachment(ctx context.Context, userID, id uint) (io.ReadCloser, string, error) {
	n, err := s.owned(ctx, userID, id, gate.ActionDownload)
	if err != nil {
		return nil, "", err
	}
	if !n.HasFile() {
		return nil, "", fmt.Errorf("%w: news %d has no file", ErrNotFound, id)
	}
	rc, err := s.files.Open(ctx, n.FileName)
	if err != nil {
		return nil, "", mapErr(err)
	}
	return rc, n.FileName, nil
}

// OpenUpload streams a stored file by name for any signed-in user.
func (s *NewsService) OpenUpload(ctx context.Context, userID uint, name string) (io.ReadCloser, error) {
	if err := s.gate.Authorize(ctx, userID, gate.ActionDownload, policy.Upload, nil); err != nil {
		return nil, mapErr(err)
	}
	if name == "" || name == "." || name == ".." || path.Base(name) != name {
		return nil, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	rc, err := s.files.Open(ctx, name)
	if err != nil {
		return nil, mapErr(err)
	}
	return rc, nil
}

func apply(n *models.News, in NewsInput) {
	n.Title = in.Title
	n.Content = in.Content
	n.IsPrivate = in.IsPrivate
	n.DueDate = in.DueDate
}

func linkCategory(ctx context.Context, tx *store.Store, n *models.News, name string) error {
	if name == "" {
		n.CategoryID = nil
		n.Category = nil
		return nil
	}
	c, err := tx.EnsureCategory(ctx, name)
	if err != nil {
		return err
	}
	n.CategoryID = &c.ID
	n.Category = c
	return nil
}
