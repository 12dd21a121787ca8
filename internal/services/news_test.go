package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/diewo77/go-blogs/internal/models"
	"github.com/diewo77/go-blogs/internal/policy"
	"github.com/diewo77/go-blogs/internal/storage"
	"github.com/diewo77/go-blogs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	svc   *NewsService
	store *store.Store
	files *storage.Local
	db    *gorm.DB
	ann   *models.User
	bob   *models.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Theme{}, &models.News{}))
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	st := store.New(db)
	f := &fixture{svc: NewNewsService(st, files, policy.NewGate()), store: st, files: files, db: db}
	ctx := context.Background()
	f.ann = &models.User{Name: "ann", Email: "ann@example.com", HashedPassword: "x"}
	f.bob = &models.User{Name: "bob", Email: "bob@example.com", HashedPassword: "x"}
	require.NoError(t, st.CreateUser(ctx, f.ann))
	require.NoError(t, st.CreateUser(ctx, f.bob))
	return f
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	rc, err := f.files.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestCreateWithFileAndCategory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{
		Title:        "Hello",
		CategoryName: "Sport",
		File:         &Upload{Filename: "my report.pdf", Body: strings.NewReader("pdf")},
	})
	require.NoError(t, err)
	assert.Equal(t, "my_report.pdf", n.FileName)
	assert.Equal(t, "pdf", f.read(t, "my_report.pdf"))

	got, err := f.svc.Get(ctx, f.ann.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sport", got.CategoryName())

	// second use of the name reuses the row
	_, err = f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "Again", CategoryName: "Sport"})
	require.NoError(t, err)
	var count int64
	require.NoError(t, f.db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateIgnoresDisallowedFile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, name := range []string{"virus.exe", "файл.txt.exe", "текст"} {
		n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "x", File: &Upload{Filename: name, Body: strings.NewReader("x")}})
		require.NoError(t, err)
		assert.False(t, n.HasFile(), name)
	}
}

func TestOwnershipIsNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "mine", File: &Upload{Filename: "a.txt", Body: strings.NewReader("a")}})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.bob.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Update(ctx, f.bob.ID, n.ID, NewsInput{Title: "stolen"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.bob.ID, n.ID), ErrNotFound)
	assert.ErrorIs(t, f.svc.SetReady(ctx, f.bob.ID, n.ID, true), ErrNotFound)
	_, _, err = f.svc.OpenAttachment(ctx, f.bob.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// nothing changed for the owner
	got, err := f.svc.Get(ctx, f.ann.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.False(t, got.IsReady)
	assert.Equal(t, "a", f.read(t, "a.txt"))
}

func TestUpdateReplacesFileAndClearsCategory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{
		Title: "v1", CategoryName: "Sport",
		File: &Upload{Filename: "old.txt", Body: strings.NewReader("old")},
	})
	require.NoError(t, err)

	// no new file keeps the old one
	_, err = f.svc.Update(ctx, f.ann.ID, n.ID, NewsInput{Title: "v2", CategoryName: "Sport"})
	require.NoError(t, err)
	assert.Equal(t, "old", f.read(t, "old.txt"))

	updated, err := f.svc.Update(ctx, f.ann.ID, n.ID, NewsInput{
		Title: "v3",
		File:  &Upload{Filename: "new.txt", Body: strings.NewReader("new")},
	})
	require.NoError(t, err)
	assert.Equal(t, "new.txt", updated.FileName)
	_, err = f.files.Open(ctx, "old.txt")
	assert.ErrorIs(t, err, storage.ErrNotExist)

	got, err := f.svc.Get(ctx, f.ann.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "v3", got.Title)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, "new.txt", got.FileName)
}

func TestReadyRoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "task"})
	require.NoError(t, err)

	list := func(ready bool) []models.News {
		items, err := f.svc.List(ctx, f.ann.ID, ready, store.CategoryAll)
		require.NoError(t, err)
		return items
	}
	require.Len(t, list(false), 1)
	require.Empty(t, list(true))

	require.NoError(t, f.svc.SetReady(ctx, f.ann.ID, n.ID, true))
	assert.Empty(t, list(false))
	assert.Len(t, list(true), 1)

	require.NoError(t, f.svc.SetReady(ctx, f.ann.ID, n.ID, false))
	assert.Len(t, list(false), 1)
	assert.Empty(t, list(true))
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "bye", File: &Upload{Filename: "bye.png", Body: strings.NewReader("png")}})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.ann.ID, n.ID))
	_, err = f.svc.Get(ctx, f.ann.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.files.Open(ctx, "bye.png")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestAnonymousListSharedOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "shared", IsPrivate: true, CategoryName: "Sport"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.bob.ID, NewsInput{Title: "own"})
	require.NoError(t, err)

	items, err := f.svc.List(ctx, 0, false, "no_category")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "shared", items[0].Title)
}

func TestOpenAttachmentAndUpload(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "f", File: &Upload{Filename: "doc.txt", Body: strings.NewReader("text")}})
	require.NoError(t, err)
	plain, err := f.svc.Create(ctx, f.ann.ID, NewsInput{Title: "nofile"})
	require.NoError(t, err)

	rc, name, err := f.svc.OpenAttachment(ctx, f.ann.ID, n.ID)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "doc.txt", name)

	_, _, err = f.svc.OpenAttachment(ctx, f.ann.ID, plain.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// uploads are readable by any signed-in user
	rc, err = f.svc.OpenUpload(ctx, f.bob.ID, "doc.txt")
	require.NoError(t, err)
	rc.Close()

	for _, bad := range []string{"../doc.txt", "..", "", "missing.txt"} {
		_, err = f.svc.OpenUpload(ctx, f.bob.ID, bad)
		assert.True(t, errors.Is(err, ErrNotFound), "name %q: %v", bad, err)
	}
	_, err = f.svc.OpenUpload(ctx, 0, "doc.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	// file removed behind our back
	require.NoError(t, f.files.Remove(ctx, "doc.txt"))
	_, _, err = f.svc.OpenAttachment(ctx, f.ann.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
