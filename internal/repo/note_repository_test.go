package repo

import (
	"DataKeeper/internal/model"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNoteRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()

	n := &model.Note{
		ID:      uuid.NewString(),
		Title:   "Shopping",
		Content: "milk, bread",
		Folders: "home",
		Tags:    "errands",
	}
	assert.NoError(t, r.Create(ctx, n))

	got, err := r.GetByID(ctx, n.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Shopping", got.Title)

	affected, err := r.Update(ctx, n.ID, map[string]any{"content": "milk, bread, eggs"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err = r.GetByID(ctx, n.ID)
	assert.NoError(t, err)
	assert.Equal(t, "milk, bread, eggs", got.Content)

	affected, err = r.Delete(ctx, n.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = r.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_ListSearchesContent(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()

	seed := []model.Note{
		{ID: uuid.NewString(), Title: "Meeting notes", Subtitle: "weekly", Content: "discussed roadmap"},
		{ID: uuid.NewString(), Title: "Ideas", Content: "a roadmap for the garden"},
		{ID: uuid.NewString(), Title: "Recipes", Content: "pancakes"},
	}
	for i := range seed {
		assert.NoError(t, r.Create(ctx, &seed[i]))
	}

	// поиск затрагивает заголовок, подзаголовок и тело заметки
	_, total, err := r.List(ctx, model.ListParams{Search: "roadmap"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	rows, total, err := r.List(ctx, model.ListParams{Search: "WEEKLY"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Meeting notes", rows[0].Title)
}
