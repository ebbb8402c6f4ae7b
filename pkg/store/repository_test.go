package store_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForm(id, name string) model.Form {
	return model.Form{
		ID:     id,
		Name:   name,
		Fields: []model.Field{model.NewField(model.FieldTypeText, 1)},
	}
}

func TestRepositoryUpsertListGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := store.NewRepository(store.NewMemoryBlobStore())

	forms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)

	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "First")))
	require.NoError(t, repo.Upsert(ctx, sampleForm("b", "Second")))
	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "First renamed")))

	forms, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "First renamed", forms[0].Name, "upsert keeps position")
	assert.Equal(t, "Second", forms[1].Name)

	got, ok, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Second", got.Name)

	_, ok, err = repo.Get(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := store.NewRepository(store.NewMemoryBlobStore())
	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "Original")))

	got, ok, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	got.Fields[0].Label = "Mutated"

	again, _, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Text Input 1", again.Fields[0].Label)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	blobs := store.NewMemoryBlobStore()
	repo := store.NewRepository(blobs)
	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "A")))
	require.NoError(t, repo.Upsert(ctx, sampleForm("b", "B")))

	removed, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	forms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "b", forms[0].ID)
}

func TestRepositoryCorruptBlobReadsAsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	blobs := store.NewMemoryBlobStore()
	require.NoError(t, blobs.Put(ctx, store.DefaultKey, []byte(`{not json`)))
	repo := store.NewRepository(blobs)

	forms, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)

	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "Recovered")))
	data, err := blobs.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Recovered"`)
}

func TestRepositoryCustomKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	blobs := store.NewMemoryBlobStore()
	repo := store.NewRepository(blobs, store.WithKey("custom"))
	require.NoError(t, repo.Upsert(ctx, sampleForm("a", "A")))

	_, err := blobs.Get(ctx, "custom")
	require.NoError(t, err)
	_, err = blobs.Get(ctx, store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepositoryUpsertRequiresID(t *testing.T) {
	t.Parallel()
	repo := store.NewRepository(store.NewMemoryBlobStore())
	assert.Error(t, repo.Upsert(context.Background(), sampleForm("", "No id")))
}
