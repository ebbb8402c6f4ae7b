package store_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStores(t *testing.T) {
	t.Parallel()

	stores := map[string]func() store.BlobStore{
		"memory": func() store.BlobStore { return store.NewMemoryBlobStore() },
		"file": func() store.BlobStore {
			return store.NewFileBlobStore(afero.NewMemMapFs(), "/data/forms")
		},
	}

	for name, factory := range stores {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			blobs := factory()

			_, err := blobs.Get(ctx, "missing")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, blobs.Put(ctx, "forms", []byte(`[1]`)))
			require.NoError(t, blobs.Put(ctx, "forms", []byte(`[2]`)))

			data, err := blobs.Get(ctx, "forms")
			require.NoError(t, err)
			assert.Equal(t, `[2]`, string(data))

			assert.ErrorIs(t, blobs.Put(ctx, "", []byte(`x`)), store.ErrInvalidKey)
		})
	}
}

func TestFileBlobStoreLayout(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	blobs := store.NewFileBlobStore(fs, "/data")
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "formBuilder_forms", []byte(`[]`)))

	data, err := afero.ReadFile(fs, "/data/formBuilder_forms.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")

	_, err = blobs.Get(ctx, "../escape")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}

func TestBlobStoreHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blobs := store.NewMemoryBlobStore()
	assert.ErrorIs(t, blobs.Put(ctx, "k", nil), context.Canceled)
	_, err := blobs.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
