package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/hashicorp/go-hclog"
)

// DefaultKey is the blob key holding the saved form collection.
const DefaultKey = "formBuilder_forms"

// Repository persists the collection of saved forms as a single JSON array
// under one blob key. Every mutation rewrites the whole collection.
type Repository struct {
	blobs  BlobStore
	key    string
	logger hclog.Logger
	mu     sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the blob key.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithLogger sets the logger used to report corrupt collections.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository wraps blobs.
func NewRepository(blobs BlobStore, opts ...Option) *Repository {
	r := &Repository{
		blobs:  blobs,
		key:    DefaultKey,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Key returns the blob key the collection lives under.
func (r *Repository) Key() string { return r.key }

// List returns a copy of every saved form in insertion order.
func (r *Repository) List(ctx context.Context) ([]model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	forms, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.CloneForms(forms)
}

// Get returns a copy of the saved form with the given id.
func (r *Repository) Get(ctx context.Context, id string) (model.Form, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	forms, err := r.load(ctx)
	if err != nil {
		return model.Form{}, false, err
	}
	for _, form := range forms {
		if form.ID == id {
			clone, err := form.Clone()
			if err != nil {
				return model.Form{}, false, err
			}
			return clone, true, nil
		}
	}
	return model.Form{}, false, nil
}

// Upsert replaces the saved form with the same id in place, or appends form
// when the id is new.
func (r *Repository) Upsert(ctx context.Context, form model.Form) error {
	if form.ID == "" {
		return fmt.Errorf("store: upsert: form has no id")
	}
	stored, err := form.Clone()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	forms, err := r.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for idx := range forms {
		if forms[idx].ID == form.ID {
			forms[idx] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		forms = append(forms, stored)
	}
	return r.write(ctx, forms)
}

// Delete removes the saved form with the given id. It reports false and
// leaves storage untouched when no such form exists.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	forms, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	kept := forms[:0]
	for _, form := range forms {
		if form.ID != id {
			kept = append(kept, form)
		}
	}
	if len(kept) == len(forms) {
		return false, nil
	}
	return true, r.write(ctx, kept)
}

func (r *Repository) load(ctx context.Context) ([]model.Form, error) {
	data, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Form{}, nil
		}
		return nil, err
	}
	var forms []model.Form
	if err := json.Unmarshal(data, &forms); err != nil {
		corrupt := &StorageCorruptionError{Key: r.key, Err: err}
		r.logger.Error("error loading saved forms", "key", r.key, "error", corrupt)
		return []model.Form{}, nil
	}
	if forms == nil {
		forms = []model.Form{}
	}
	return forms, nil
}

func (r *Repository) write(ctx context.Context, forms []model.Form) error {
	data, err := json.Marshal(forms)
	if err != nil {
		return fmt.Errorf("store: encode forms: %w", err)
	}
	if err := r.blobs.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", r.key, err)
	}
	return nil
}
