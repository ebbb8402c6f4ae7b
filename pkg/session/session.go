package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/derived"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Session owns the form being edited, the field id counter and the live
// preview values. It is single-owner state and is not safe for concurrent
// use.
type Session struct {
	repo     *store.Repository
	engine   *derived.Engine
	notifier Notifier
	logger   hclog.Logger
	newID    func() string
	clock    func() time.Time

	form    model.Form
	counter int
	values  map[int]any
}

// Option configures a Session.
type Option func(*Session)

// WithEngine overrides the derived field engine.
func WithEngine(engine *derived.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithNotifier routes user-facing notifications to n.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the generator used to assign form ids on first
// save.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the clock used for form timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New returns a session holding an empty form.
func New(repo *store.Repository, opts ...Option) *Session {
	s := &Session{
		repo:     repo,
		notifier: nopNotifier{},
		logger:   hclog.NewNullLogger(),
		newID:    uuid.NewString,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.engine == nil {
		s.engine = derived.New(derived.WithLogger(s.logger.Named("derived")))
	}
	s.CreateNew()
	return s
}

// Form returns a deep copy of the form being edited.
func (s *Session) Form() model.Form {
	clone, err := s.form.Clone()
	if err != nil {
		s.logger.Warn("clone form failed", "error", err)
		return s.form
	}
	return clone
}

// Counter returns the highest field id handed out so far.
func (s *Session) Counter() int { return s.counter }

// Engine returns the derived field engine used by the preview.
func (s *Session) Engine() *derived.Engine { return s.engine }

// CreateNew discards the current form and starts an empty one.
func (s *Session) CreateNew() {
	s.form = model.Form{Fields: []model.Field{}}
	s.counter = 0
	s.values = make(map[int]any)
}

// Clear empties the builder, notifying the user.
func (s *Session) Clear() {
	s.CreateNew()
	s.notifier.Notify(LevelInfo, MessageFormCleared)
}

// Save persists the current form under name and returns its id. The first
// save assigns the id and creation time; later saves keep both and refresh
// the update time.
func (s *Session) Save(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notifier.Notify(LevelError, MessageEmptyName)
		return "", ErrEmptyName
	}

	form, err := s.form.Clone()
	if err != nil {
		return "", err
	}
	now := s.clock()
	form.Name = name
	if form.ID == "" {
		form.ID = s.newID()
	}
	if form.CreatedAt == nil {
		created := now
		form.CreatedAt = &created
	}
	form.UpdatedAt = &now

	if err := s.repo.Upsert(ctx, form); err != nil {
		s.logger.Error("save form failed", "form", form.ID, "error", err)
		return "", fmt.Errorf("session: save %q: %w", name, err)
	}
	s.form.ID = form.ID
	s.form.Name = form.Name
	s.form.CreatedAt = form.CreatedAt
	s.form.UpdatedAt = form.UpdatedAt
	s.logger.Debug("form saved", "form", form.ID, "fields", len(form.Fields))
	s.notifier.Notify(LevelSuccess, MessageFormSaved)
	return form.ID, nil
}

// Load replaces the current form with a copy of the saved form id. It
// reports false and leaves the session untouched when no such form exists.
func (s *Session) Load(ctx context.Context, id string) (bool, error) {
	form, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("session: load %q: %w", id, err)
	}
	if !ok {
		return false, nil
	}
	if form.Fields == nil {
		form.Fields = []model.Field{}
	}
	s.form = form
	s.counter = form.MaxFieldID()
	s.values = defaultValues(form)
	s.logger.Debug("form loaded", "form", id, "fields", len(form.Fields))
	return true, nil
}

// Delete removes the saved form id. Deleting an unknown id is a no-op.
func (s *Session) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("session: delete %q: %w", id, err)
	}
	if removed {
		s.notifier.Notify(LevelSuccess, MessageFormDeleted)
	}
	return removed, nil
}

// List returns copies of every saved form.
func (s *Session) List(ctx context.Context) ([]model.Form, error) {
	forms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("session: list: %w", err)
	}
	return forms, nil
}

// Import replaces the current form with form as if it had just been built.
// The form is treated as unsaved: its id and timestamps are cleared.
func (s *Session) Import(form model.Form) error {
	if err := model.ValidateGraph(form); err != nil {
		return err
	}
	clone, err := form.Clone()
	if err != nil {
		return err
	}
	clone.ID = ""
	clone.CreatedAt = nil
	clone.UpdatedAt = nil
	if clone.Fields == nil {
		clone.Fields = []model.Field{}
	}
	for idx := range clone.Fields {
		clone.Fields[idx] = sanitizeField(clone.Fields[idx])
	}
	s.form = clone
	s.counter = clone.MaxFieldID()
	s.values = defaultValues(clone)
	return nil
}

func defaultValues(form model.Form) map[int]any {
	values := make(map[int]any, len(form.Fields))
	for _, field := range form.Fields {
		if field.IsDerived() {
			continue
		}
		values[field.ID] = field.DefaultValue
	}
	return values
}
