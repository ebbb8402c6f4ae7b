package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type recorder struct {
	events []string
}

func (r *recorder) Notify(level session.Level, message string) {
	r.events = append(r.events, fmt.Sprintf("%s:%s", level, message))
}

func (r *recorder) last() string {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1]
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("form-%d", n)
	}
}

func newSession(t *testing.T, opts ...session.Option) (*session.Session, *store.Repository, *recorder) {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryBlobStore())
	rec := &recorder{}
	base := []session.Option{
		session.WithNotifier(rec),
		session.WithIDGenerator(sequentialIDs()),
	}
	return session.New(repo, append(base, opts...)...), repo, rec
}

func mustAdd(t *testing.T, s *session.Session, ft model.FieldType) model.Field {
	t.Helper()
	field, err := s.AddField(ft)
	if err != nil {
		t.Fatalf("AddField(%s): %v", ft, err)
	}
	return field
}

func TestSaveRequiresName(t *testing.T) {
	t.Parallel()

	s, repo, rec := newSession(t)
	mustAdd(t, s, model.FieldTypeText)

	_, err := s.Save(context.Background(), "   ")
	if !errors.Is(err, session.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if rec.last() != "error:Please enter a form name" {
		t.Fatalf("unexpected notification %q", rec.last())
	}
	forms, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(forms) != 0 {
		t.Fatalf("nothing should be persisted, got %d forms", len(forms))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _, rec := newSession(t)
	mustAdd(t, s, model.FieldTypeText)
	mustAdd(t, s, model.FieldTypeCheckbox)
	mustAdd(t, s, model.FieldTypeDate)

	id, err := s.Save(ctx, "  Signup  ")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.last() != "success:Form saved successfully" {
		t.Fatalf("unexpected notification %q", rec.last())
	}
	saved := s.Form()

	s.CreateNew()
	if len(s.Form().Fields) != 0 || s.Counter() != 0 {
		t.Fatalf("CreateNew should reset the builder")
	}

	ok, err := s.Load(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Load(%q) = %v, %v", id, ok, err)
	}
	loaded := s.Form()
	if loaded.Name != "Signup" {
		t.Fatalf("expected trimmed name, got %q", loaded.Name)
	}
	if diff := cmp.Diff(saved.Fields, loaded.Fields, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("fields mismatch (-saved +loaded):\n%s", diff)
	}
	if s.Counter() != 3 {
		t.Fatalf("expected counter 3, got %d", s.Counter())
	}

	next := mustAdd(t, s, model.FieldTypeNumber)
	if next.ID != 4 {
		t.Fatalf("expected id 4 after load, got %d", next.ID)
	}
}

func TestLoadedFormIsACopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, repo, _ := newSession(t)
	mustAdd(t, s, model.FieldTypeText)
	id, err := s.Save(ctx, "Copy")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load(ctx, id); err != nil {
		t.Fatalf("Load: %v", err)
	}

	field := s.Form().Fields[0]
	field.Label = "Edited"
	if _, err := s.UpdateField(field); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	stored, _, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Fields[0].Label != "Text Input 1" {
		t.Fatalf("stored form changed before re-save: %q", stored.Fields[0].Label)
	}
}

func TestLoadMissingIsNoop(t *testing.T) {
	t.Parallel()

	s, _, _ := newSession(t)
	mustAdd(t, s, model.FieldTypeText)

	ok, err := s.Load(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("Load(nope) = %v, %v", ok, err)
	}
	if len(s.Form().Fields) != 1 {
		t.Fatalf("session should be untouched")
	}
}

func TestResaveKeepsIDAndCreatedAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s, repo, _ := newSession(t, session.WithClock(clock))
	mustAdd(t, s, model.FieldTypeText)

	first, err := s.Save(ctx, "Survey")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	created := *s.Form().CreatedAt

	now = now.Add(48 * time.Hour)
	mustAdd(t, s, model.FieldTypeNumber)
	second, err := s.Save(ctx, "Survey v2")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first != second {
		t.Fatalf("re-save changed id: %q -> %q", first, second)
	}

	forms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected a single saved form, got %d", len(forms))
	}
	if !forms[0].CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %v -> %v", created, forms[0].CreatedAt)
	}
	if !forms[0].UpdatedAt.Equal(now) {
		t.Fatalf("updatedAt not refreshed: %v", forms[0].UpdatedAt)
	}
	if forms[0].Name != "Survey v2" || len(forms[0].Fields) != 2 {
		t.Fatalf("unexpected stored form %+v", forms[0])
	}
}

func TestSaveAssignsUniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := store.NewRepository(store.NewMemoryBlobStore())
	s := session.New(repo)
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		s.CreateNew()
		if _, err := s.AddField(model.FieldTypeText); err != nil {
			t.Fatalf("AddField: %v", err)
		}
		id, err := s.Save(ctx, fmt.Sprintf("Form %d", i))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}

	forms, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(forms) != 5 {
		t.Fatalf("expected 5 forms, got %d", len(forms))
	}
}

func TestDeleteRemovesFromList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _, rec := newSession(t)
	mustAdd(t, s, model.FieldTypeText)
	keep, _ := s.Save(ctx, "Keep")
	s.CreateNew()
	mustAdd(t, s, model.FieldTypeText)
	drop, _ := s.Save(ctx, "Drop")

	removed, err := s.Delete(ctx, drop)
	if err != nil || !removed {
		t.Fatalf("Delete(%q) = %v, %v", drop, removed, err)
	}
	if rec.last() != "success:Form deleted successfully" {
		t.Fatalf("unexpected notification %q", rec.last())
	}

	removed, err = s.Delete(ctx, drop)
	if err != nil || removed {
		t.Fatalf("second Delete(%q) = %v, %v", drop, removed, err)
	}

	forms, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ids := make([]string, 0, len(forms))
	for _, form := range forms {
		ids = append(ids, form.ID)
	}
	if diff := cmp.Diff([]string{keep}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestImportResetsPersistenceMetadata(t *testing.T) {
	t.Parallel()

	s, _, _ := newSession(t)
	created := time.Now()
	err := s.Import(model.Form{
		ID:        "old",
		Name:      "Imported",
		CreatedAt: &created,
		Fields: []model.Field{
			model.NewField(model.FieldTypeText, 7),
			model.NewDerivedField(9, model.DerivedConfig{DerivedType: model.DerivedTypeFullName, ParentFields: []int{7}}),
		},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	form := s.Form()
	if form.ID != "" || form.CreatedAt != nil {
		t.Fatalf("import should clear persistence metadata: %+v", form)
	}
	if s.Counter() != 9 {
		t.Fatalf("expected counter 9, got %d", s.Counter())
	}

	cyclic := model.Form{Fields: []model.Field{
		model.NewDerivedField(1, model.DerivedConfig{ParentFields: []int{1}}),
	}}
	if err := s.Import(cyclic); !errors.Is(err, model.ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}
