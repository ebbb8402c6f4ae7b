package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/derived"
	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// Today is the fixed date fixture sessions compute ages against.
var Today = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// FixturePath resolves name inside the shared testdata directory.
func FixturePath(name string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", name)
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// LoadForm reads a YAML or JSON form fixture. Testing helpers fail the test
// on error to keep callers concise.
func LoadForm(t *testing.T, name string) model.Form {
	t.Helper()

	form, err := LoadFormFromPath(FixturePath(name))
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadFormFromPath returns a validated form without requiring testing.T.
func LoadFormFromPath(path string) (model.Form, error) {
	if path == "" {
		return model.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("testsupport: read %s: %w", path, err)
	}
	form, err := export.UnmarshalYAML(data)
	if err != nil {
		return model.Form{}, fmt.Errorf("testsupport: decode %s: %w", path, err)
	}
	return form, nil
}

// NewSession returns a session over an in-memory store whose derived engine
// uses Today as its clock. Extra options are applied after the defaults.
func NewSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()

	base := []session.Option{
		session.WithEngine(derived.New(derived.WithClock(FixedClock(Today)))),
		session.WithClock(FixedClock(Today)),
	}
	return session.New(store.NewRepository(store.NewMemoryBlobStore()), append(base, opts...)...)
}

// SessionWithForm imports the named fixture into a fresh session.
func SessionWithForm(t *testing.T, name string, opts ...session.Option) *session.Session {
	t.Helper()

	s := NewSession(t, opts...)
	if err := s.Import(LoadForm(t, name)); err != nil {
		t.Fatalf("import %s: %v", name, err)
	}
	return s
}

// Fill sets live values by field label, failing on unknown labels or
// rejected answers.
func Fill(t *testing.T, s *session.Session, values map[string]any) {
	t.Helper()

	form := s.Form()
	for label, value := range values {
		id := -1
		for _, field := range form.Fields {
			if field.Label == label {
				id = field.ID
				break
			}
		}
		if id < 0 {
			t.Fatalf("fill: no field labelled %q", label)
		}
		update, err := s.SetValue(id, value)
		if err != nil {
			t.Fatalf("fill %q: %v", label, err)
		}
		if !update.Validation.Valid {
			t.Fatalf("fill %q: %s", label, update.Validation.Message)
		}
	}
}

// MustReadGolden reads a golden file.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	return out, buf.String()
}
