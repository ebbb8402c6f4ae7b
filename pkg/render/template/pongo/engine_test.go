package pongo_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbuilder/pkg/render/template/pongo"
)

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|formbuilder_shout }}")},
	}
	engine, err := pongo.New(pongo.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRender(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	result, err := engine.Render("hello", map[string]any{"name": "Ada"}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada" || out.String() != result {
		t.Fatalf("unexpected output %q / %q", result, out.String())
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("formbuilder_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.Render("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
	if err := engine.RegisterFilter("formbuilder_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngineRenderStringStructData(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Title string `json:"title"`
	}{Title: "Signup"}

	result, err := engine.RenderString("[{{ title }}]", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "[Signup]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNewRequiresFS(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template fs")
	}
}
