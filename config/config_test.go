package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frosts/permafrost/compile"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".permafrostrc"), `{"publicAlias": "lib"}`)
	nested := filepath.Join(root, "scripts", "monthly")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("config not found")
	}
	if path != filepath.Join(root, ".permafrostrc") {
		t.Errorf("path = %q", path)
	}
	if cfg.PublicAlias != "lib" {
		t.Errorf("PublicAlias = %q, want lib", cfg.PublicAlias)
	}
}

func TestLoad_Preference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "permafrost.json"), `{"selfKeyword": "self"}`)
	writeFile(t, filepath.Join(root, ".permafrostrc"), `{"selfKeyword": "me"}`)

	cfg, _, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SelfKeyword != "self" {
		t.Errorf("SelfKeyword = %q, want permafrost.json to win", cfg.SelfKeyword)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permafrost.yaml")
	writeFile(t, path, `namespaceMarker: namespace lib
publicAlias: lib
reservedFields: [rows, headers]
rootAliases:
  merge_all: [concat]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		NamespaceMarker: "namespace lib",
		PublicAlias:     "lib",
		ReservedFields:  []string{"rows", "headers"},
		RootAliases:     map[string][]string{"merge_all": {"concat"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permafrost.json")
	writeFile(t, path, `{"publicAlias": 3}`)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected a decoding error")
	}
}

func TestApply(t *testing.T) {
	cfg := &Config{
		NamespaceMarker: "namespace lib",
		PublicAlias:     "lib",
		ReservedFields:  []string{"rows"},
		RootAliases:     map[string][]string{"merge_all": {"concat"}},
		GenericMethods:  map[string]string{"map": "map<U>"},
	}

	got := cfg.Apply(compile.DefaultDialect())

	want := compile.DefaultDialect()
	want.NamespaceMarker = "namespace lib"
	want.PublicAlias = "lib"
	want.ReservedFields = []string{"rows"}
	want.RootAliases = map[string][]string{
		"combine_dfs": {"concat_all"},
		"merge_all":   {"concat"},
	}
	want.GenericMethods = map[string]string{
		"apply": "apply<T>",
		"map":   "map<U>",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_Nil(t *testing.T) {
	var cfg *Config
	if diff := cmp.Diff(compile.DefaultDialect(), cfg.Apply(compile.DefaultDialect())); diff != "" {
		t.Errorf("nil config changed the dialect (-want +got):\n%s", diff)
	}
}
