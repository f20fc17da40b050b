package analyzer

import (
	"path/filepath"
	"testing"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"build/", "build", true},
		{"build/", "build/out.ts", true},
		{"build/", "src/build/out.ts", true},
		{"build/", "builder/out.ts", false},
		{"/drafts", "drafts/a.osts", true},
		{"/drafts", "src/drafts/a.osts", false},
		{"*.bak.ts", "src/a.bak.ts", true},
		{"*.bak.ts", "src/a.ts", false},
		{"scratch*", "scratch_1.osts", true},
		{"docs/*.osts", "docs/a.osts", true},
		{"docs/*.osts", "team/docs/a.osts", true},
		{"docs/*.osts", "docs/a/b.osts", false},
	}

	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestShouldIgnore_Negation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.osts\n!keep.osts\n")

	gp := NewGitignoreParser(root)

	if !gp.ShouldIgnore(filepath.Join(root, "a.osts")) {
		t.Error("a.osts should be ignored")
	}
	if gp.ShouldIgnore(filepath.Join(root, "keep.osts")) {
		t.Error("keep.osts is negated")
	}
	if gp.ShouldIgnore(filepath.Join(root, "a.ts")) {
		t.Error("a.ts does not match")
	}
	if gp.ShouldIgnore(root) {
		t.Error("the root itself is never ignored")
	}
}

func TestIsOutput(t *testing.T) {
	if !isOutput("dir/frosts.min.osts", ".min") {
		t.Error("frosts.min.osts is an output")
	}
	if isOutput("dir/frosts.osts", ".min") {
		t.Error("frosts.osts is an input")
	}
	if isOutput("dir/frosts.min.osts", "") {
		t.Error("an empty suffix marks nothing")
	}
}
