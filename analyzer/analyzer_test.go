package analyzer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frosts/permafrost/compile"
	"github.com/frosts/permafrost/osts"
	"github.com/google/go-cmp/cmp"
)

const script = `namespace fr {
    export class DataFrame {
        constructor(data: number[]) {
            this.values = data;
        }

        a(): DataFrame {
            return this.b();
        }

        b(): DataFrame {
            return this;
        }

        unused(): DataFrame {
            return this.a();
        }
    }
}

function main() {
    let df = new fr.DataFrame([1]);
    df.a();
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func container(t *testing.T, body string) string {
	t.Helper()
	s := &osts.Script{Version: "0.3.0", Body: body, Description: "monthly totals"}
	data, err := s.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestShrinkFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frosts.ts")
	writeFile(t, path, script)

	report := New(Options{}).ShrinkFile(context.Background(), path, "")
	if report.Err != nil {
		t.Fatal(report.Err)
	}

	wantOutput := filepath.Join(dir, "frosts.min.ts")
	if report.OutputPath != wantOutput {
		t.Errorf("OutputPath = %q, want %q", report.OutputPath, wantOutput)
	}
	got := readFile(t, wantOutput)
	if got != report.Result.Output {
		t.Error("written file differs from the compiled output")
	}
	if strings.Contains(got, "unused()") {
		t.Errorf("unused method survived:\n%s", got)
	}
	if diff := cmp.Diff([]string{"unused"}, report.Result.Removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
	if report.Saved() <= 0 {
		t.Errorf("Saved() = %d", report.Saved())
	}
}

func TestShrinkFile_Container(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frosts.osts")
	writeFile(t, path, container(t, script))

	report := New(Options{}).ShrinkFile(context.Background(), path, "")
	if report.Err != nil {
		t.Fatal(report.Err)
	}

	out, err := osts.ReadFile(filepath.Join(dir, "frosts.min.osts"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Description != "monthly totals" {
		t.Errorf("Description = %q, container fields should be kept", out.Description)
	}
	if out.Body != report.Result.Output {
		t.Error("container body differs from the compiled output")
	}
}

func TestShrinkFile_Body(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frosts.osts")
	writeFile(t, path, container(t, script))

	report := New(Options{Body: true}).ShrinkFile(context.Background(), path, "")
	if report.Err != nil {
		t.Fatal(report.Err)
	}
	if got := readFile(t, filepath.Join(dir, "frosts.min.ts")); got != report.Result.Output {
		t.Errorf("plain output mismatch:\n%s", got)
	}
}

func TestShrinkFile_Stdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frosts.ts")
	writeFile(t, path, script)

	var stdout bytes.Buffer
	report := New(Options{Stdout: &stdout}).ShrinkFile(context.Background(), path, "-")
	if report.Err != nil {
		t.Fatal(report.Err)
	}
	if report.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty", report.OutputPath)
	}
	if stdout.String() != report.Result.Output {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestShrinkFile_Check(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frosts.ts")
	writeFile(t, path, script)

	report := New(Options{Check: true}).ShrinkFile(context.Background(), path, "")
	if report.Err != nil {
		t.Fatal(report.Err)
	}
	if len(report.Issues) != 0 {
		t.Errorf("unexpected syntax issues: %v", report.Issues)
	}
	if len(report.MissingMethods) != 0 {
		t.Errorf("unexpected missing methods: %v", report.MissingMethods)
	}
	if report.Failed() {
		t.Error("report should not fail")
	}
}

func TestShrinkFile_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ts")
	writeFile(t, path, "namespace fr {\n    export class DataFrame {\n")

	report := New(Options{}).ShrinkFile(context.Background(), path, "")
	if !errors.Is(report.Err, compile.ErrUnbalancedNamespace) {
		t.Errorf("Err = %v, want %v", report.Err, compile.ErrUnbalancedNamespace)
	}
	if !report.Failed() {
		t.Error("report should fail")
	}
}

func TestShrinkDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "# generated\nignored/\n")
	writeFile(t, filepath.Join(root, "one.ts"), script)
	writeFile(t, filepath.Join(root, "one.min.ts"), "stale")
	writeFile(t, filepath.Join(root, "sub", "two.osts"), container(t, script))
	writeFile(t, filepath.Join(root, "ignored", "three.ts"), script)
	writeFile(t, filepath.Join(root, "broken.js"), "namespace fr {\n")
	writeFile(t, filepath.Join(root, "README.md"), "# scripts\n")

	reports, err := New(Options{}).ShrinkPath(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, r := range reports {
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	want := []string{"broken.js", "one.ts", "sub/two.osts"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("shrunk files (-want +got):\n%s", diff)
	}

	if reports[0].Err == nil {
		t.Error("broken.js should fail")
	}
	for _, r := range reports[1:] {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Path, r.Err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "sub", "two.min.osts")); err != nil {
		t.Errorf("container output not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "ignored", "three.min.ts")); err == nil {
		t.Error("ignored script was shrunk")
	}
}

func TestMissingMethods(t *testing.T) {
	d := compile.DefaultDialect()
	got := missingMethods(
		[]string{"a", "combine_dfs", "constructor", "gone"},
		[]string{"constructor", "a"},
		d)
	if diff := cmp.Diff([]string{"gone"}, got); diff != "" {
		t.Errorf("missingMethods (-want +got):\n%s", diff)
	}
}
