package reachability

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"filter", "filter"},
		{"  filter ", "filter"},
		{"apply<T>", "apply"},
		{"private __apply_typed<T>", "__apply_typed"},
		{"public static async load", "load"},
		{"get shape", "shape"},
		{"get", "get"},
		{"static", "static"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelectAnchor(t *testing.T) {
	tests := []struct {
		name    string
		stmt    string
		tracked []string
		want    Anchor
		ok      bool
	}{
		{
			name:    "longest name wins",
			stmt:    "let out = df_filtered.print()",
			tracked: []string{"df", "df_filtered"},
			want:    Anchor{Name: "df_filtered", Pos: 10},
			ok:      true,
		},
		{
			name:    "first occurrence is the walk start",
			stmt:    "let output = this.copy(); output.x",
			tracked: []string{"output", "this"},
			want:    Anchor{Name: "output", Pos: 4},
			ok:      true,
		},
		{
			name:    "index access starts a chain",
			stmt:    "rows [0]",
			tracked: []string{"rows"},
			want:    Anchor{Name: "rows", Pos: 0},
			ok:      true,
		},
		{
			name:    "no chain",
			stmt:    "return df",
			tracked: []string{"df"},
		},
		{
			name:    "identifier part only",
			stmt:    "frequency.get()",
			tracked: []string{"fr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectAnchor(tt.stmt, tt.tracked)
			if ok != tt.ok {
				t.Fatalf("SelectAnchor ok = %v, want %v", ok, tt.ok)
			}
			if ok {
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("anchor (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestDeduplicateSlice(t *testing.T) {
	got := DeduplicateSlice([]string{"b", "a", "b", "c", "a"})
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Errorf("DeduplicateSlice (-want +got):\n%s", diff)
	}
}
