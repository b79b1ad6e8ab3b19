package resolver

import (
	"reflect"
	"testing"

	"github.com/AppliedIntuition/rules-python/internal/markers"
	"github.com/AppliedIntuition/rules-python/internal/metadata"
)

func TestResolver_Dependencies_ExtraFiltering(t *testing.T) {
	// Arrange
	meta := &metadata.Metadata{
		Name: "demo",
		RunRequires: []metadata.Requirement{
			{Requires: []string{"foo>=1.0"}},
			{Requires: []string{"bar"}, Extra: "x"},
		},
		Extras: []string{"x"},
	}
	r := NewResolver(markers.NewStatic(nil), nil)

	// Act + Assert: base set excludes extra-tagged requirements
	base, err := r.Dependencies(meta, "")
	if err != nil {
		t.Fatalf("Dependencies() error = %v", err)
	}
	if !reflect.DeepEqual(base, []string{"foo"}) {
		t.Errorf("Dependencies(base) = %v, want [foo]", base)
	}

	// The extra set excludes base requirements
	extra, err := r.Dependencies(meta, "x")
	if err != nil {
		t.Fatalf("Dependencies(x) error = %v", err)
	}
	if !reflect.DeepEqual(extra, []string{"bar"}) {
		t.Errorf("Dependencies(x) = %v, want [bar]", extra)
	}
}

func TestResolver_Dependencies_StripsVersions(t *testing.T) {
	tests := []struct {
		entry string
		want  string
	}{
		{"pkg (>=1.2,<2.0)", "pkg"},
		{"foo>=1.0", "foo"},
		{"bar", "bar"},
		{"baz ==2.0", "baz"},
		{"qux<3", "qux"},
	}

	r := NewResolver(markers.NewStatic(nil), nil)
	for _, tt := range tests {
		meta := &metadata.Metadata{
			RunRequires: []metadata.Requirement{{Requires: []string{tt.entry}}},
		}

		got, err := r.Dependencies(meta, "")
		if err != nil {
			t.Fatalf("Dependencies(%q) error = %v", tt.entry, err)
		}
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Dependencies(%q) = %v, want [%s]", tt.entry, got, tt.want)
		}
	}
}

func TestResolver_Dependencies_EnvironmentMarkers(t *testing.T) {
	// Arrange: one satisfied marker, one unsatisfied
	meta := &metadata.Metadata{
		RunRequires: []metadata.Requirement{
			{Requires: []string{"always"}},
			{Requires: []string{"linux-only"}, Environment: "sys_platform == 'linux'"},
			{Requires: []string{"win-only"}, Environment: "sys_platform == 'win32'"},
		},
	}
	eval := markers.NewStatic([]string{"sys_platform == 'linux'"})
	r := NewResolver(eval, nil)

	// Act
	got, err := r.Dependencies(meta, "")

	// Assert
	if err != nil {
		t.Fatalf("Dependencies() error = %v", err)
	}
	want := []string{"always", "linux-only"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dependencies() = %v, want %v", got, want)
	}
}

func TestResolver_Dependencies_PreservesOrder(t *testing.T) {
	// Arrange: duplicates and original ordering must survive
	meta := &metadata.Metadata{
		RunRequires: []metadata.Requirement{
			{Requires: []string{"zeta", "alpha>=2"}},
			{Requires: []string{"zeta"}},
		},
	}
	r := NewResolver(markers.NewStatic(nil), nil)

	// Act
	got, err := r.Dependencies(meta, "")

	// Assert
	if err != nil {
		t.Fatalf("Dependencies() error = %v", err)
	}
	want := []string{"zeta", "alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dependencies() = %v, want %v (no reordering, no dedup)", got, want)
	}
}

func TestResolver_Dependencies_EmptyMetadata(t *testing.T) {
	r := NewResolver(markers.NewStatic(nil), nil)

	got, err := r.Dependencies(&metadata.Metadata{}, "")
	if err != nil {
		t.Fatalf("Dependencies() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Dependencies() = %v, want empty", got)
	}
}

func TestResolver_Extras(t *testing.T) {
	meta := &metadata.Metadata{Extras: []string{"x", "y"}}
	r := NewResolver(markers.NewStatic(nil), nil)

	got := r.Extras(meta)
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Extras() = %v, want [x y]", got)
	}
}
