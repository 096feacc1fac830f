package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pagebuilder/internal/domain"
)

func TestNewComposition_EmptyState(t *testing.T) {
	c := domain.NewComposition()
	if c.Name != "" {
		t.Errorf("expected empty name, got %q", c.Name)
	}
	if c.Elements == nil || len(c.Elements) != 0 {
		t.Errorf("expected empty non-nil elements, got %#v", c.Elements)
	}
	if c.FormData != (domain.FormData{}) {
		t.Errorf("expected default form data, got %+v", c.FormData)
	}
}

func TestPalette_Order(t *testing.T) {
	want := []domain.ElementKind{"Label", "Input Box", "Check Box", "Button", "Table"}
	if diff := cmp.Diff(want, domain.Palette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}

	p := domain.Palette()
	p[0] = "Mutated"
	if domain.Palette()[0] != domain.ElementLabel {
		t.Error("Palette must return a copy")
	}
	if !domain.IsPaletteKind("Check Box") || domain.IsPaletteKind("Slider") {
		t.Error("IsPaletteKind mismatch")
	}
}

func TestAppendElement_KeepsDuplicatesAndUnknown(t *testing.T) {
	c := domain.NewComposition()
	c.AppendElement("Label")
	c.AppendElement("Label")
	c.AppendElement("Slider")

	want := []string{"Label", "Label", "Slider"}
	if diff := cmp.Diff(want, c.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFieldEdit_OnlyTouchesEditedField(t *testing.T) {
	base := domain.Composition{
		Name:     "Page",
		Elements: []string{"Label", "Button"},
		FormData: domain.FormData{Name: "Ann", Age: "30", IsWorking: false},
	}

	tests := []struct {
		edit domain.FieldEdit
		want domain.FormData
	}{
		{
			edit: domain.FieldEdit{Field: "isWorking", Type: "checkbox", Checked: true},
			want: domain.FormData{Name: "Ann", Age: "30", IsWorking: true},
		},
		{
			edit: domain.FieldEdit{Field: "name", Type: "text", Value: "Bob"},
			want: domain.FormData{Name: "Bob", Age: "30"},
		},
		{
			edit: domain.FieldEdit{Field: "age", Type: "number", Value: "4x"},
			want: domain.FormData{Name: "Ann", Age: "4x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.edit.Field, func(t *testing.T) {
			c := base.Clone()
			if err := c.ApplyFieldEdit(tt.edit); err != nil {
				t.Fatalf("ApplyFieldEdit: %v", err)
			}
			if c.FormData != tt.want {
				t.Errorf("form data = %+v, want %+v", c.FormData, tt.want)
			}
			if diff := cmp.Diff(base.Elements, c.Elements); diff != "" {
				t.Errorf("elements changed (-want +got):\n%s", diff)
			}
			if c.Name != base.Name {
				t.Errorf("name changed to %q", c.Name)
			}
		})
	}
}

func TestApplyFieldEdit_UnknownField(t *testing.T) {
	c := domain.Composition{FormData: domain.FormData{Name: "Ann"}}
	if err := c.ApplyFieldEdit(domain.FieldEdit{Field: "email", Value: "x"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if c.FormData.Name != "Ann" {
		t.Errorf("form data changed: %+v", c.FormData)
	}
}

func TestEqual(t *testing.T) {
	a := domain.Composition{Name: "A", Elements: []string{"Label", "Table"}}
	b := a.Clone()
	if !domain.Equal(a, b) {
		t.Fatal("expected clones to be equal")
	}
	b.Elements = []string{"Table", "Label"}
	if domain.Equal(a, b) {
		t.Error("order must matter")
	}
	if !domain.Equal(domain.Composition{}, domain.NewComposition()) {
		t.Error("nil and empty element lists should be equal")
	}
}

func TestErrors_Classification(t *testing.T) {
	v := domain.NameRequired("saving")
	if !errors.Is(v, domain.ErrNameRequired) {
		t.Error("name validation should match ErrNameRequired")
	}
	if !domain.IsValidation(fmt.Errorf("wrapped: %w", v)) {
		t.Error("IsValidation should see through wrapping")
	}
	if got := domain.UserMessage(v); got != "Please enter a layout name before saving." {
		t.Errorf("unexpected message %q", got)
	}

	if errors.Is(v, domain.ErrInvalidText) {
		t.Error("name validation should not match ErrInvalidText")
	}

	cause := errors.New("connection refused")
	s := &domain.StoreError{Op: "insert", Collection: "layouts", Err: cause}
	if !domain.IsStore(s) || !errors.Is(s, cause) {
		t.Error("store error should classify and unwrap")
	}
	if domain.IsValidation(s) {
		t.Error("store error is not a validation error")
	}

	u := &domain.SurfaceUnavailableError{Err: domain.ErrNoSurface}
	if !domain.IsSurfaceUnavailable(u) || !errors.Is(u, domain.ErrNoSurface) {
		t.Error("surface error should classify and unwrap")
	}
	if domain.UserMessage(nil) != "" {
		t.Error("nil error has no message")
	}
}

func TestComposition_CheckText(t *testing.T) {
	tests := map[string]struct {
		c     domain.Composition
		field string
	}{
		"valid":   {c: domain.Composition{Name: "Café", Elements: []string{"Label"}, FormData: domain.FormData{Name: "Zoë"}}},
		"name":    {c: domain.Composition{Name: "Lab\xffel"}, field: "layout name"},
		"element": {c: domain.Composition{Name: "X", Elements: []string{"Label", "\xc3"}}, field: "element 2"},
		"form":    {c: domain.Composition{Name: "X", FormData: domain.FormData{Age: "3\x800"}}, field: "age field"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.c.CheckText()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("CheckText = %v", err)
				}
				return
			}
			var v *domain.ValidationError
			if !errors.As(err, &v) || v.Field != tt.field {
				t.Fatalf("CheckText = %v, want validation error on %q", err, tt.field)
			}
			if !errors.Is(err, domain.ErrInvalidText) || errors.Is(err, domain.ErrNameRequired) {
				t.Errorf("error %v classified wrongly", err)
			}
		})
	}
}
