package domain

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"
)

// ElementKind identifies a UI element dropped onto the canvas.
type ElementKind string

const (
	ElementLabel    ElementKind = "Label"
	ElementInputBox ElementKind = "Input Box"
	ElementCheckBox ElementKind = "Check Box"
	ElementButton   ElementKind = "Button"
	ElementTable    ElementKind = "Table"
)

var palette = []ElementKind{
	ElementLabel,
	ElementInputBox,
	ElementCheckBox,
	ElementButton,
	ElementTable,
}

// Palette returns the draggable element kinds in toolbox order.
func Palette() []ElementKind {
	return slices.Clone(palette)
}

// IsPaletteKind reports whether s names one of the palette element kinds.
func IsPaletteKind(s string) bool {
	return slices.Contains(palette, ElementKind(s))
}

// FormData is the fixed form record attached to a composition.
// Age is kept as the raw text of the numeric input.
type FormData struct {
	Name      string `json:"name"`
	Age       string `json:"age"`
	IsWorking bool   `json:"isWorking"`
}

// Form field names as they appear in the persisted record and in edits.
const (
	FieldName      = "name"
	FieldAge       = "age"
	FieldIsWorking = "isWorking"
)

// Composition is the unit of persistence and publication: an ordered,
// append-only list of element identifiers, a display name and the form record.
type Composition struct {
	Elements []string `json:"elements"`
	FormData FormData `json:"formData"`
	Name     string   `json:"name"`
}

// NewComposition returns the empty state.
func NewComposition() Composition {
	return Composition{Elements: []string{}}
}

// AppendElement adds kind to the end of the element list. Duplicates and
// identifiers outside the palette are kept as-is.
func (c *Composition) AppendElement(kind string) {
	c.Elements = append(c.Elements, kind)
}

// SetName replaces the display name.
func (c *Composition) SetName(name string) {
	c.Name = name
}

// FieldEdit is a single change event from a form control. Checkbox edits
// carry Checked; every other control carries its raw Value.
type FieldEdit struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// ApplyFieldEdit replaces only the edited field. Elements, the name and the
// other form fields are left untouched.
func (c *Composition) ApplyFieldEdit(e FieldEdit) error {
	next, err := c.FormData.apply(e)
	if err != nil {
		return err
	}
	c.FormData = next
	return nil
}

func (f FormData) apply(e FieldEdit) (FormData, error) {
	switch e.Field {
	case FieldName:
		f.Name = fieldText(e)
	case FieldAge:
		f.Age = fieldText(e)
	case FieldIsWorking:
		if e.Type == "checkbox" {
			f.IsWorking = e.Checked
		} else {
			f.IsWorking = e.Value == "true" || e.Value == "on"
		}
	default:
		return f, fmt.Errorf("unknown form field %q", e.Field)
	}
	return f, nil
}

func fieldText(e FieldEdit) string {
	if e.Type == "checkbox" {
		if e.Checked {
			return "true"
		}
		return "false"
	}
	return e.Value
}

// Equal reports whether a and b have the same name, the same elements in the
// same order, and the same form values. A nil and an empty element list are equal.
func Equal(a, b Composition) bool {
	return a.Name == b.Name &&
		a.FormData == b.FormData &&
		slices.Equal(a.Elements, b.Elements)
}

// CheckText returns a validation error for the first text value of c that is
// not valid UTF-8.
func (c Composition) CheckText() error {
	if !utf8.ValidString(c.Name) {
		return InvalidText("layout name")
	}
	for i, e := range c.Elements {
		if !utf8.ValidString(e) {
			return InvalidText("element " + strconv.Itoa(i+1))
		}
	}
	if !utf8.ValidString(c.FormData.Name) {
		return InvalidText(FieldName + " field")
	}
	if !utf8.ValidString(c.FormData.Age) {
		return InvalidText(FieldAge + " field")
	}
	return nil
}

// Clone returns a copy that shares no element storage with c.
func (c Composition) Clone() Composition {
	out := c
	out.Elements = slices.Clone(c.Elements)
	if out.Elements == nil {
		out.Elements = []string{}
	}
	return out
}
