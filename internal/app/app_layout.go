package app

import (
	"errors"
	"fmt"

	"pagebuilder/internal/domain"
)

// ============================================================
// Page Builder: editor bindings
// ============================================================

var errNotReady = errors.New("the layout store is not available")

// Palette returns the draggable element kinds in toolbox order.
func (a *App) Palette() []string {
	kinds := domain.Palette()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// GetComposition returns the current editor state.
func (a *App) GetComposition() domain.Composition {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.composition.Clone()
}

// NewComposition discards the current state and starts an empty layout.
func (a *App) NewComposition() domain.Composition {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composition = domain.NewComposition()
	return a.composition.Clone()
}

// DropElement appends a palette element dropped on the canvas.
func (a *App) DropElement(kind string) (domain.Composition, error) {
	if !domain.IsPaletteKind(kind) {
		return a.GetComposition(), fmt.Errorf("unknown element kind %q", kind)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composition.AppendElement(kind)
	return a.composition.Clone(), nil
}

// SetLayoutName replaces the layout name.
func (a *App) SetLayoutName(name string) domain.Composition {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composition.SetName(name)
	return a.composition.Clone()
}

// UpdateFormField applies one form edit. Checkbox edits use Checked,
// everything else the raw Value.
func (a *App) UpdateFormField(edit FieldEditInput) (domain.Composition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.composition.ApplyFieldEdit(domain.FieldEdit{
		Field:   edit.Field,
		Type:    edit.Type,
		Value:   edit.Value,
		Checked: edit.Checked,
	})
	return a.composition.Clone(), err
}

// ============================================================
// Page Builder: persistence and publishing
// ============================================================

// SaveLayout persists the current composition as a new document.
func (a *App) SaveLayout() OperationResult {
	c := a.GetComposition()
	if a.layouts == nil {
		return failed(errNotReady, c)
	}
	if err := a.layouts.Save(a.ctx, c); err != nil {
		return failed(err, c)
	}
	return OperationResult{OK: true, Message: "Layout and form data saved successfully!", Composition: c}
}

// LoadLayout replaces the current composition with the stored layout picked
// by the load policy. On failure the current composition is kept.
func (a *App) LoadLayout() OperationResult {
	if a.layouts == nil {
		return failed(errNotReady, a.GetComposition())
	}
	c, err := a.layouts.Load(a.ctx)
	if err != nil {
		return failed(err, a.GetComposition())
	}
	return a.replace(c)
}

// LoadLayoutNamed replaces the current composition with the first stored
// layout called name.
func (a *App) LoadLayoutNamed(name string) OperationResult {
	if a.layouts == nil {
		return failed(errNotReady, a.GetComposition())
	}
	c, err := a.layouts.LoadNamed(a.ctx, name)
	if err != nil {
		return failed(err, a.GetComposition())
	}
	return a.replace(c)
}

func (a *App) replace(c domain.Composition) OperationResult {
	a.mu.Lock()
	a.composition = c.Clone()
	a.mu.Unlock()

	msg := "No saved layouts yet."
	if c.Name != "" || len(c.Elements) > 0 {
		msg = fmt.Sprintf("Loaded layout %q.", c.Name)
	}
	return OperationResult{OK: true, Message: msg, Composition: c}
}

// PublishLayout renders the current composition and opens it in the browser.
func (a *App) PublishLayout() OperationResult {
	c := a.GetComposition()
	if a.layouts == nil {
		return failed(errNotReady, c)
	}
	res, err := a.layouts.Publish(a.ctx, c)
	if err != nil {
		return failed(err, c)
	}
	return OperationResult{OK: true, Message: "Layout published.", Location: res.Location, Composition: c}
}

// ListLayoutNames returns the names of all saved layouts in store order.
func (a *App) ListLayoutNames() ([]string, error) {
	if a.layouts == nil {
		return nil, errNotReady
	}
	names, err := a.layouts.ListNames(a.ctx)
	if err != nil {
		return nil, errors.New(domain.UserMessage(err))
	}
	return names, nil
}

func failed(err error, c domain.Composition) OperationResult {
	return OperationResult{OK: false, Message: domain.UserMessage(err), Composition: c}
}
