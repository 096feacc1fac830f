package app

import "pagebuilder/internal/domain"

// OperationResult is what Save, Load and Publish return to the frontend.
// Failures are reported through OK and Message so the UI can show a notice.
type OperationResult struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
	// Composition is the editor state after the call.
	Composition domain.Composition `json:"composition"`
}

// FieldEditInput is a single controlled-field change from the form.
type FieldEditInput struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}
