package service

import (
	"context"
	"errors"
	"log/slog"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/publish"
	"pagebuilder/internal/telemetry"
)

// ─────────────────────────────────────────────────────────────
// Layout Service: save, load and publish compositions
// ─────────────────────────────────────────────────────────────

// ErrLayoutNotFound is returned by LoadNamed when no saved layout has the name.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutDeps holds the collaborators of a LayoutService. Store is required;
// everything else has a usable default.
type LayoutDeps struct {
	Store    domain.DocumentStore
	Renderer *publish.Renderer
	Surface  publish.Surface
	Policy   LoadPolicy
	Emitter  EventEmitter
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics
}

// LayoutService is the only component that knows the persisted record shape
// and the publishing rules. It keeps no composition between calls.
type LayoutService struct {
	store    domain.DocumentStore
	renderer *publish.Renderer
	surface  publish.Surface
	policy   LoadPolicy
	emitter  EventEmitter
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

// NewLayoutService creates a LayoutService.
func NewLayoutService(deps LayoutDeps) *LayoutService {
	s := &LayoutService{
		store:    deps.Store,
		renderer: deps.Renderer,
		surface:  deps.Surface,
		policy:   deps.Policy,
		emitter:  deps.Emitter,
		logger:   telemetry.Component(deps.Logger, "layouts"),
		metrics:  deps.Metrics,
	}
	if s.renderer == nil {
		s.renderer = publish.NewRenderer()
	}
	if s.surface == nil {
		s.surface = publish.Discard{}
	}
	if s.policy == nil {
		s.policy = FirstInStoreOrder{}
	}
	if s.emitter == nil {
		s.emitter = NoopEmitter{}
	}
	return s
}

// PublishResult describes a successful publication.
type PublishResult struct {
	Document publish.Document
	Location string
}

// Save appends c to the layouts collection. It never updates an existing
// document; saving the same name twice stores two documents.
func (s *LayoutService) Save(ctx context.Context, c domain.Composition) error {
	if c.Name == "" {
		s.metrics.ObserveOperation("save", "validation")
		s.logger.Debug("save rejected", "reason", "empty name")
		return domain.NameRequired("saving")
	}
	if err := c.CheckText(); err != nil {
		s.metrics.ObserveOperation("save", "validation")
		s.logger.Debug("save rejected", "reason", "invalid utf-8", "error", err)
		return err
	}

	if err := s.store.Insert(ctx, domain.LayoutsCollection, c.ToDocument()); err != nil {
		s.metrics.ObserveOperation("save", "store")
		s.logger.Error("save layout", "op", "insert", "collection", domain.LayoutsCollection, "name", c.Name, "error", err)
		return &domain.StoreError{Op: "insert", Collection: domain.LayoutsCollection, Err: err}
	}

	s.metrics.ObserveOperation("save", "ok")
	s.logger.Info("layout saved", "name", c.Name, "elements", len(c.Elements))
	s.emitter.Emit(ctx, EventLayoutSaved, map[string]string{"name": c.Name})
	return nil
}

// Load returns the saved layout chosen by the configured LoadPolicy, or the
// empty composition when the collection is empty. On a store failure the
// returned composition is the zero value and must be ignored.
func (s *LayoutService) Load(ctx context.Context) (domain.Composition, error) {
	c, found, err := s.loadWith(ctx, s.policy)
	if err != nil {
		return domain.Composition{}, err
	}
	if !found {
		return domain.NewComposition(), nil
	}
	return c, nil
}

// LoadNamed returns the first saved layout called name.
func (s *LayoutService) LoadNamed(ctx context.Context, name string) (domain.Composition, error) {
	c, found, err := s.loadWith(ctx, ByName(name))
	if err != nil {
		return domain.Composition{}, err
	}
	if !found {
		return domain.Composition{}, ErrLayoutNotFound
	}
	return c, nil
}

func (s *LayoutService) loadWith(ctx context.Context, policy LoadPolicy) (domain.Composition, bool, error) {
	docs, err := s.store.All(ctx, domain.LayoutsCollection)
	if err != nil {
		s.metrics.ObserveOperation("load", "store")
		s.logger.Error("load layout", "op", "enumerate", "collection", domain.LayoutsCollection, "error", err)
		return domain.Composition{}, false, &domain.StoreError{Op: "enumerate", Collection: domain.LayoutsCollection, Err: err}
	}

	doc, ok := policy.Select(docs)
	if !ok {
		s.metrics.ObserveOperation("load", "empty")
		s.logger.Debug("no layout selected", "policy", policy.String(), "documents", len(docs))
		return domain.Composition{}, false, nil
	}

	c := domain.FromDocument(doc)
	s.metrics.ObserveOperation("load", "ok")
	s.logger.Info("layout loaded", "name", c.Name, "policy", policy.String(), "documents", len(docs))
	s.emitter.Emit(ctx, EventLayoutLoaded, map[string]string{"name": c.Name})
	return c, true, nil
}

// ListNames returns the names of all saved layouts in store order.
func (s *LayoutService) ListNames(ctx context.Context) ([]string, error) {
	docs, err := s.store.All(ctx, domain.LayoutsCollection)
	if err != nil {
		s.logger.Error("list layouts", "op", "enumerate", "collection", domain.LayoutsCollection, "error", err)
		return nil, &domain.StoreError{Op: "enumerate", Collection: domain.LayoutsCollection, Err: err}
	}
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, domain.FromDocument(doc).Name)
	}
	return names, nil
}

// Render validates c and renders its published document without opening a
// surface.
func (s *LayoutService) Render(c domain.Composition) (publish.Document, error) {
	if c.Name == "" {
		return publish.Document{}, domain.NameRequired("publishing")
	}
	return s.renderer.Render(c)
}

// Publish renders c and delivers it to the surface. The store is never touched.
func (s *LayoutService) Publish(ctx context.Context, c domain.Composition) (PublishResult, error) {
	doc, err := s.Render(c)
	if err != nil {
		if domain.IsValidation(err) {
			s.metrics.ObserveOperation("publish", "validation")
			s.logger.Debug("publish rejected", "reason", "empty name")
		} else {
			s.metrics.ObserveOperation("publish", "error")
			s.logger.Error("render layout", "name", c.Name, "error", err)
		}
		return PublishResult{}, err
	}

	location, err := s.surface.Open(ctx, doc)
	if err != nil {
		s.metrics.ObserveOperation("publish", "surface")
		s.logger.Warn("publish surface unavailable", "name", c.Name, "error", err)
		return PublishResult{}, &domain.SurfaceUnavailableError{Err: err}
	}

	s.metrics.ObserveOperation("publish", "ok")
	s.metrics.ObservePublish(len(doc.HTML))
	s.logger.Info("layout published", "name", c.Name, "location", location, "bytes", len(doc.HTML))
	s.emitter.Emit(ctx, EventLayoutPublished, map[string]string{"name": c.Name, "location": location})
	return PublishResult{Document: doc, Location: location}, nil
}
