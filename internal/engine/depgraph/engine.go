// Package depgraph implements the incremental build dependency graph: a session cache of
// nodes over the persistent graph store that answers freshness queries, computes content
// signatures and commits rebuilt outputs.
package depgraph

import (
	"context"
	"maps"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const tracerName = "go.trai.ch/depcache/internal/engine/depgraph"

// FormatVersionFunc reports the current output format version of a builder type.
type FormatVersionFunc func() string

// Engine is the dependency graph. Every exported method holds one mutex, so at most one
// graph operation runs at a time.
type Engine struct {
	store   ports.GraphStore
	fs      ports.FileSystem
	hasher  ports.Hasher
	logger  ports.Logger
	metrics ports.Metrics
	tracer  trace.Tracer

	mu    sync.Mutex
	types map[string]FormatVersionFunc

	// session state, dropped by ClearCache
	nodes      []*domain.DependencyInfo
	index      map[domain.InternedString]int
	reregister map[domain.InternedString]*domain.OrderedSet
	stored     map[domain.InternedString]*domain.OrderedSet
	probed     map[domain.InternedString]struct{}
	versionIDs map[versionKey]int64
	// freshCached is set while any node carries a cached freshness result.
	freshCached bool
}

type versionKey struct {
	typeName string
	version  string
}

// NewEngine creates an engine over store.
func NewEngine(
	store ports.GraphStore,
	fs ports.FileSystem,
	hasher ports.Hasher,
	logger ports.Logger,
	metrics ports.Metrics,
) *Engine {
	e := &Engine{
		store:   store,
		fs:      fs,
		hasher:  hasher,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		types:   make(map[string]FormatVersionFunc),
	}
	e.resetSession()
	return e
}

func (e *Engine) resetSession() {
	e.nodes = nil
	e.index = make(map[domain.InternedString]int)
	e.reregister = make(map[domain.InternedString]*domain.OrderedSet)
	e.stored = make(map[domain.InternedString]*domain.OrderedSet)
	e.probed = make(map[domain.InternedString]struct{})
	e.versionIDs = make(map[versionKey]int64)
	e.freshCached = false
}

// invalidateFreshness drops every cached freshness result. A cached output depends on its whole
// input closure, so any change to a node or edge can affect consumers further up.
func (e *Engine) invalidateFreshness() {
	if !e.freshCached {
		return
	}
	for _, n := range e.nodes {
		n.IsUpToDateCached = false
	}
	e.freshCached = false
}

// ClearCache drops every cached node and registration. Stored rows are untouched.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetSession()
}

// RegisterType sets how the current format version of typeName is obtained.
// Bumping the version makes every stored output of that type stale.
func (e *Engine) RegisterType(typeName string, version FormatVersionFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types[typeName] = version
}

// GetFormatVersion returns the current format version of typeName, or "" for unregistered types.
func (e *Engine) GetFormatVersion(typeName string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formatVersion(typeName)
}

func (e *Engine) formatVersion(typeName string) string {
	if fn, ok := e.types[typeName]; ok && fn != nil {
		return fn()
	}
	return ""
}

// Lookup returns a copy of the cached node for path.
func (e *Engine) Lookup(path string) (domain.DependencyInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.lookup(path)
	if !ok {
		return domain.DependencyInfo{}, false
	}
	cp := *n
	cp.Dependencies = n.Dependencies.Clone()
	cp.GraphInfo = maps.Clone(n.GraphInfo)
	return cp, true
}

// Inputs returns the stored edges of the output at path, as of its last commit.
func (e *Engine) Inputs(ctx context.Context, path string) (rows []domain.GraphRow, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.Inputs", attribute.String("path", path))
	defer func() { endSpan(span, err) }()

	rec, err := e.store.SelectFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, zerr.With(domain.ErrNodeNotFound, "path", path)
	}
	return e.store.SelectGraph(ctx, rec.ID, rec.VersionID)
}

// lookup finds the cached node for path.
func (e *Engine) lookup(path string) (*domain.DependencyInfo, bool) {
	i, ok := e.index[domain.NewInternedString(path)]
	if !ok {
		return nil, false
	}
	return e.nodes[i], true
}

// insert adds n to the arena. The caller guarantees n.Path is not cached yet.
func (e *Engine) insert(n *domain.DependencyInfo) *domain.DependencyInfo {
	n.EnsureInit()
	e.index[domain.NewInternedString(n.Path)] = len(e.nodes)
	e.nodes = append(e.nodes, n)
	return n
}

// adopt returns the cached node for a stored row, creating it from the row when needed.
func (e *Engine) adopt(rec *domain.FileRecord) *domain.DependencyInfo {
	if n, ok := e.lookup(rec.Path); ok {
		if !n.IsPersisted() {
			applyRecord(n, rec)
		}
		e.probed[domain.NewInternedString(n.Path)] = struct{}{}
		return n
	}

	var n *domain.DependencyInfo
	if domain.IsDataPath(rec.Path) {
		n = domain.NewDataInfo(rec.Path, rec.TypeName, nil, rec.GraphConfigs())
	} else {
		n = domain.NewFileInfo(rec.Path, rec.TypeName, rec.GraphConfigs())
	}
	applyRecord(n, rec)
	e.probed[domain.NewInternedString(n.Path)] = struct{}{}
	return e.insert(n)
}

func applyRecord(n *domain.DependencyInfo, rec *domain.FileRecord) {
	n.RowID = rec.ID
	n.VersionRowID = rec.VersionID
	n.FormatVersion = rec.FormatVersion
	n.Size = rec.Size
	n.LastModified = rec.LastModified
	n.ContentHash = rec.ContentHash
	n.Signature = rec.Signature
	if n.TypeName == "" {
		n.TypeName = rec.TypeName
	}
}

// ensureRowLoaded fills the persisted fields of n from its stored row, once per session.
func (e *Engine) ensureRowLoaded(ctx context.Context, q ports.GraphQueries, n *domain.DependencyInfo) error {
	if n.IsPersisted() {
		return nil
	}
	key := domain.NewInternedString(n.Path)
	if _, ok := e.probed[key]; ok {
		return nil
	}
	rec, err := q.SelectFile(ctx, n.Path)
	if err != nil {
		return err
	}
	e.probed[key] = struct{}{}
	if rec != nil {
		applyRecord(n, rec)
	}
	return nil
}

// currentVersionID returns the stored id of the current format version of typeName,
// or domain.InvalidRowID when that version was never committed.
func (e *Engine) currentVersionID(ctx context.Context, q ports.GraphQueries, typeName string) (int64, error) {
	key := versionKey{typeName: typeName, version: e.formatVersion(typeName)}
	if id, ok := e.versionIDs[key]; ok {
		return id, nil
	}
	id, err := q.SelectVersionID(ctx, key.typeName, key.version)
	if err != nil {
		return domain.InvalidRowID, err
	}
	if id != domain.InvalidRowID {
		e.versionIDs[key] = id
	}
	return id, nil
}

func (e *Engine) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
