package depgraph

import (
	"bytes"
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// RegisterInput declares that out is built from in. Registering the same edge again is a no-op
// apart from updating its optional flag.
func (e *Engine) RegisterInput(ctx context.Context, out, in *domain.DependencyInfo, optional bool) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, span := e.startSpan(ctx, "depgraph.RegisterInput")
	defer func() { endSpan(span, err) }()

	return e.registerInput(out, in, optional)
}

// RegisterInputs registers every input against every output.
func (e *Engine) RegisterInputs(ctx context.Context, outs, ins []*domain.DependencyInfo, optional bool) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, span := e.startSpan(ctx, "depgraph.RegisterInputs",
		attribute.Int("outputs", len(outs)),
		attribute.Int("inputs", len(ins)),
	)
	defer func() { endSpan(span, err) }()

	for _, out := range outs {
		for _, in := range ins {
			if err := e.registerInput(out, in, optional); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) registerInput(out, in *domain.DependencyInfo, optional bool) error {
	if out == nil || out.Path == "" {
		return domain.ErrEmptyPath
	}
	if in == nil || in.Path == "" {
		return zerr.With(domain.ErrEmptyPath, "output", out.Path)
	}
	if out.Path == in.Path {
		e.logger.Warn(fmt.Sprintf("%s is registered as its own input", out.Path))
	}

	outNode := e.cacheRegisterDependency(out)
	inNode := e.cacheRegisterDependency(in)

	added := outNode.Dependencies.Add(inNode.Path)
	key := domain.NewInternedString(outNode.Path)
	reg, ok := e.reregister[key]
	if !ok {
		reg = domain.NewOrderedSet()
		e.reregister[key] = reg
	}
	if reg.Add(inNode.Path) {
		added = true
	}

	edge, had := inNode.Edge(outNode.Path)
	changed := added || !had || edge.IsOptional != optional
	edge.IsOptional = optional
	inNode.SetEdge(outNode.Path, edge)

	if changed {
		e.invalidateFreshness()
	}
	return nil
}

// cacheRegisterDependency returns the cached node for info.Path. The first registration of a path
// caches info itself; later ones merge their flags into the cached node.
func (e *Engine) cacheRegisterDependency(info *domain.DependencyInfo) *domain.DependencyInfo {
	n, ok := e.lookup(info.Path)
	if !ok {
		info.EnsureInit()
		info.ResetSession()
		info.WasGraphSelected = false
		return e.insert(info)
	}
	if n == info {
		return n
	}

	n.GraphConfigs |= info.GraphConfigs
	if n.TypeName == "" {
		n.TypeName = info.TypeName
	}
	if info.Kind == domain.KindData {
		if n.Kind != domain.KindData || !bytes.Equal(n.Data, info.Data) {
			n.HashValid = false
			e.invalidateFreshness()
		}
		n.Kind = domain.KindData
		n.Data = info.Data
	}
	if info.SignaturePath != "" {
		n.SignaturePath = info.SignaturePath
	}
	return n
}
