package depgraph

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// IsUpToDate reports whether the output at path and its whole input closure are unchanged since
// the output was last committed. Paths that were never cached nor stored are not up to date.
func (e *Engine) IsUpToDate(ctx context.Context, path string) (ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.IsUpToDate", attribute.String("path", path))
	defer func() {
		span.SetAttributes(attribute.Bool("up_to_date", ok))
		endSpan(span, err)
	}()

	return e.isUpToDate(ctx, path)
}

// AreUpToDate reports whether every path is up to date.
func (e *Engine) AreUpToDate(ctx context.Context, paths []string) (ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.AreUpToDate", attribute.Int("paths", len(paths)))
	defer func() { endSpan(span, err) }()

	for _, path := range paths {
		ok, err := e.isUpToDate(ctx, path)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (e *Engine) isUpToDate(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, domain.ErrEmptyPath
	}
	n, ok := e.lookup(path)
	if !ok {
		rec, err := e.store.SelectFile(ctx, path)
		if err != nil {
			return false, err
		}
		if rec == nil {
			return false, nil
		}
		n = e.adopt(rec)
	}
	if err := e.cacheGetGraph(ctx, e.store, n, 0, true, true); err != nil {
		return false, err
	}
	return n.IsUpToDate, nil
}

// cacheGetGraph resolves the freshness of n. With recurse set, every input is resolved first and
// the result is cached on the node for the rest of the session. Without it, only n and its
// direct edges are inspected and nothing is cached.
func (e *Engine) cacheGetGraph(
	ctx context.Context,
	q ports.GraphQueries,
	n *domain.DependencyInfo,
	depth int,
	throwIfMissing, recurse bool,
) error {
	if depth > domain.MaxFileGraphDepth {
		return &domain.MaxGraphDepthError{Path: n.Path, Depth: depth}
	}
	if n.IsUpToDateCached {
		return nil
	}
	if err := e.ensureRowLoaded(ctx, q, n); err != nil {
		return err
	}

	reason, err := e.evaluate(ctx, q, n, depth, throwIfMissing, recurse)
	if err != nil {
		return err
	}
	n.IsUpToDate = reason == ports.ReasonUpToDate
	if !recurse {
		return nil
	}

	n.IsUpToDateCached = true
	e.freshCached = true
	e.metrics.ObserveStaleness(reason)
	e.logger.Debug(fmt.Sprintf("%s: %s", n.Path, reason))
	return nil
}

// evaluate returns the first reason n is stale, or ReasonUpToDate. Inputs are walked even after
// n is known to be stale so their own state gets resolved.
func (e *Engine) evaluate(
	ctx context.Context,
	q ports.GraphQueries,
	n *domain.DependencyInfo,
	depth int,
	throwIfMissing, recurse bool,
) (ports.StalenessReason, error) {
	reason := ports.ReasonUpToDate
	stale := func(r ports.StalenessReason) {
		if reason == ports.ReasonUpToDate {
			reason = r
		}
	}

	modified, why, err := e.wasModified(ctx, q, n)
	if err != nil {
		return "", err
	}
	if modified {
		stale(why)
	}
	if n.IsLeaf() {
		return reason, nil
	}

	stored, err := e.storedDependencies(ctx, q, n)
	if err != nil {
		return "", err
	}
	if stored.Len() == 0 {
		stale(ports.ReasonNeverBuilt)
	}

	if reg, ok := e.reregister[domain.NewInternedString(n.Path)]; ok {
		if !reg.SameMembers(stored) || (n.OrderMatters() && !reg.Equal(stored)) {
			stale(ports.ReasonInputsChanged)
		}
		n.Dependencies = reg.Clone()
	} else {
		n.Dependencies = stored.Clone()
	}

	for path := range n.Dependencies.All() {
		in, ok := e.lookup(path)
		if !ok {
			return "", zerr.With(zerr.With(domain.ErrNodeNotFound, "path", path), "output", n.Path)
		}
		if recurse {
			if err := e.cacheGetGraph(ctx, q, in, depth+1, throwIfMissing, recurse); err != nil {
				return "", err
			}
		} else if err := e.ensureRowLoaded(ctx, q, in); err != nil {
			return "", err
		}

		edge, ok := in.Edge(n.Path)
		if !ok {
			return "", zerr.With(zerr.With(domain.ErrMissingEdgeInfo, "input", in.Path), "output", n.Path)
		}

		exists, err := e.exists(in)
		if err != nil {
			return "", err
		}
		if !exists {
			if edge.IsOptional {
				if edge.ExistedAtLastBuild {
					stale(ports.ReasonOptionalFlip)
				}
				continue
			}
			if throwIfMissing {
				return "", &domain.MissingInputError{Input: in.Path, Output: n.Path}
			}
			stale(ports.ReasonInputMissing)
			continue
		}

		if edge.IsOptional && !edge.ExistedAtLastBuild {
			stale(ports.ReasonOptionalFlip)
		}
		if in.LastModified != edge.LastModifiedAtLastBuild {
			stale(ports.ReasonInputsChanged)
		}
		if recurse && !in.IsUpToDate {
			stale(ports.ReasonInputStale)
		}
	}
	return reason, nil
}

// storedDependencies loads the committed input list of n once per session. Input nodes and their
// edge metadata are created from the stored rows.
func (e *Engine) storedDependencies(
	ctx context.Context,
	q ports.GraphQueries,
	n *domain.DependencyInfo,
) (*domain.OrderedSet, error) {
	key := domain.NewInternedString(n.Path)
	if n.WasGraphSelected {
		if set, ok := e.stored[key]; ok {
			return set, nil
		}
	}

	set := domain.NewOrderedSet()
	if n.IsPersisted() {
		versionID, err := e.currentVersionID(ctx, q, n.TypeName)
		if err != nil {
			return nil, err
		}
		if versionID != domain.InvalidRowID {
			rows, err := q.SelectGraph(ctx, n.RowID, versionID)
			if err != nil {
				return nil, err
			}
			reg := e.reregister[key]
			for _, row := range rows {
				in := e.adopt(&row.Input)
				set.Add(in.Path)

				optional := row.Edge.CanBeMissing
				if edge, ok := in.Edge(n.Path); ok && reg.Has(in.Path) {
					optional = edge.IsOptional
				}
				in.SetEdge(n.Path, domain.EdgeInfo{
					LastModifiedAtLastBuild: row.Edge.InLastModified,
					IsOptional:              optional,
					ExistedAtLastBuild:      row.Edge.Existed,
				})
			}
		}
	}

	e.stored[key] = set
	n.WasGraphSelected = true
	return set, nil
}
