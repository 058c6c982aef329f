package depgraph

import (
	"context"
	"maps"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// UpdateOutputs records the current state of outs and their registered inputs after a build.
// All outputs are written in one transaction. On failure nothing is stored and the session cache
// is restored to its state before the call.
func (e *Engine) UpdateOutputs(ctx context.Context, outs []*domain.DependencyInfo) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.UpdateOutputs", attribute.Int("outputs", len(outs)))
	defer func() { endSpan(span, err) }()
	defer func() { e.metrics.ObserveCommit(len(outs), err) }()

	nodes := make([]*domain.DependencyInfo, 0, len(outs))
	for _, out := range outs {
		if out == nil || out.Path == "" {
			return domain.ErrEmptyPath
		}
		nodes = append(nodes, e.cacheRegisterDependency(out))
	}

	c := &commit{
		engine:  e,
		touched: make(map[*domain.DependencyInfo]domain.DependencyInfo),
		kept:    make(map[domain.InternedString]*domain.OrderedSet),
	}
	err = e.store.WithTx(ctx, func(q ports.GraphQueries) error {
		for _, n := range nodes {
			if err := c.commitGraph(ctx, q, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.rollback()
		return zerr.Wrap(err, domain.ErrCommitFailed.Error())
	}

	for _, n := range e.nodes {
		n.IsUpToDateCached = false
	}
	e.freshCached = false
	maps.Copy(e.stored, c.kept)
	return nil
}

// commit tracks the nodes mutated by one UpdateOutputs call.
type commit struct {
	engine  *Engine
	touched map[*domain.DependencyInfo]domain.DependencyInfo
	kept    map[domain.InternedString]*domain.OrderedSet
}

// touch snapshots n before its first mutation.
func (c *commit) touch(n *domain.DependencyInfo) {
	if _, ok := c.touched[n]; ok {
		return
	}
	snap := *n
	snap.Dependencies = n.Dependencies.Clone()
	snap.GraphInfo = maps.Clone(n.GraphInfo)
	c.touched[n] = snap
}

func (c *commit) rollback() {
	e := c.engine
	for n, snap := range c.touched {
		*n = snap
	}
	for _, n := range e.nodes {
		n.IsUpToDateCached = false
		n.WasGraphSelected = false
	}
	e.freshCached = false
	clear(e.stored)
	clear(e.probed)
	clear(e.versionIDs)
}

func (c *commit) commitGraph(ctx context.Context, q ports.GraphQueries, out *domain.DependencyInfo) error {
	e := c.engine
	c.touch(out)

	if err := e.cacheGetGraph(ctx, q, out, 0, false, false); err != nil {
		return err
	}

	exists, err := e.exists(out)
	if err != nil {
		return err
	}
	if !exists {
		return zerr.With(domain.ErrOutputMissing, "path", out.Path)
	}
	if err := e.generateHash(out); err != nil {
		return err
	}
	if err := c.writeRow(ctx, q, out); err != nil {
		return err
	}

	kept := domain.NewOrderedSet()
	keep := make([]int64, 0, out.Dependencies.Len())
	order := 0
	for path := range out.Dependencies.All() {
		in, ok := e.lookup(path)
		if !ok {
			return zerr.With(zerr.With(domain.ErrNodeNotFound, "path", path), "output", out.Path)
		}
		if err := e.ensureRowLoaded(ctx, q, in); err != nil {
			return err
		}
		edge, ok := in.Edge(out.Path)
		if !ok {
			return zerr.With(zerr.With(domain.ErrMissingEdgeInfo, "input", in.Path), "output", out.Path)
		}
		c.touch(in)

		exists, err := e.exists(in)
		if err != nil {
			return err
		}
		if !exists && !edge.IsOptional {
			return &domain.MissingInputError{Input: in.Path, Output: out.Path}
		}

		if in.IsLeaf() || !in.IsPersisted() {
			if exists {
				valid, err := e.isHashValid(in)
				if err != nil {
					return err
				}
				if !valid {
					if err := e.generateHash(in); err != nil {
						return err
					}
				}
			} else {
				clearHash(in)
			}
			if err := c.writeRow(ctx, q, in); err != nil {
				return err
			}
		}

		if err := q.InsertGraph(ctx, domain.GraphEdge{
			OutFileID:      out.RowID,
			InFileID:       in.RowID,
			InLastModified: in.LastModified,
			OrderIndex:     order,
			CanBeMissing:   edge.IsOptional,
			Existed:        exists,
		}); err != nil {
			return err
		}
		order++

		in.SetEdge(out.Path, domain.EdgeInfo{
			LastModifiedAtLastBuild: in.LastModified,
			IsOptional:              edge.IsOptional,
			ExistedAtLastBuild:      exists,
		})
		keep = append(keep, in.RowID)
		kept.Add(in.Path)
	}

	if err := q.DeleteGraphPairs(ctx, out.RowID, keep); err != nil {
		return err
	}
	c.kept[domain.NewInternedString(out.Path)] = kept
	out.WasGraphSelected = true
	return nil
}

// writeRow stores n under the current format version of its type.
func (c *commit) writeRow(ctx context.Context, q ports.GraphQueries, n *domain.DependencyInfo) error {
	e := c.engine
	version := e.formatVersion(n.TypeName)
	versionID, err := q.InsertVersion(ctx, n.TypeName, version)
	if err != nil {
		return err
	}
	e.versionIDs[versionKey{typeName: n.TypeName, version: version}] = versionID

	n.FormatVersion = version
	id, err := q.ReplaceDependency(ctx, n, versionID)
	if err != nil {
		return err
	}
	n.RowID = id
	n.VersionRowID = versionID
	e.probed[domain.NewInternedString(n.Path)] = struct{}{}
	return nil
}
