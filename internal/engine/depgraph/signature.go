package depgraph

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/depcache/internal/core/domain"
)

// CreateSignature fills info.Signature and info.SignatureTrace with a content hash over the whole
// input closure of info. Leaf inputs get an empty signature.
func (e *Engine) CreateSignature(ctx context.Context, info *domain.DependencyInfo) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.CreateSignature")
	defer func() { endSpan(span, err) }()

	return e.createSignature(ctx, info)
}

// CreateSignatures signs every info in order. With trap set, a failing item is logged and left
// with an empty signature instead of aborting the batch.
func (e *Engine) CreateSignatures(ctx context.Context, infos []*domain.DependencyInfo, trap bool) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "depgraph.CreateSignatures",
		attribute.Int("infos", len(infos)),
		attribute.Bool("trap", trap),
	)
	defer func() { endSpan(span, err) }()

	for _, info := range infos {
		if err := e.createSignature(ctx, info); err != nil {
			if !trap {
				return err
			}
			e.logger.Error(err)
			if info != nil {
				info.Signature = ""
				info.SignatureTrace = nil
			}
		}
	}
	return nil
}

func (e *Engine) createSignature(ctx context.Context, info *domain.DependencyInfo) error {
	if info == nil || info.Path == "" {
		return domain.ErrEmptyPath
	}

	start := time.Now()
	n := e.cacheRegisterDependency(info)
	sig, trace, err := e.signature(ctx, n)
	e.metrics.ObserveSignature(time.Since(start), err)
	if err != nil {
		return err
	}

	n.Signature, n.SignatureTrace = sig, trace
	info.Signature, info.SignatureTrace = sig, trace
	return nil
}

// signature hashes, in this order: every node of the closure except n sorted by path, the inputs of
// every order-sensitive node of the closure in registration order, then the path and format
// version of n.
func (e *Engine) signature(ctx context.Context, n *domain.DependencyInfo) (string, []string, error) {
	if n.IsLeaf() {
		return "", nil, nil
	}
	if err := e.cacheGetGraph(ctx, e.store, n, 0, true, true); err != nil {
		return "", nil, err
	}

	closure := e.closure(n)
	d := e.hasher.NewDigest()
	var trace []string

	for _, c := range closure {
		if _, err := e.appendToSignature(d, c, &trace); err != nil {
			return "", nil, err
		}
	}
	for _, c := range append(closure, n) {
		if !c.OrderMatters() {
			continue
		}
		for path := range c.Dependencies.All() {
			in, ok := e.lookup(path)
			if !ok {
				continue
			}
			if _, err := e.appendToSignature(d, in, &trace); err != nil {
				return "", nil, err
			}
		}
	}

	version := e.formatVersion(n.TypeName)
	writeSignaturePart(d, n.Path)
	writeSignaturePart(d, version)
	trace = append(trace, fmt.Sprintf("%s %s", n.Path, version))

	return strings.ToUpper(d.Sum()), trace, nil
}

// closure returns every node reachable from n, excluding n, sorted by path.
func (e *Engine) closure(n *domain.DependencyInfo) []*domain.DependencyInfo {
	seen := map[string]struct{}{n.Path: {}}
	var out []*domain.DependencyInfo

	var visit func(node *domain.DependencyInfo)
	visit = func(node *domain.DependencyInfo) {
		for path := range node.Dependencies.All() {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			in, ok := e.lookup(path)
			if !ok {
				continue
			}
			out = append(out, in)
			visit(in)
		}
	}
	visit(n)

	// Sorted so the unordered pass does not depend on traversal order.
	slices.SortFunc(out, func(a, b *domain.DependencyInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}
