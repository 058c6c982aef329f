// Package app implements the application layer for depcache.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/depcache/internal/adapters/settings"
	"go.trai.ch/depcache/internal/adapters/watcher"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/depcache/internal/engine/depgraph"
	"go.trai.ch/zerr"
)

// App loads the manifest and drives the dependency graph.
type App struct {
	loader   ports.ConfigLoader
	graph    *depgraph.Engine
	store    ports.GraphStore
	hasher   ports.Hasher
	logger   ports.Logger
	progress ports.Progress
	watcher  ports.Watcher
	settings *settings.Settings

	dir      string
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	graph *depgraph.Engine,
	store ports.GraphStore,
	hasher ports.Hasher,
	log ports.Logger,
	progress ports.Progress,
	w ports.Watcher,
	cfg *settings.Settings,
) *App {
	return &App{
		loader:   loader,
		graph:    graph,
		store:    store,
		hasher:   hasher,
		logger:   log,
		progress: progress,
		watcher:  w,
		settings: cfg,
		dir:      ".",
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithDir sets the directory the manifest is searched from.
func (a *App) WithDir(dir string) *App {
	a.dir = dir
	return a
}

// WithDebounce sets the quiet period Watch waits for before re-checking outputs.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// OutputStatus is the freshness of one output.
type OutputStatus struct {
	Path     string
	UpToDate bool
	Err      error
}

// SignatureResult is the signature of one output.
type SignatureResult struct {
	Path      string
	Signature string
	Trace     []string
}

// session is one registration of the manifest into the graph.
type session struct {
	plan  *domain.Plan
	order []*domain.PlannedOutput
	infos map[string]*domain.DependencyInfo
}

// load reads the manifest, points the store at its root and registers every output needed for
// targets. The graph cache is cleared first, so each call sees the files as they are now.
func (a *App) load(ctx context.Context, targets []string) (*session, []string, error) {
	plan, err := a.loader.Load(a.dir)
	if err != nil {
		return nil, nil, err
	}
	a.settings.AnchorDSN(plan.Root)

	paths, err := a.resolveTargets(plan, targets)
	if err != nil {
		return nil, nil, err
	}
	order, err := plan.Order(paths)
	if err != nil {
		return nil, nil, err
	}

	a.graph.ClearCache()
	for name, version := range plan.FormatVersions {
		a.graph.RegisterType(name, func() string { return version })
	}

	s := &session{plan: plan, order: order, infos: make(map[string]*domain.DependencyInfo, len(order))}
	for _, o := range order {
		out := s.output(o.Path)
		for _, in := range o.Inputs {
			if err := a.graph.RegisterInput(ctx, out, s.input(in), in.Optional); err != nil {
				return nil, nil, zerr.With(err, "output", o.Path)
			}
		}
	}

	if len(paths) == 0 {
		for o := range plan.Outputs() {
			paths = append(paths, o.Path)
		}
	}
	return s, paths, nil
}

func (a *App) resolveTargets(plan *domain.Plan, targets []string) ([]string, error) {
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		p := t
		if !filepath.IsAbs(p) {
			abs, err := filepath.Abs(filepath.Join(a.dir, p))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrUnknownOutput.Error()), "output", t)
			}
			p = abs
		}
		if !plan.IsOutput(p) {
			return nil, zerr.With(domain.ErrUnknownOutput, "output", t)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// output returns the node of a planned output, creating it on first use.
func (s *session) output(path string) *domain.DependencyInfo {
	if info, ok := s.infos[path]; ok {
		return info
	}
	var cfg domain.GraphConfig
	typeName := ""
	if o, ok := s.plan.Output(path); ok {
		typeName = o.TypeName
		if o.OrderMatters {
			cfg |= domain.GraphConfigInputOrderMatters
		}
	}
	info := domain.NewFileInfo(path, typeName, cfg)
	s.infos[path] = info
	return info
}

// input returns the node of a planned input. Inputs produced by another output are that output's
// node; everything else is a leaf.
func (s *session) input(in domain.PlannedInput) *domain.DependencyInfo {
	switch {
	case in.IsData:
		return domain.NewDataInfo(in.Path, in.TypeName, in.Data, domain.GraphConfigLeafInput)
	case s.plan.IsOutput(in.Path):
		return s.output(in.Path)
	default:
		return domain.NewFileInfo(in.Path, in.TypeName, domain.GraphConfigLeafInput)
	}
}

// Status reports the freshness of targets, or of every declared output when targets is empty.
// Per-output failures are reported in OutputStatus.Err.
func (a *App) Status(ctx context.Context, targets []string) ([]OutputStatus, error) {
	_, paths, err := a.load(ctx, targets)
	if err != nil {
		return nil, err
	}
	return a.status(ctx, paths), nil
}

func (a *App) status(ctx context.Context, paths []string) []OutputStatus {
	statuses := make([]OutputStatus, 0, len(paths))
	for _, p := range paths {
		item := a.progress.Start(p)
		ok, err := a.graph.IsUpToDate(ctx, p)
		switch {
		case err != nil:
			item.Done(err)
		case ok:
			item.Cached()
			item.Done(nil)
		default:
			item.Done(domain.ErrOutOfDate)
		}
		statuses = append(statuses, OutputStatus{Path: p, UpToDate: ok, Err: err})
	}
	return statuses
}

// Sign computes the signatures of targets. With trap set, outputs that fail are logged and get
// an empty signature.
func (a *App) Sign(ctx context.Context, targets []string, trap bool) ([]SignatureResult, error) {
	s, paths, err := a.load(ctx, targets)
	if err != nil {
		return nil, err
	}

	results := make([]SignatureResult, 0, len(paths))
	for _, p := range paths {
		info := s.output(p)
		item := a.progress.Start(p)
		if err := a.graph.CreateSignatures(ctx, []*domain.DependencyInfo{info}, trap); err != nil {
			item.Done(err)
			return nil, err
		}
		for _, line := range info.SignatureTrace {
			_, _ = fmt.Fprintln(item.Log(), line)
		}
		item.Done(nil)
		results = append(results, SignatureResult{Path: p, Signature: info.Signature, Trace: info.SignatureTrace})
	}
	return results, nil
}

// Commit records the current state of targets and of every output they depend on, producers first.
// All outputs are committed in one transaction.
func (a *App) Commit(ctx context.Context, targets []string) ([]string, error) {
	s, _, err := a.load(ctx, targets)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(s.order))
	outs := make([]*domain.DependencyInfo, 0, len(s.order))
	items := make([]ports.ProgressItem, 0, len(s.order))
	for _, o := range s.order {
		outs = append(outs, s.output(o.Path))
		items = append(items, a.progress.Start(o.Path))
		files = append(files, o.Path)
		for _, in := range o.Inputs {
			if !in.IsData {
				files = append(files, in.Path)
			}
		}
	}

	if err := a.hasher.Prehash(ctx, files); err != nil {
		a.logger.Warn(fmt.Sprintf("prehashing inputs failed: %v", err))
	}

	err = a.graph.UpdateOutputs(ctx, outs)
	committed := make([]string, 0, len(outs))
	for i, item := range items {
		item.Done(err)
		committed = append(committed, outs[i].Path)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("committed %d outputs", len(committed)))
	return committed, nil
}

// Graph returns the stored inputs of target as of its last commit.
func (a *App) Graph(ctx context.Context, target string) ([]domain.GraphRow, error) {
	plan, err := a.loader.Load(a.dir)
	if err != nil {
		return nil, err
	}
	a.settings.AnchorDSN(plan.Root)

	paths, err := a.resolveTargets(plan, []string{target})
	if err != nil {
		return nil, err
	}
	return a.graph.Inputs(ctx, paths[0])
}

// Watch reports the status of targets, then again after every batch of changes below the manifest
// root, until ctx is done.
func (a *App) Watch(ctx context.Context, targets []string, onChange func([]OutputStatus)) error {
	s, paths, err := a.load(ctx, targets)
	if err != nil {
		return err
	}
	onChange(a.status(ctx, paths))

	if err := a.watcher.Start(ctx, s.plan.Root); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(changed []string) {
		select {
		case batches <- changed:
		case <-ctx.Done():
		}
	})
	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-batches:
			a.logger.Debug(fmt.Sprintf("%d paths changed", len(changed)))
			_, paths, err := a.load(ctx, targets)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			onChange(a.status(ctx, paths))
		}
	}
}

// Clean closes the graph store and removes the metadata directory of the project.
func (a *App) Clean(_ context.Context) error {
	plan, err := a.loader.Load(a.dir)
	if err != nil {
		return err
	}
	if err := a.store.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCleanFailed.Error())
	}

	dir := filepath.Join(plan.Root, domain.MetaDirName)
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", dir)
	}
	a.logger.Info(fmt.Sprintf("removed %s", dir))
	return nil
}
