// Package config loads the depcache manifest.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML manifest.
type Loader struct {
	Logger   ports.Logger
	Resolver ports.InputResolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, resolver ports.InputResolver) *Loader {
	return &Loader{Logger: logger, Resolver: resolver}
}

// DiscoverRoot walks up from cwd to find the directory containing depcache.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	current, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "cwd", cwd)
	}
	for {
		if _, err := os.Stat(filepath.Join(current, domain.ManifestFileName)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
		}
		current = parent
	}
}

// Load reads the manifest found from cwd upwards and resolves it into a plan.
func (l *Loader) Load(cwd string) (*domain.Plan, error) {
	dir, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, domain.ManifestFileName)

	var manifest Manifest
	if err := readAndUnmarshalYAML(path, &manifest); err != nil {
		return nil, err
	}
	return l.buildPlan(resolveRoot(path, manifest.Root), &manifest)
}

func (l *Loader) buildPlan(root string, manifest *Manifest) (*domain.Plan, error) {
	plan := domain.NewPlan(root)
	for name, version := range manifest.Types {
		plan.FormatVersions[name] = version
	}

	for i := range manifest.Outputs {
		dto := &manifest.Outputs[i]
		if dto.Path == "" {
			return nil, zerr.With(domain.ErrEmptyPath, "output_index", i)
		}
		if dto.Type != "" {
			if _, ok := manifest.Types[dto.Type]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownType, "type", dto.Type), "output", dto.Path)
			}
		}

		out := &domain.PlannedOutput{
			Path:         absPath(root, dto.Path),
			TypeName:     dto.Type,
			OrderMatters: dto.OrderMatters,
		}
		for j := range dto.Inputs {
			inputs, err := l.resolveInput(root, &dto.Inputs[j])
			if err != nil {
				return nil, zerr.With(err, "output", dto.Path)
			}
			out.Inputs = append(out.Inputs, inputs...)
		}
		if len(out.Inputs) == 0 {
			l.Logger.Warn("output " + dto.Path + " declares no inputs")
		}
		if err := plan.AddOutput(out); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func (l *Loader) resolveInput(root string, dto *InputDTO) ([]domain.PlannedInput, error) {
	set := 0
	for _, ok := range []bool{dto.Path != "", dto.Glob != "", dto.Data != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, zerr.With(domain.ErrInvalidInput, "name", dto.Name)
	}

	switch {
	case dto.Data != nil:
		if dto.Name == "" {
			return nil, zerr.With(domain.ErrEmptyPath, "input", "data")
		}
		return []domain.PlannedInput{{
			Path:     domain.DataPathPrefix + dto.Name,
			TypeName: dto.Type,
			Optional: dto.Optional,
			Data:     []byte(*dto.Data),
			IsData:   true,
		}}, nil
	case dto.Glob != "":
		matches, err := l.Resolver.ResolveInputs([]string{dto.Glob}, root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolutionFailed.Error()), "glob", dto.Glob)
		}
		inputs := make([]domain.PlannedInput, 0, len(matches))
		for _, m := range matches {
			inputs = append(inputs, domain.PlannedInput{Path: m, TypeName: dto.Type, Optional: dto.Optional})
		}
		return inputs, nil
	default:
		return []domain.PlannedInput{{
			Path:     absPath(root, dto.Path),
			TypeName: dto.Type,
			Optional: dto.Optional,
		}}, nil
	}
}

// readAndUnmarshalYAML reads a YAML file and rejects unknown fields.
func readAndUnmarshalYAML(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return nil
}

// resolveRoot returns the directory holding the manifest, adjusted by its root field.
func resolveRoot(manifestPath, configuredRoot string) string {
	dir := filepath.Dir(manifestPath)
	if configuredRoot == "" {
		return dir
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(dir, configuredRoot))
}

func absPath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
