package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// ErrDuplicateOutput is returned when the same output is declared twice.
var ErrDuplicateOutput = zerr.New("output already declared")

// PlannedInput is one resolved input of a planned output.
type PlannedInput struct {
	// Path is the node identity. For file inputs it is the absolute file path.
	Path     string
	TypeName string
	Optional bool
	// Data holds the content of an in-memory input. IsData distinguishes an empty buffer from a file.
	Data   []byte
	IsData bool
}

// PlannedOutput is an output declared in the manifest with its inputs resolved.
type PlannedOutput struct {
	Path         string
	TypeName     string
	OrderMatters bool
	Inputs       []PlannedInput
}

// Plan is the set of outputs of one manifest.
type Plan struct {
	// Root is the absolute directory containing the manifest.
	Root string
	// FormatVersions maps a type name to the format version of its builder.
	FormatVersions map[string]string

	outputs  map[InternedString]*PlannedOutput
	declared []InternedString
}

// NewPlan creates an empty plan rooted at root.
func NewPlan(root string) *Plan {
	return &Plan{
		Root:           root,
		FormatVersions: make(map[string]string),
		outputs:        make(map[InternedString]*PlannedOutput),
	}
}

// AddOutput adds an output to the plan.
func (p *Plan) AddOutput(o *PlannedOutput) error {
	key := NewInternedString(o.Path)
	if _, exists := p.outputs[key]; exists {
		return zerr.With(ErrDuplicateOutput, "output", o.Path)
	}
	p.outputs[key] = o
	p.declared = append(p.declared, key)
	return nil
}

// Output returns the output declared at path.
func (p *Plan) Output(path string) (*PlannedOutput, bool) {
	o, ok := p.outputs[NewInternedString(path)]
	return o, ok
}

// IsOutput reports whether path is produced by one of the plan's outputs.
func (p *Plan) IsOutput(path string) bool {
	_, ok := p.outputs[NewInternedString(path)]
	return ok
}

// Outputs iterates the outputs in declaration order.
func (p *Plan) Outputs() iter.Seq[*PlannedOutput] {
	return func(yield func(*PlannedOutput) bool) {
		for _, key := range p.declared {
			if !yield(p.outputs[key]) {
				return
			}
		}
	}
}

// Order returns the outputs needed for targets with producers before consumers.
// An empty target list selects every output.
func (p *Plan) Order(targets []string) ([]*PlannedOutput, error) {
	roots := make([]InternedString, 0, len(targets))
	if len(targets) == 0 {
		roots = append(roots, p.declared...)
	}
	for _, t := range targets {
		key := NewInternedString(t)
		if _, ok := p.outputs[key]; !ok {
			return nil, zerr.With(ErrUnknownOutput, "output", t)
		}
		roots = append(roots, key)
	}

	order := make([]*PlannedOutput, 0, len(roots))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		out := p.outputs[u]
		for _, in := range out.Inputs {
			dep := NewInternedString(in.Path)
			if _, produced := p.outputs[dep]; !produced {
				continue
			}
			switch visited[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, out)
		return nil
	}

	for _, root := range roots {
		if visited[root] == 0 {
			if err := visit(root); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func cycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}
