package ports

// InputResolver defines the interface for resolving input patterns.
//
//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks -source=resolver.go
type InputResolver interface {
	// ResolveInputs expands the given patterns relative to root into sorted absolute file paths.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
