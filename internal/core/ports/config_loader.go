package ports

import "go.trai.ch/depcache/internal/core/domain"

// ConfigLoader defines the interface for loading the project manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the manifest from cwd upwards, resolves its inputs and returns the plan.
	Load(cwd string) (*domain.Plan, error)

	// DiscoverRoot walks up from cwd to find the directory containing depcache.yaml.
	DiscoverRoot(cwd string) (string, error)
}
