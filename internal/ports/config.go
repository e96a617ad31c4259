package ports

import "portable-deployer/internal/types"

// ConfigLoader reads a deployment spec file into a PackageConfig.
type ConfigLoader interface {
	Load(path string) (types.PackageConfig, error)
}
