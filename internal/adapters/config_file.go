package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"portable-deployer/internal/ports"
	"portable-deployer/internal/types"
)

// ConfigFileAdapter loads a deployment spec (YAML) into a PackageConfig.
// Omitted fields keep the CLI defaults.
type ConfigFileAdapter struct{}

func NewConfigFileAdapter() ConfigFileAdapter {
	return ConfigFileAdapter{}
}

func (a ConfigFileAdapter) Load(path string) (types.PackageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PackageConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("deployment spec not found").
			WithCause(err)
	}
	config := types.DefaultPackageConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return types.PackageConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse deployment spec yaml").
			WithCause(err)
	}
	return config, nil
}

var _ ports.ConfigLoader = ConfigFileAdapter{}
