package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectlint/projectlint/pkg/config"
	"github.com/spf13/afero"
)

const (
	header = `# yaml-language-server: $schema=https://raw.githubusercontent.com/projectlint/projectlint/refs/heads/main/json-schema/projectlint.json
# projectlint - https://github.com/projectlint/projectlint
# disabled_rules:
#   - composer-lock
#   - github-actions-*
`
	filePermission os.FileMode = 0o644
	dirPermission  os.FileMode = 0o755
)

// Init creates a configuration file with the default policy if it doesn't exist.
func (c *Controller) Init(configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	b, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("marshal the default configuration as YAML: %w", err)
	}
	if dir := filepath.Dir(configFilePath); dir != "." {
		if err := c.fs.MkdirAll(dir, dirPermission); err != nil {
			return fmt.Errorf("create a directory for the configuration file: %w", err)
		}
	}
	if err := afero.WriteFile(c.fs, configFilePath, append([]byte(header), b...), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}
