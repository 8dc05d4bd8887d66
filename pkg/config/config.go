// Package config reads the projectlint configuration file.
// The configuration holds the policy tables used by rules (supported runtime
// versions, expected tool pins, action tags, base images) so that they can be
// updated without touching rule code, plus the list of disabled rules.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

type Config struct {
	DisabledRules []string       `json:"disabled_rules,omitempty" yaml:"disabled_rules,omitempty" jsonschema:"description=Glob patterns of rule names to disable"`
	IgnoreDirs    []string       `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty" jsonschema:"description=Directory names excluded from the search in addition to the built-in list"`
	Runtime       *Runtime       `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Composer      *Composer      `json:"composer,omitempty" yaml:"composer,omitempty"`
	GitHubActions *GitHubActions `json:"github_actions,omitempty" yaml:"github_actions,omitempty"`
	JS            *JS            `json:"js,omitempty" yaml:"js,omitempty"`
	Docker        *Docker        `json:"docker,omitempty" yaml:"docker,omitempty"`
	disabledGlobs []glob.Glob
}

// Runtime describes the supported versions of the managed runtime.
// Versions are compared by string prefix.
type Runtime struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"description=Runtime name. Matrix keys starting with it are version matrices"`
	Deprecated []string `json:"deprecated,omitempty" yaml:"deprecated,omitempty" jsonschema:"description=Prefixes of versions which must not be tested anymore"`
	Stable     []string `json:"stable,omitempty" yaml:"stable,omitempty" jsonschema:"description=Versions which must be tested. The first one is the minimum required version"`
	Unstable   []string `json:"unstable,omitempty" yaml:"unstable,omitempty" jsonschema:"description=Upcoming versions which should be tested"`
}

type Composer struct {
	DevTools     map[string]string   `json:"dev_tools,omitempty" yaml:"dev_tools,omitempty" jsonschema:"description=Expected version constraints of require-dev packages"`
	ToolBinaries map[string][]string `json:"tool_binaries,omitempty" yaml:"tool_binaries,omitempty" jsonschema:"description=Commands provided by require-dev packages. One of them must be run in a workflow"`
}

type GitHubActions struct {
	Actions map[string]string `json:"actions,omitempty" yaml:"actions,omitempty" jsonschema:"description=Expected tags of actions"`
	Runners map[string]string `json:"runners,omitempty" yaml:"runners,omitempty" jsonschema:"description=Floating runner labels and their pinned replacement"`
}

type JS struct {
	Packages map[string]string `json:"packages,omitempty" yaml:"packages,omitempty" jsonschema:"description=Minimum version prefixes of package.json dependencies"`
}

type Docker struct {
	Images map[string][]string `json:"images,omitempty" yaml:"images,omitempty" jsonschema:"description=Accepted tag prefixes of base images"`
}

// Default returns the built-in policy.
// https://www.php.net/supported-versions.php
func Default() *Config {
	return &Config{
		Runtime: &Runtime{
			Name:       "php",
			Deprecated: []string{"7", "8.0", "8.1"},
			Stable:     []string{"8.2", "8.3"},
			Unstable:   []string{"8.4"},
		},
		Composer: &Composer{
			DevTools: map[string]string{
				"phpunit/phpunit":           "^11.0",
				"phpstan/phpstan":           "^1.12",
				"friendsofphp/php-cs-fixer": "^3.64",
			},
			ToolBinaries: map[string][]string{
				"phpunit/phpunit":           {"phpunit"},
				"phpstan/phpstan":           {"phpstan"},
				"friendsofphp/php-cs-fixer": {"php-cs-fixer"},
				"squizlabs/php_codesniffer": {"phpcs", "phpcbf"},
				"vimeo/psalm":               {"psalm"},
				"rector/rector":             {"rector"},
			},
		},
		GitHubActions: &GitHubActions{
			Actions: map[string]string{
				"actions/checkout":       "v4",
				"actions/cache":          "v4",
				"php-actions/composer":   "v6",
				"shivammathur/setup-php": "v2",
			},
			Runners: map[string]string{
				"ubuntu-latest":  "ubuntu-24.04",
				"windows-latest": "windows-2022",
				"macos-latest":   "macos-14",
			},
		},
		JS: &JS{
			Packages: map[string]string{
				"react":      "^18",
				"typescript": "^5.4",
			},
		},
		Docker: &Docker{
			Images: map[string][]string{
				"python": {"3.12"},
				"debian": {"bookworm", "stable"},
				"ubuntu": {"24.04", "noble"},
			},
		},
	}
}

// Init fills omitted sections with the defaults and validates the configuration.
func (c *Config) Init() error {
	def := Default()
	if c.Runtime == nil {
		c.Runtime = def.Runtime
	}
	if c.Composer == nil {
		c.Composer = def.Composer
	}
	if c.GitHubActions == nil {
		c.GitHubActions = def.GitHubActions
	}
	if c.JS == nil {
		c.JS = def.JS
	}
	if c.Docker == nil {
		c.Docker = def.Docker
	}
	if c.Runtime.Name == "" {
		c.Runtime.Name = def.Runtime.Name
	}
	if len(c.Runtime.Stable) == 0 {
		return errors.New("runtime.stable must not be empty")
	}
	globs := make([]glob.Glob, len(c.DisabledRules))
	for i, pattern := range c.DisabledRules {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compile disabled_rules[%d] as a glob: %w", i, err)
		}
		globs[i] = g
	}
	c.disabledGlobs = globs
	return nil
}

// Disable adds glob patterns of rule names to disable.
func (c *Config) Disable(patterns ...string) error {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compile a rule pattern as a glob: %w", err)
		}
		c.DisabledRules = append(c.DisabledRules, pattern)
		c.disabledGlobs = append(c.disabledGlobs, g)
	}
	return nil
}

// RuleDisabled reports whether a rule is disabled.
func (c *Config) RuleDisabled(name string) bool {
	for _, g := range c.disabledGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// DefaultPath is the file created by `projectlint init`.
const DefaultPath = ".projectlint.yaml"

func getConfigPath(fs afero.Fs, root string) (string, error) {
	for _, p := range []string{DefaultPath, ".github/projectlint.yaml", ".projectlint.yml", ".github/projectlint.yml"} {
		p = filepath.Join(root, p)
		f, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if f {
			return p, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it isn't empty.
// Otherwise it looks for a configuration file in the project root.
// It returns an empty string if no configuration file is found.
func (f *Finder) Find(root, configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs, root)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes a configuration file into cfg and initializes it.
// If configFilePath is empty, cfg is only initialized with the defaults.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath != "" {
		f, err := r.fs.Open(configFilePath)
		if err != nil {
			return fmt.Errorf("open a configuration file: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(cfg); err != nil {
			return fmt.Errorf("decode a configuration file as YAML: %w", err)
		}
	}
	if err := cfg.Init(); err != nil {
		return fmt.Errorf("initialize the configuration: %w", err)
	}
	return nil
}
