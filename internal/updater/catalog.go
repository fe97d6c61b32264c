package updater

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// CatalogFileName is the optional user override under the state directory.
const CatalogFileName = "tools.yaml"

// Catalog maps tool names to the packages that install them.
type Catalog struct {
	NPM  map[string]string `yaml:"npm"`
	Brew []string          `yaml:"brew"`
}

// DefaultCatalog returns the built-in package map.
func DefaultCatalog() Catalog {
	return Catalog{
		NPM: map[string]string{
			"claude":    "@anthropic-ai/claude-code@latest",
			"gemini":    "@google/gemini-cli@nightly",
			"llxprt":    "@vybestack/llxprt-code@nightly",
			"qwen":      "@qwen-code/qwen-code@nightly",
			"terragon":  "@terragon-labs/cli@latest",
			"justevery": "@just-every/code@latest",
		},
		Brew: []string{"codex"},
	}
}

// LoadCatalog returns the default catalog merged with any user override from
// ~/.vexy-overnight/tools.yaml. Override entries win per tool; an invalid
// file falls back to the defaults.
func LoadCatalog(home string) Catalog {
	catalog := DefaultCatalog()
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	data, err := os.ReadFile(filepath.Join(home, settings.DirName, CatalogFileName))
	if err != nil {
		return catalog
	}
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return catalog
	}
	for tool, pkg := range override.NPM {
		catalog.NPM[tool] = pkg
	}
	if len(override.Brew) > 0 {
		catalog.Brew = override.Brew
	}
	return catalog
}
