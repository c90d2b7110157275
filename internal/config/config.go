package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	jsoniter "github.com/json-iterator/go"
	"github.com/mcncl/jsoncompare/internal/errors"
	"gopkg.in/yaml.v3"
)

// DiffConfig controls how each side of a comparison is canonicalized
type DiffConfig struct {
	// ArraySortKey maps array patterns such as "$.words[*]" to the key
	// expression used to order their elements
	ArraySortKey map[string]string `json:"arraySortKey,omitempty" yaml:"arraySortKey,omitempty"`
	// DismissNull and IgnoreNull both drop null members and elements
	DismissNull bool `json:"dismissNull,omitempty" yaml:"dismissNull,omitempty"`
	IgnoreNull  bool `json:"ignoreNull,omitempty" yaml:"ignoreNull,omitempty"`
	// TrailingCommas defaults to true when unset
	TrailingCommas *bool `json:"trailingCommas,omitempty" yaml:"trailingCommas,omitempty"`
}

// CompareConfig is a config file pairing left and right documents by pattern
type CompareConfig struct {
	LeftFilesPattern  string     `json:"leftFilesPattern" yaml:"leftFilesPattern"`
	RightFilesPattern string     `json:"rightFilesPattern" yaml:"rightFilesPattern"`
	DiffConfig        DiffConfig `json:"diffConfig" yaml:"diffConfig"`

	// Dir is the directory the config was loaded from; patterns are
	// matched against paths relative to it
	Dir string `json:"-" yaml:"-"`
}

var configNames = []string{".jsoncompare.json", ".jsoncompare.yml", ".jsoncompare.yaml", "jsoncompare.json"}

var jsonAPI = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

// NewDiffConfig returns a DiffConfig with the documented defaults
func NewDiffConfig() DiffConfig {
	return DiffConfig{ArraySortKey: map[string]string{}}
}

// Elide reports whether null elision is enabled by either flag
func (c DiffConfig) Elide() bool {
	return c.DismissNull || c.IgnoreNull
}

// UseTrailingCommas reports whether rendered text gets trailing commas
func (c DiffConfig) UseTrailingCommas() bool {
	return c.TrailingCommas == nil || *c.TrailingCommas
}

// IsDefault reports whether c carries no rules and no flags
func (c DiffConfig) IsDefault() bool {
	return len(c.ArraySortKey) == 0 && !c.Elide() && c.TrailingCommas == nil
}

// ParseDiffConfig parses a diff configuration from JSON or YAML text.
// Blank text yields the defaults.
func ParseDiffConfig(text string) (DiffConfig, error) {
	if strings.TrimSpace(text) == "" {
		return NewDiffConfig(), nil
	}
	raw, err := decodeDocument([]byte(text), "")
	if err != nil {
		return DiffConfig{}, errors.NewConfigError("diffConfig is not valid JSON or YAML", err)
	}
	return diffConfigFromMap(raw)
}

// LoadDiffConfig reads a diff configuration file. A file that looks like a
// compare config (it has a diffConfig member) contributes its diffConfig.
func LoadDiffConfig(path string) (DiffConfig, error) {
	raw, err := readDocument(path)
	if err != nil {
		return DiffConfig{}, err
	}
	if nested, ok := raw["diffConfig"]; ok {
		m, ok := nested.(map[string]interface{})
		if !ok {
			return DiffConfig{}, errors.NewConfigError("diffConfig must be an object", errors.ErrInvalidConfig)
		}
		return diffConfigFromMap(normalizeKeys(m))
	}
	return diffConfigFromMap(raw)
}

// LoadCompareConfig reads a compare config file; both patterns are required
func LoadCompareConfig(path string) (*CompareConfig, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	cfg := &CompareConfig{
		DiffConfig: NewDiffConfig(),
		Dir:        filepath.Dir(path),
	}
	if cfg.LeftFilesPattern, err = stringField(raw, "leftFilesPattern"); err != nil {
		return nil, err
	}
	if cfg.RightFilesPattern, err = stringField(raw, "rightFilesPattern"); err != nil {
		return nil, err
	}
	if cfg.LeftFilesPattern == "" || cfg.RightFilesPattern == "" {
		return nil, errors.NewConfigError(fmt.Sprintf("config file '%s' is incomplete", path), errors.ErrMissingPattern)
	}

	if nested, ok := raw["diffConfig"]; ok && nested != nil {
		m, ok := nested.(map[string]interface{})
		if !ok {
			return nil, errors.NewConfigError("diffConfig must be an object", errors.ErrInvalidConfig)
		}
		if cfg.DiffConfig, err = diffConfigFromMap(normalizeKeys(m)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents
func FindConfigFile(dir string) string {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

func readDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}
	raw, err := decodeDocument(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}
	return raw, nil
}

// decodeDocument decodes a top-level object and normalizes its keys.
// JSON is used for .json files and for text starting with '{', YAML otherwise.
func decodeDocument(data []byte, ext string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	trimmed := strings.TrimSpace(string(data))

	switch {
	case strings.EqualFold(ext, ".json"), strings.HasPrefix(trimmed, "{"):
		if err := jsonAPI.Unmarshal([]byte(trimmed), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
		}
		if raw == nil && trimmed != "" {
			return nil, fmt.Errorf("%w: top level must be an object", errors.ErrInvalidConfig)
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return normalizeKeys(raw), nil
}

// normalizeKeys rewrites top-level keys to lowerCamel so that
// "array_sort_key", "ArraySortKey" and "arraySortKey" are the same option
func normalizeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// Exact spellings are applied last so they win over aliases.
	sort.SliceStable(keys, func(i, j int) bool {
		return strcase.ToLowerCamel(keys[i]) != keys[i] && strcase.ToLowerCamel(keys[j]) == keys[j]
	})
	for _, k := range keys {
		out[strcase.ToLowerCamel(k)] = m[k]
	}
	return out
}

func diffConfigFromMap(raw map[string]interface{}) (DiffConfig, error) {
	cfg := NewDiffConfig()

	if v, ok := raw["arraySortKey"]; ok && v != nil {
		rules, ok := v.(map[string]interface{})
		if !ok {
			return DiffConfig{}, errors.NewConfigError("arraySortKey must be an object of path patterns", errors.ErrInvalidConfig)
		}
		for pattern, key := range rules {
			s, ok := key.(string)
			if !ok {
				return DiffConfig{}, errors.NewConfigError(
					fmt.Sprintf("arraySortKey[%q] must be a string", pattern),
					errors.ErrInvalidConfig,
				)
			}
			cfg.ArraySortKey[pattern] = s
		}
	}

	var err error
	if cfg.DismissNull, err = boolField(raw, "dismissNull"); err != nil {
		return DiffConfig{}, err
	}
	if cfg.IgnoreNull, err = boolField(raw, "ignoreNull"); err != nil {
		return DiffConfig{}, err
	}
	if v, ok := raw["trailingCommas"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return DiffConfig{}, errors.NewConfigError("trailingCommas must be a boolean", errors.ErrInvalidConfig)
		}
		cfg.TrailingCommas = &b
	}
	return cfg, nil
}

func boolField(raw map[string]interface{}, name string) (bool, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.NewConfigError(fmt.Sprintf("%s must be a boolean", name), errors.ErrInvalidConfig)
	}
	return b, nil
}

func stringField(raw map[string]interface{}, name string) (string, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewConfigError(fmt.Sprintf("%s must be a string", name), errors.ErrInvalidConfig)
	}
	return s, nil
}
