package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned when setting a key tk does not read.
var ErrUnknownKey = errors.New("unknown config key")

// knownKeys maps every settable key to its value validator.
var knownKeys = map[string]func(string) error{
	KeyFile:        validatePath,
	KeyJSON:        validateBool,
	KeyLockTimeout: validateDuration,
	KeyColor:       validateColor,
}

// KnownKeys returns the settable keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckKey returns ErrUnknownKey for keys tk does not read.
func CheckKey(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(KnownKeys(), ", "))
	}
	return nil
}

// ValidateValue checks value against the rules for key.
func ValidateValue(key, value string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	validate := knownKeys[key]
	if err := validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func validatePath(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

func validateBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("%q is not a boolean", value)
	}
	return nil
}

func validateDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%q is not a duration (e.g. 5s, 1m)", value)
	}
	if d < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

func validateColor(value string) error {
	switch value {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("%q must be one of auto, always, never", value)
}

// WritableConfigPath returns the config file `tk config set` writes to: the
// file that was loaded, or ~/.tk/config.yaml when none was found.
func WritableConfigPath() (string, error) {
	if used := ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".tk", ConfigFileName), nil
}

// SetYamlConfig validates value and stores it under key in the writable
// config file, keeping the file's other keys and comments.
func SetYamlConfig(key, value string) (string, error) {
	if err := ValidateValue(key, value); err != nil {
		return "", err
	}
	configPath, err := WritableConfigPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - config file path from search list
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	out, err := updateYamlKey(data, key, value)
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", configPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	// Reflect the change in this process too.
	Set(key, value)
	return configPath, nil
}

// updateYamlKey sets a top-level key in a YAML document, appending it when
// absent. Empty or comment-only input yields a fresh mapping.
func updateYamlKey(content []byte, key, value string) ([]byte, error) {
	var root yaml.Node
	if len(strings.TrimSpace(string(content))) > 0 {
		if err := yaml.Unmarshal(content, &root); err != nil {
			return nil, err
		}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}

	valueNode := scalarNode(value)
	replaced := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			valueNode.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = valueNode
			replaced = true
			break
		}
	}
	if !replaced {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			valueNode,
		)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// scalarNode tags booleans so they are written unquoted; everything else is a
// plain string that the encoder quotes when needed.
func scalarNode(value string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"}
	if lower := strings.ToLower(value); lower == "true" || lower == "false" {
		node.Value = lower
		node.Tag = "!!bool"
	}
	return node
}
