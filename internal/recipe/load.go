package recipe

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a recipe from a YAML file, filling absent keys from
// Default and applying overrides of the form "path.to.key=value" on top.
// An empty path loads the defaults. The result is not validated.
func LoadFromFile(path string, overrides []string) (*Recipe, error) {
	tree := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if tree == nil {
			tree = map[string]any{}
		}
	}

	for _, o := range overrides {
		if err := applyOverride(tree, o); err != nil {
			return nil, err
		}
	}

	r := Default()
	if err := decode(tree, r); err != nil {
		if path != "" {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return nil, err
	}
	return r, nil
}

// Marshal renders the recipe as YAML
func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteFile saves the recipe as YAML
func (r *Recipe) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func decode(tree map[string]any, r *Recipe) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           r,
	})
	if err != nil {
		return err
	}
	return dec.Decode(tree)
}

// applyOverride sets one dotted key in the raw tree. The value is parsed as a
// YAML scalar or flow collection, so "--set outputs.field.variables=[S,U]"
// works. Text that only reads as a mapping because it contains ": " stays a
// plain string; a mapping has to be written in flow form ({x: 1}).
func applyOverride(tree map[string]any, override string) error {
	key, raw, ok := strings.Cut(override, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("invalid override %q: want path=value", override)
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	if _, isMap := value.(map[string]any); isMap && !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		value = raw
	}

	parts := strings.Split(key, ".")
	node := tree
	for i, p := range parts[:len(parts)-1] {
		next, exists := node[p]
		if !exists || next == nil {
			child := map[string]any{}
			node[p] = child
			node = child
			continue
		}
		child, isMap := next.(map[string]any)
		if !isMap {
			return fmt.Errorf("invalid override %q: %s is not a mapping", override, strings.Join(parts[:i+1], "."))
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return nil
}
