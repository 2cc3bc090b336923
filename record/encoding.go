package record

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// MarshalJSON encodes the record as a JSON object in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}

	return r.fields.MarshalJSON()
}

// UnmarshalJSON replaces the record's fields with the members of a JSON
// object, keeping document order. JSON null leaves the record unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	fields := orderedmap.New[string, any]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("failed to decode record JSON: %w", err)
	}

	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := ValidateName(pair.Key); err != nil {
			return err
		}
	}

	r.fields = fields

	return nil
}

// MarshalYAML encodes the record as a YAML mapping in insertion order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for k, v := range r.All() {
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		node.Content = append(node.Content, key, &value)
	}

	return node, nil
}

// UnmarshalYAML replaces the record's fields with the entries of a YAML
// mapping, keeping document order. Duplicate keys are rejected. Merge keys
// ("<<") are expanded; keys written in the mapping itself take precedence
// over merged ones, and earlier merge sources win over later ones.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	fields := orderedmap.New[string, any]()
	if err := decodeMapping(node, fields, nil, false); err != nil {
		return err
	}

	r.fields = fields

	return nil
}

// decodeMapping copies the entries of a mapping node into fields. Keys in skip
// belong to an enclosing mapping and are not written. A merged mapping never
// overwrites a key that is already set.
func decodeMapping(node *yaml.Node, fields *orderedmap.OrderedMap[string, any], skip map[string]struct{}, merged bool) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("record must be a YAML mapping (line %d)", node.Line)
	}

	own := make(map[string]struct{}, len(skip)+len(node.Content)/2)
	for k := range skip {
		own[k] = struct{}{}
	}

	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("record key must be a scalar (line %d)", keyNode.Line)
		}

		if line, ok := seen[keyNode.Value]; ok {
			return fmt.Errorf("line %d: mapping key %q already defined at line %d", keyNode.Line, keyNode.Value, line)
		}

		seen[keyNode.Value] = keyNode.Line
		own[keyNode.Value] = struct{}{}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if isMergeKey(keyNode) {
			if err := mergeInto(valueNode, fields, own); err != nil {
				return err
			}

			continue
		}

		if merged {
			if _, ok := skip[keyNode.Value]; ok {
				continue
			}

			if _, ok := fields.Get(keyNode.Value); ok {
				continue
			}
		}

		if err := ValidateName(keyNode.Value); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", keyNode.Value, err)
		}

		fields.Set(keyNode.Value, value)
	}

	return nil
}

// mergeInto expands the value of a merge key: a mapping or a sequence of
// mappings.
func mergeInto(node *yaml.Node, fields *orderedmap.OrderedMap[string, any], skip map[string]struct{}) error {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node, fields, skip, true)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if resolveAlias(item).Kind != yaml.MappingNode {
				return fmt.Errorf("merge sequence must contain mappings (line %d)", item.Line)
			}

			if err := decodeMapping(item, fields, skip, true); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("merge value must be a mapping or a sequence of mappings (line %d)", node.Line)
	}
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" && node.ShortTag() == mergeTag
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}
