package cmdtree

import (
	"strings"

	"github.com/charmbracelet/log"
)

// OptionsKey is the reserved key in the nested raw shape whose value is
// a flat list of option tokens rather than a further nesting level.
const OptionsKey = "_options"

// NormalizationError reports a raw dictionary that is structurally
// unusable as a whole. Individual malformed entries never produce one;
// those are skipped during the bulk load.
type NormalizationError struct {
	Reason string
}

func (e *NormalizationError) Error() string {
	return "cmdtree: " + e.Reason
}

// Build normalizes a raw dictionary into the canonical prefix tree.
//
// Two raw shapes are accepted, both produced by deserializing the
// bundled dictionary asset:
//
//   - flat: full command string -> detail record
//   - nested: possibly multi-word keys -> further mappings, with an
//     optional _options list of leaf tokens
//
// Keys are split on whitespace and lowercased, one tree edge per token,
// so matching at query time is case-insensitive by construction. Shared
// prefixes merge into existing nodes; metadata is only ever set, never
// cleared, so sibling keys where one prefixes another cannot lose each
// other's payloads. Building the same input twice yields structurally
// identical trees.
func Build(raw any) (*Node, error) {
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, &NormalizationError{Reason: "raw dictionary is not a mapping"}
	}

	root := NewNode()
	if isFlat(entries) {
		buildFlat(root, entries)
	} else {
		buildNested(root, entries)
	}
	return root, nil
}

// isFlat reports whether every entry value is a detail record (or a
// bare description string), i.e. the flat raw shape. A single nested
// mapping or options list switches the whole input to nested handling.
func isFlat(entries map[string]any) bool {
	for key, value := range entries {
		if key == OptionsKey {
			return false
		}
		switch v := value.(type) {
		case string, nil:
		case map[string]any:
			if !isDetailRecord(v) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

var detailFields = map[string]bool{
	"description": true,
	"syntax":      true,
	"params":      true,
	"examples":    true,
}

func isDetailRecord(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for key := range m {
		if !detailFields[key] {
			return false
		}
	}
	return true
}

func buildFlat(root *Node, entries map[string]any) {
	for command, value := range entries {
		tokens := splitTokens(command)
		if len(tokens) == 0 {
			log.Debugf("skipping entry with empty command string")
			continue
		}
		node := grow(root, tokens)
		attachMeta(node, command, value)
	}
}

func buildNested(parent *Node, entries map[string]any) {
	for key, value := range entries {
		if key == OptionsKey {
			attachOptions(parent, value)
			continue
		}
		tokens := splitTokens(key)
		if len(tokens) == 0 {
			log.Debugf("skipping nested entry with empty key")
			continue
		}
		node := grow(parent, tokens)
		switch v := value.(type) {
		case map[string]any:
			if isDetailRecord(v) {
				attachMeta(node, key, v)
			} else {
				buildNested(node, v)
			}
		case string:
			attachMeta(node, key, v)
		case nil:
			// Key alone marks a valid grammar position with no payload.
		default:
			log.Debugf("skipping nested entry %q: unsupported value type %T", key, value)
		}
	}
}

// attachOptions creates one zero-metadata child per listed option.
func attachOptions(parent *Node, value any) {
	options, ok := value.([]any)
	if !ok {
		log.Debugf("skipping %s entry: not a list", OptionsKey)
		return
	}
	for _, option := range options {
		name, ok := option.(string)
		if !ok {
			log.Debugf("skipping non-string option %v", option)
			continue
		}
		tokens := splitTokens(name)
		if len(tokens) == 0 {
			continue
		}
		grow(parent, tokens)
	}
}

// grow walks the token chain from node, creating children as needed,
// and returns the final node. Existing nodes are reused so commands
// sharing a prefix merge rather than overwrite.
func grow(node *Node, tokens []string) *Node {
	for _, tok := range tokens {
		child, ok := node.Children[tok]
		if !ok {
			child = NewNode()
			node.Children[tok] = child
		}
		node = child
	}
	return node
}

// attachMeta decodes a raw detail value onto a node. Metadata already
// present wins; duplicate definitions of the same command keep the
// first payload.
func attachMeta(node *Node, command string, value any) {
	if node.Meta != nil {
		log.Debugf("duplicate command %q: keeping earlier metadata", command)
		return
	}
	switch v := value.(type) {
	case string:
		node.Meta = &Detail{Description: v}
	case map[string]any:
		node.Meta = decodeDetail(v)
	case nil:
		node.Meta = &Detail{}
	default:
		log.Debugf("skipping metadata for %q: unsupported type %T", command, value)
	}
}

func decodeDetail(m map[string]any) *Detail {
	detail := &Detail{}
	if s, ok := m["description"].(string); ok {
		detail.Description = s
	}
	if s, ok := m["syntax"].(string); ok {
		detail.Syntax = s
	}
	detail.Params = stringList(m["params"])
	detail.Examples = stringList(m["examples"])
	return detail
}

func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// splitTokens lowercases a raw key and splits it into normalized
// tokens. Fields never yields empty or whitespace-bearing tokens.
func splitTokens(key string) []string {
	return strings.Fields(strings.ToLower(key))
}
