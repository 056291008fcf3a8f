// Package cmdtree holds the canonical command prefix tree and the
// normalizer that builds it from a raw dictionary.
//
// Every edge in the tree is a single lowercase token. A node carries
// metadata only when the token path leading to it is a complete command
// on its own; a node may have both metadata and children ("show ip" can
// be valid while "show ip isis" is too). The tree is built once at
// startup and is read-only afterwards.
package cmdtree

import "sort"

// Detail is the descriptive payload attached to a complete command.
// Everything past Description is opaque to traversal and only surfaces
// in detail views.
type Detail struct {
	Description string   `yaml:"description"`
	Syntax      string   `yaml:"syntax"`
	Params      []string `yaml:"params"`
	Examples    []string `yaml:"examples"`
}

// Node is one position in the command grammar. Children keys are
// normalized tokens: lowercase, non-empty, no whitespace.
type Node struct {
	Children map[string]*Node
	Meta     *Detail
}

// NewNode returns an empty grammar position.
func NewNode() *Node {
	return &Node{Children: make(map[string]*Node)}
}

// Child returns the child node for a normalized token, or nil.
func (n *Node) Child(token string) *Node {
	if n == nil {
		return nil
	}
	return n.Children[token]
}

// Walk follows one child edge per token and returns the node the
// sequence lands on. A nil return means the path does not exist in the
// grammar, which is a normal state for user-typed input, not a fault.
func (n *Node) Walk(tokens []string) *Node {
	current := n
	for _, tok := range tokens {
		current = current.Child(tok)
		if current == nil {
			return nil
		}
	}
	return current
}

// Tokens returns the child edge tokens in ascending lexicographic
// order. Sorting happens here, at query time; storage order is a map.
func (n *Node) Tokens() []string {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(n.Children))
	for tok := range n.Children {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// IsCommand reports whether the path ending at this node is a complete
// command by itself.
func (n *Node) IsCommand() bool {
	return n != nil && n.Meta != nil
}

// Size returns the total node count of the subtree, the root included.
// Used for startup logging and stats reporting.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Size()
	}
	return total
}

// WalkCommands visits every complete command in the subtree in sorted
// token order, calling fn with the full token path and its detail.
// The callback must not retain the path slice.
func (n *Node) WalkCommands(fn func(path []string, detail *Detail)) {
	var descend func(node *Node, path []string)
	descend = func(node *Node, path []string) {
		if node.Meta != nil {
			fn(path, node.Meta)
		}
		for _, tok := range node.Tokens() {
			descend(node.Children[tok], append(path, tok))
		}
	}
	descend(n, nil)
}
