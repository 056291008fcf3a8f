// Package suggest is the core query path: it takes the text of the
// current line plus the cursor offset and walks the command tree to
// produce the valid next-token set.
package suggest

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/cliserve/cliserve/pkg/cmdtree"
)

// Result is the outcome of one suggestion query. Triggered false means
// the engine declined to suggest at all (blank line up to the cursor),
// which the host must treat differently from an empty token list.
type Result struct {
	Triggered bool
	Query     string
	Span      Span
	Tokens    []string
}

// Span is the half-open [Start, End) byte range of the in-progress
// partial token on the line. The host replaces exactly this range when
// a suggestion is accepted.
type Span struct {
	Start int
	End   int
}

// Engine answers suggestion queries against a finished command tree.
// It holds no mutable state; one engine serves the whole process.
type Engine struct {
	root *cmdtree.Node
}

// NewEngine wraps a built tree. A nil root is allowed and yields an
// engine that never triggers, which is the degraded mode used when
// dictionary initialization failed.
func NewEngine(root *cmdtree.Node) *Engine {
	if root == nil {
		log.Warn("suggest engine running without a command tree, all queries will decline")
	}
	return &Engine{root: root}
}

// Suggest produces the sorted valid next tokens for the line text up to
// cursor. Offsets outside the line are clamped rather than rejected;
// hosts deliver them during races between edits and queries.
func (e *Engine) Suggest(line string, cursor int) Result {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}
	head := line[:cursor]

	if e.root == nil || strings.TrimSpace(head) == "" {
		return Result{Triggered: false}
	}

	query, span := partialToken(head, cursor)
	result := Result{
		Triggered: true,
		Query:     query,
		Span:      span,
	}

	prefix := strings.Fields(strings.ToLower(head[:span.Start]))
	node := e.root.Walk(prefix)
	if node == nil {
		// Dead-end path typed by the user: normal terminal state.
		log.Debugf("no grammar path for %q", strings.Join(prefix, " "))
		return result
	}

	lowerQuery := strings.ToLower(query)
	for _, tok := range node.Tokens() {
		if strings.HasPrefix(tok, lowerQuery) {
			result.Tokens = append(result.Tokens, tok)
		}
	}
	sort.Strings(result.Tokens)
	return result
}

// Accept is the pure acceptance function: the replacement for the
// trigger span is the chosen token plus one trailing space, and the new
// cursor sits right after that space.
func Accept(token string, span Span) (replacement string, newCursor int) {
	replacement = token + " "
	return replacement, span.Start + len(replacement)
}

// partialToken finds the trailing contiguous non-whitespace run ending
// at the cursor. An empty query (cursor right after whitespace) spans
// [cursor, cursor).
func partialToken(head string, cursor int) (string, Span) {
	start := cursor
	for start > 0 && !unicode.IsSpace(rune(head[start-1])) {
		start--
	}
	return head[start:cursor], Span{Start: start, End: cursor}
}
