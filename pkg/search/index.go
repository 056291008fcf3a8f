// Package search maintains a flat index of full command strings for
// the metadata browsing surface. Where the command tree answers
// "what can come next", this index answers "which commands mention X".
package search

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/cliserve/cliserve/pkg/cmdtree"
)

// Entry pairs a full normalized command string with its detail record.
type Entry struct {
	Command string
	Detail  *cmdtree.Detail
}

// Index is built once from a finished command tree and is read-only
// afterwards, like the tree itself.
type Index struct {
	trie     *patricia.Trie
	commands []string
}

// NewIndex walks every complete command in the tree into a patricia
// trie keyed by the full command string.
func NewIndex(root *cmdtree.Node) *Index {
	idx := &Index{trie: patricia.NewTrie()}
	if root == nil {
		return idx
	}
	root.WalkCommands(func(path []string, detail *cmdtree.Detail) {
		command := strings.Join(path, " ")
		idx.trie.Insert(patricia.Prefix(command), detail)
		idx.commands = append(idx.commands, command)
	})
	sort.Strings(idx.commands)
	log.Debugf("search index built: %d commands", len(idx.commands))
	return idx
}

// Len returns the number of indexed commands.
func (idx *Index) Len() int {
	return len(idx.commands)
}

// Detail returns the record for an exact full command, or nil.
func (idx *Index) Detail(command string) *cmdtree.Detail {
	normalized := strings.Join(strings.Fields(strings.ToLower(command)), " ")
	item := idx.trie.Get(patricia.Prefix(normalized))
	if item == nil {
		return nil
	}
	return item.(*cmdtree.Detail)
}

// QueryPrefix returns every command starting with the given prefix, in
// ascending order, capped at limit (0 means no cap).
func (idx *Index) QueryPrefix(prefix string, limit int) []Entry {
	lower := strings.ToLower(prefix)
	var entries []Entry
	err := idx.trie.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		entries = append(entries, Entry{
			Command: string(p),
			Detail:  item.(*cmdtree.Detail),
		})
		return nil
	})
	if err != nil {
		log.Errorf("visiting index subtree: %v", err)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Command < entries[j].Command })
	return capEntries(entries, limit)
}

// QuerySubstring returns commands containing the query anywhere,
// case-insensitively, in ascending order.
func (idx *Index) QuerySubstring(query string, limit int) []Entry {
	lower := strings.ToLower(query)
	var entries []Entry
	for _, command := range idx.commands {
		if strings.Contains(command, lower) {
			entries = append(entries, Entry{Command: command, Detail: idx.Detail(command)})
		}
	}
	return capEntries(entries, limit)
}

// QueryFuzzy ranks commands by fuzzy match quality against the query.
func (idx *Index) QueryFuzzy(query string, limit int) []Entry {
	matches := fuzzy.Find(strings.ToLower(query), idx.commands)
	var entries []Entry
	for _, match := range matches {
		entries = append(entries, Entry{
			Command: match.Str,
			Detail:  idx.Detail(match.Str),
		})
	}
	return capEntries(entries, limit)
}

func capEntries(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
