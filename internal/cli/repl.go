// Package cli is the interactive debug surface: a readline loop with
// live tab completion against the command tree. It exists for testing
// dictionaries and dialect changes before an editor host is attached;
// the IPC server is the production surface.
package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/cliserve/cliserve/pkg/cmdtree"
	"github.com/cliserve/cliserve/pkg/search"
	"github.com/cliserve/cliserve/pkg/suggest"
	"github.com/cliserve/cliserve/pkg/syntax"
)

var categoryStyles = map[syntax.Category]lipgloss.Style{
	syntax.Command:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
	syntax.Negation:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	syntax.Protocol:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	syntax.Parameter:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	syntax.Action:       lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	syntax.IPAddress:    lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	syntax.MACAddress:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	syntax.Number:       lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	syntax.QuotedString: lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
}

var descStyle = lipgloss.NewStyle().Faint(true)

// Repl drives an interactive session over the completion engine.
type Repl struct {
	root        *cmdtree.Node
	engine      *suggest.Engine
	index       *search.Index
	limit       int
	historyFile string
	rl          *readline.Instance
}

// NewRepl wires the debug session to a built tree and its engine.
func NewRepl(root *cmdtree.Node, engine *suggest.Engine, index *search.Index, limit int, historyFile string) *Repl {
	return &Repl{
		root:        root,
		engine:      engine,
		index:       index,
		limit:       limit,
		historyFile: historyFile,
	}
}

// Start runs the readline loop until EOF or "exit". Tab completes the
// next token; '?' lists candidates with descriptions like a device
// console would; Enter classifies the typed tokens and shows command
// detail when the line is a complete command.
func (r *Repl) Start() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cliserve> ",
		HistoryFile:     r.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &treeCompleter{engine: r.engine},
		Listener:        readline.FuncListener(r.helpListener),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	r.rl = rl

	log.Print("cliserve interactive mode")
	log.Print("TAB completes, ? lists candidates, Enter inspects the line, 'exit' quits")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		r.inspect(line)
	}
}

func (r *Repl) helpListener(line []rune, pos int, key rune) ([]rune, int, bool) {
	if key != '?' || pos < 1 {
		return line, pos, false
	}
	// Strip the '?' readline already inserted.
	clean := make([]rune, 0, len(line)-1)
	clean = append(clean, line[:pos-1]...)
	clean = append(clean, line[pos:]...)
	text := string(clean[:pos-1])

	result := r.engine.Suggest(text, len(text))
	if !result.Triggered {
		// '?' on a blank line lists the top-level commands.
		r.printCandidates(nil, r.root.Tokens())
		return clean, pos - 1, true
	}
	if len(result.Tokens) == 0 {
		fmt.Fprintln(r.rl.Stdout(), "  (no candidates)")
		return clean, pos - 1, true
	}

	prefix := strings.Fields(strings.ToLower(text[:result.Span.Start]))
	r.printCandidates(prefix, result.Tokens)
	return clean, pos - 1, true
}

// printCandidates writes an aligned candidate listing in one call so
// readline refreshes the prompt only once.
func (r *Repl) printCandidates(prefix []string, tokens []string) {
	parent := r.root.Walk(prefix)
	maxWidth := 16
	for _, tok := range tokens {
		if len(tok)+2 > maxWidth {
			maxWidth = len(tok) + 2
		}
	}
	sort.Strings(tokens)
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, tok := range tokens {
		desc := ""
		if child := parent.Child(tok); child.IsCommand() {
			desc = child.Meta.Description
		}
		if desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, tok, descStyle.Render(desc))
		} else {
			fmt.Fprintf(&sb, "  %s\n", tok)
		}
	}
	io.WriteString(r.rl.Stdout(), sb.String())
}

// inspect prints per-token classification and, for complete commands,
// the dictionary detail record.
func (r *Repl) inspect(line string) {
	var rendered []string
	for _, tok := range strings.Fields(line) {
		category := syntax.Classify(tok)
		if style, ok := categoryStyles[category]; ok {
			rendered = append(rendered, style.Render(tok))
		} else {
			rendered = append(rendered, tok)
		}
	}
	fmt.Println(strings.Join(rendered, " "))

	detail := r.index.Detail(line)
	if detail == nil {
		result := r.engine.Suggest(line+" ", len(line)+1)
		if len(result.Tokens) > 0 {
			limit := r.limit
			if limit > 0 && len(result.Tokens) > limit {
				result.Tokens = result.Tokens[:limit]
			}
			fmt.Printf("  incomplete command, next: %s\n", strings.Join(result.Tokens, " "))
		} else {
			fmt.Println("  not in the command dictionary")
		}
		return
	}

	if detail.Description != "" {
		fmt.Printf("  %s\n", detail.Description)
	}
	if detail.Syntax != "" {
		fmt.Printf("  syntax: %s\n", detail.Syntax)
	}
	if len(detail.Params) > 0 {
		fmt.Printf("  params: %s\n", strings.Join(detail.Params, ", "))
	}
	for _, example := range detail.Examples {
		fmt.Printf("  example: %s\n", example)
	}
}

// treeCompleter adapts the suggestion engine to readline's
// AutoComplete interface.
type treeCompleter struct {
	engine *suggest.Engine
}

func (tc *treeCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	result := tc.engine.Suggest(text, len(text))
	if !result.Triggered || len(result.Tokens) == 0 {
		return nil, 0
	}
	// readline expects each candidate as the suffix past the partial.
	partialLen := len(result.Query)
	candidates := make([][]rune, 0, len(result.Tokens))
	for _, tok := range result.Tokens {
		candidates = append(candidates, []rune(tok[partialLen:]+" "))
	}
	return candidates, partialLen
}
