// Package repl implements the interactive read-evaluate-print loop:
// line editing with persistent history, colorized echo of results, and
// one session scope threaded across inputs.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/evaluator"
	"github.com/luizgabriel/LispInterpreter/internal/parser"
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

type REPL struct {
	cfg    *config.Config
	eval   *evaluator.Evaluator
	render *Renderer
}

func New(cfg *config.Config) *REPL {
	eval := evaluator.New()
	eval.MaxDepth = cfg.MaxDepth
	return &REPL{
		cfg:    cfg,
		eval:   eval,
		render: NewRenderer(cfg.Color),
	}
}

// Run reads and evaluates lines until EOF. Ctrl-C aborts the current
// line only; Ctrl-D ends the session.
func (r *REPL) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	r.loadHistory(line)
	defer r.saveHistory(line)

	sc := scope.Default()
	for {
		input, err := line.Prompt(r.cfg.Prompt)
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Println()
			return nil
		default:
			return err
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		sc = r.evalLine(sc, input)
	}
}

// evalLine evaluates one input line against sc and returns the scope
// for the next line. Failed lines leave the scope untouched. The
// context label is reset to main after each evaluation so the next
// error reports against a fresh top level.
func (r *REPL) evalLine(sc *scope.Scope, input string) *scope.Scope {
	expr, rest, err := parser.Parse(input)
	if err != nil {
		fmt.Printf("%s %s\n", r.render.fg(brightRed, "Parse Error:"), err)
		return sc
	}
	if strings.TrimSpace(rest) != "" {
		fmt.Printf("%s unexpected input: %s\n", r.render.fg(brightRed, "Parse Error:"), rest)
		return sc
	}

	next, result, err := r.eval.Evaluate(sc, expr)
	if err != nil {
		fmt.Printf("%s %s\n", r.render.fg(brightRed, "Evaluation Error:"), r.render.Error(err))
		return sc
	}

	if _, isVoid := result.(*value.Unit); !isVoid {
		fmt.Println(r.render.Value(result))
	}
	return next.WithContext(config.MainContext)
}

func (r *REPL) loadHistory(line *liner.State) {
	f, err := os.Open(r.cfg.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.ReadHistory(f)
}

func (r *REPL) saveHistory(line *liner.State) {
	f, err := os.Create(r.cfg.HistoryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not save history: %s\n", err)
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
