package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/evaluator"
	"github.com/luizgabriel/LispInterpreter/internal/parser"
	"github.com/luizgabriel/LispInterpreter/internal/repl"
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: lisp [options] [script]

Options:
  -e, --eval <expr>     evaluate an expression and print the result
  -c, --config <path>   load a specific lisp.yaml
  -h, --help            show this help

With no script, lisp starts an interactive session.
`)
}

// isSourceFile checks if a file has a recognized source extension.
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func main() {
	args := os.Args[1:]

	var (
		configPath string
		evalExpr   string
		script     string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			usage()
			return
		case "-c", "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: missing argument for --config")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case "-e", "--eval":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: missing argument for --eval")
				os.Exit(2)
			}
			i++
			evalExpr = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "Error: unknown option %s\n", args[i])
				usage()
				os.Exit(2)
			}
			if script != "" {
				fmt.Fprintln(os.Stderr, "Error: only one script may be given")
				os.Exit(2)
			}
			script = args[i]
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	switch {
	case evalExpr != "":
		runSource(cfg, evalExpr, true)
	case script != "":
		if !isSourceFile(script) {
			fmt.Fprintf(os.Stderr, "Warning: %s has no recognized source extension\n", script)
		}
		source, err := os.ReadFile(script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", script, err)
			os.Exit(1)
		}
		runSource(cfg, string(source), false)
	default:
		if err := repl.New(cfg).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover()
}

// runSource parses and evaluates every expression of source under one
// threaded scope. When echo is set, non-void results print to stdout.
func runSource(cfg *config.Config, source string, echo bool) {
	exprs, err := parser.ParseAll(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse Error: %s\n", err)
		os.Exit(1)
	}

	eval := evaluator.New()
	eval.MaxDepth = cfg.MaxDepth
	render := repl.NewRenderer(cfg.Color)

	sc := scope.Default()
	for _, expr := range exprs {
		next, result, err := eval.Evaluate(sc, expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Evaluation Error: %s\n", err)
			os.Exit(1)
		}
		if _, isVoid := result.(*value.Unit); echo && !isVoid {
			fmt.Println(render.Value(result))
		}
		sc = next.WithContext(config.MainContext)
	}
}
