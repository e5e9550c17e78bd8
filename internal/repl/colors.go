package repl

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/evaluator"
	"github.com/luizgabriel/LispInterpreter/internal/parser"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// Terminal color detection, cached for the process lifetime.
var (
	colorOnce sync.Once
	colorVal  bool
)

func terminalSupportsColor() bool {
	colorOnce.Do(func() {
		colorVal = detectColor()
	})
	return colorVal
}

func detectColor() bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Renderer renders values and errors for the terminal, with ANSI
// colors when the configured mode and the terminal allow them.
type Renderer struct {
	enabled bool
}

func NewRenderer(mode string) *Renderer {
	switch mode {
	case config.ColorAlways:
		return &Renderer{enabled: os.Getenv("NO_COLOR") == ""}
	case config.ColorNever:
		return &Renderer{enabled: false}
	default:
		return &Renderer{enabled: terminalSupportsColor()}
	}
}

func (r *Renderer) wrap(code, reset, s string) string {
	if !r.enabled {
		return s
	}
	return code + s + reset
}

func (r *Renderer) fg(colorCode int, s string) string {
	return r.wrap(fmt.Sprintf("\033[%dm", colorCode), "\033[39m", s)
}

func (r *Renderer) italic(s string) string {
	return r.wrap("\033[3m", "\033[23m", s)
}

func (r *Renderer) bold(s string) string {
	return r.wrap("\033[1m", "\033[22m", s)
}

const (
	brightRed    = 91
	brightGreen  = 92
	brightYellow = 93
	brightBlue   = 94
)

// Value renders v with the session color scheme: operation names
// bright blue, special forms bright red, numbers bright green,
// booleans bright yellow, text bright green with italic quotes.
func (r *Renderer) Value(v value.Value) string {
	switch val := v.(type) {
	case *value.Unit:
		return r.fg(brightBlue, "void")
	case *value.Symbol:
		if evaluator.IsSpecialForm(val.Name) {
			return r.fg(brightRed, val.Name)
		}
		return r.fg(brightBlue, val.Name)
	case *value.Number:
		return r.fg(brightGreen, val.Inspect())
	case *value.Boolean:
		return r.fg(brightYellow, val.Inspect())
	case *value.Text:
		quote := r.italic(r.fg(brightGreen, `"`))
		return quote + r.fg(brightGreen, val.Value) + quote
	case *value.Quoted:
		return r.italic(r.fg(brightBlue, "'")) + r.Value(val.Value)
	case *value.Function:
		bound := make([]string, 0, len(val.Applied))
		for i, arg := range val.Applied {
			if i >= len(val.Parameters) {
				break
			}
			bound = append(bound, r.fg(brightBlue, val.Parameters[i])+" = "+r.Value(arg))
		}
		return fmt.Sprintf("(%s %s [%s])", r.fg(brightRed, "fn!"), r.Value(val.Body), strings.Join(bound, ", "))
	case *value.Sequence:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = r.Value(el)
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return v.Inspect()
}

var backtickFragment = regexp.MustCompile("`(?:[^`\\\\]|\\\\.)*`")

// Error renders an evaluation error, re-parsing every backtick-quoted
// value fragment of the message so it colorizes like an echoed value.
func (r *Renderer) Error(err error) string {
	return backtickFragment.ReplaceAllStringFunc(err.Error(), func(match string) string {
		fragment := match[1 : len(match)-1]
		expr, rest, perr := parser.Parse(fragment)
		if perr != nil || strings.TrimSpace(rest) != "" {
			return fragment
		}
		return r.Value(expr)
	})
}
