package config

const SourceFileExt = ".lisp"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".lisp", ".lsp", ".flow"}

// Scope context labels. The context is a diagnostic label only; it
// never affects control flow.
const (
	MainContext      = "main"
	AnonymousContext = "anonymous"
)

// Seeded constant names of the default scope.
const (
	MinIntName = "MIN_INT"
	MaxIntName = "MAX_INT"
)

// Built-in operation names referenced outside the registry table.
const (
	ListFuncName       = "list"
	EvalFuncName       = "eval"
	PrintFuncName      = "print"
	DebugFuncName      = "debug"
	PrintScopeFuncName = "print_scope"
	ClearScopeFuncName = "clear_scope"
)

// Special-form names. These are a closed set resolved before generic
// dispatch, so user identifiers ending in `!` do not collide.
const (
	DefFormName  = "def!"
	DefnFormName = "defn!"
	FnFormName   = "fn!"
	IfFormName   = "if!"
)

// REPL defaults.
const (
	DefaultPrompt   = "> "
	HistoryFileName = ".lisp_history"
)

// DefaultMaxDepth bounds evaluator recursion when no config overrides
// it. Recursion is the language's only iteration mechanism, so the
// guard converts stack exhaustion into a recoverable error.
const DefaultMaxDepth = 10000
