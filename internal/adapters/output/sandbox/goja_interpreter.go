package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	"github.com/dop251/goja"
)

// DefaultMaxCallStack bounds recursion depth of candidate code
const DefaultMaxCallStack = 2048

// Canonical entry point names for the supported question family, in lookup order.
// Name sniffing is a best-effort heuristic: a submission defining several of
// these is graded through the first one found.
var entryPointNames = []string{
	"solution", "solve", "main",
	"isPalindrome", "checkPalindrome", "palindrome",
	"twoSum", "reverseString", "reverse", "fizzBuzz", "fibonacci", "factorial",
	"maxSubArray", "longestSubstring", "lengthOfLongestSubstring",
	"isAnagram", "isValid", "mergeSorted", "binarySearch", "countVowels",
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var supportedLanguages = map[string]struct{}{
	"javascript": {},
	"js":         {},
	"node":       {},
	"nodejs":     {},
}

var _ output.Interpreter = (*GojaInterpreter)(nil)

// GojaInterpreter struct - Output adapter running JavaScript in an embedded ECMAScript VM.
// The VM has no filesystem, network or process bindings; a fresh VM is
// created for every Run.
type GojaInterpreter struct {
	maxCallStack int
	entryProbe   string
}

// NewGojaInterpreter func
func NewGojaInterpreter(maxCallStack int) *GojaInterpreter {
	if maxCallStack <= 0 {
		maxCallStack = DefaultMaxCallStack
	}
	return &GojaInterpreter{
		maxCallStack: maxCallStack,
		entryProbe:   buildEntryProbe(entryPointNames),
	}
}

// buildEntryProbe returns an expression evaluating to the first defined entry
// function. typeof keeps undeclared names from throwing, and a separate script
// still sees top-level let/const bindings of the candidate program.
func buildEntryProbe(names []string) string {
	var b strings.Builder
	b.WriteString("(function () {\n")
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			continue
		}
		fmt.Fprintf(&b, "  try { if (typeof %[1]s === \"function\") return %[1]s; } catch (e) {}\n", name)
	}
	b.WriteString("  if (typeof module === \"object\" && typeof module.exports === \"function\") return module.exports;\n")
	b.WriteString("  return undefined;\n})()")
	return b.String()
}

// Supports func
func (g *GojaInterpreter) Supports(language string) bool {
	_, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

// Check compiles code without running it
func (g *GojaInterpreter) Check(language, code string) error {
	if !g.Supports(language) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, language)
	}
	if _, err := goja.Compile("submission.js", code, false); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, syntaxMessage(err))
	}
	return nil
}

// Run evaluates code in a fresh VM, locates the entry function and calls it with args
func (g *GojaInterpreter) Run(ctx context.Context, language, code string, args []any) (result any, err error) {
	if !g.Supports(language) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, language)
	}
	if err := ctx.Err(); err != nil {
		return nil, interruptError(err)
	}

	program, err := goja.Compile("submission.js", code, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, syntaxMessage(err))
	}

	vm := goja.New()
	vm.SetMaxCallStackSize(g.maxCallStack)
	if err := installGlobals(vm); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSandboxRuntime, err)
	}

	// Interrupt the VM when the budget runs out; the watcher exits with Run
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", domain.ErrSandboxRuntime, r)
		}
	}()

	completion, err := vm.RunProgram(program)
	if err != nil {
		return nil, classifyRunError(err)
	}

	entry, err := vm.RunString(g.entryProbe)
	if err != nil {
		return nil, classifyRunError(err)
	}

	fn, ok := goja.AssertFunction(entry)
	if !ok {
		// No known entry point: fall back to the program's final expression
		fn, ok = goja.AssertFunction(completion)
		if !ok {
			return exportValue(completion), nil
		}
	}

	callArgs, err := toJSValues(vm, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSandboxRuntime, err)
	}
	value, err := fn(goja.Undefined(), callArgs...)
	if err != nil {
		return nil, classifyRunError(err)
	}
	return exportValue(value), nil
}

// installGlobals provides the harmless globals candidates commonly touch
func installGlobals(vm *goja.Runtime) error {
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	console := vm.NewObject()
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		if err := console.Set(name, noop); err != nil {
			return err
		}
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}
	module := vm.NewObject()
	if err := module.Set("exports", vm.NewObject()); err != nil {
		return err
	}
	return vm.Set("module", module)
}

// toJSValues rebuilds JSON-shaped Go values as native JS values so arrays and
// objects behave exactly as in a browser or Node
func toJSValues(vm *goja.Runtime, args []any) ([]goja.Value, error) {
	parse, ok := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("parse"))
	if !ok {
		return nil, errors.New("JSON.parse unavailable")
	}
	values := make([]goja.Value, 0, len(args))
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return nil, err
		}
		v, err := parse(goja.Undefined(), vm.ToValue(string(raw)))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func exportValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

func classifyRunError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return interruptError(interrupted.Value())
	}
	var exception *goja.Exception
	if errors.As(err, &exception) {
		return fmt.Errorf("%w: %s", domain.ErrSandboxRuntime, exception.Value().String())
	}
	return fmt.Errorf("%w: %v", domain.ErrSandboxRuntime, err)
}

// interruptError maps the reason a run was stopped. Only a deadline is a timeout.
func interruptError(cause any) error {
	err, ok := cause.(error)
	if !ok {
		return fmt.Errorf("%w: %v", domain.ErrSandboxTimeout, cause)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrSandboxTimeout, err)
	}
	return fmt.Errorf("execution cancelled: %w", err)
}

func syntaxMessage(err error) string {
	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Error()
	}
	return err.Error()
}
