package matcher

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.typeassert/pkg/types"
)

// Params carries the expectation of a named check. Each check reads
// the fields it needs and ignores the rest.
type Params struct {
	// Expected is the descriptor of the check's own kind; nil
	// leaves the shape unpinned.
	Expected *types.Descriptor

	// Name is the alias name expected by isTypeReference.
	Name string

	// Count is the argument count expected by hasNbArguments.
	Count int

	// Text is the rendering expected by equals.
	Text string

	// Args are the type arguments expected by hasArguments and
	// isTypeReference; nil skips the argument check.
	Args types.Args
}

// Check is a named comparison of a context against an expectation.
type Check func(ctx *Context, p Params) Result

// Engine is the table of named checks. It is safe for concurrent
// use.
type Engine struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewEngine creates an Engine with every built-in check
// registered.
func NewEngine() *Engine {
	e := &Engine{
		checks: make(map[string]Check),
	}
	e.registerDefaults()
	return e
}

func (e *Engine) registerDefaults() {
	e.checks["equals"] = Equals
	e.checks["hasArguments"] = HasArguments
	e.checks["hasNbArguments"] = HasNbArguments
	e.checks["is"] = func(ctx *Context, p Params) Result {
		return Is(ctx, p.Expected)
	}
	e.checks["isAnonymousObject"] = IsAnonymousObject
	e.checks["isAny"] = IsAny
	e.checks["isArray"] = IsArray
	e.checks["isBigInt"] = IsBigInt
	e.checks["isBigIntLiteral"] = IsBigIntLiteral
	e.checks["isBoolean"] = IsBoolean
	e.checks["isBooleanLiteral"] = IsBooleanLiteral
	e.checks["isDefined"] = IsDefined
	e.checks["isIntersection"] = IsIntersection
	e.checks["isMappedType"] = IsMappedType
	e.checks["isNever"] = IsNever
	e.checks["isNotDefined"] = IsNotDefined
	e.checks["isNull"] = IsNull
	e.checks["isNumber"] = IsNumber
	e.checks["isNumberLiteral"] = IsNumberLiteral
	e.checks["isObject"] = IsObject
	e.checks["isString"] = IsString
	e.checks["isStringLiteral"] = IsStringLiteral
	e.checks["isSymbol"] = IsSymbol
	e.checks["isTemplateLiteral"] = IsTemplateLiteral
	e.checks["isTuple"] = IsTuple
	e.checks["isTypeReference"] = IsTypeReference
	e.checks["isUndefined"] = IsUndefined
	e.checks["isUnion"] = IsUnion
	e.checks["isUnknown"] = IsUnknown
	e.checks["isVoid"] = IsVoid
}

// Register adds a custom check. Returns an error if the name is
// already registered.
func (e *Engine) Register(name string, check Check) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.checks[name]; exists {
		return fmt.Errorf("check already registered: %s", name)
	}

	e.checks[name] = check
	return nil
}

// Lookup returns the check registered under name.
func (e *Engine) Lookup(name string) (Check, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	check, ok := e.checks[name]
	return check, ok
}

// HasCheck returns true if a check is registered under name.
func (e *Engine) HasCheck(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Names returns the registered check names in sorted order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.checks))
	for name := range e.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run invokes the named check. An unknown name is reported as
// misuse.
func (e *Engine) Run(ctx *Context, name string, p Params) Result {
	check, ok := e.Lookup(name)
	if !ok {
		return Misuse(func() string {
			return fmt.Sprintf("unknown check: %s", name)
		})
	}
	return check(ctx, p)
}

// Is dispatches on the descriptor's kind to the matching check.
// Kinds without a check are reported as misuse.
func Is(ctx *Context, d *types.Descriptor) Result {
	if d == nil {
		return Misuse(func() string {
			p := ctx.printer()
			return p.Error(p.Hint("is", ctx, ""), "no expected type supplied", "")
		})
	}

	p := Params{Expected: d}
	switch d.Kind {
	case types.KindAny:
		return IsAny(ctx, p)
	case types.KindUnknown:
		return IsUnknown(ctx, p)
	case types.KindVoid:
		return IsVoid(ctx, p)
	case types.KindUndefined:
		return IsUndefined(ctx, p)
	case types.KindNull:
		return IsNull(ctx, p)
	case types.KindNever:
		return IsNever(ctx, p)
	case types.KindString:
		return IsString(ctx, p)
	case types.KindStringLiteral:
		return IsStringLiteral(ctx, p)
	case types.KindNumber:
		return IsNumber(ctx, p)
	case types.KindNumberLiteral:
		return IsNumberLiteral(ctx, p)
	case types.KindBoolean:
		return IsBoolean(ctx, p)
	case types.KindBooleanLiteral:
		return IsBooleanLiteral(ctx, p)
	case types.KindBigInt:
		return IsBigInt(ctx, p)
	case types.KindBigIntLiteral:
		return IsBigIntLiteral(ctx, p)
	case types.KindSymbol:
		return IsSymbol(ctx, p)
	case types.KindArray:
		return IsArray(ctx, p)
	case types.KindTuple:
		return IsTuple(ctx, p)
	case types.KindUnion:
		return IsUnion(ctx, p)
	case types.KindTemplateLiteral:
		return IsTemplateLiteral(ctx, p)
	case types.KindObject:
		return IsObject(ctx, p)
	}

	return Misuse(func() string {
		pr := ctx.printer()
		return pr.Error(
			pr.Hint("is", ctx, d.String()),
			fmt.Sprintf("no matcher found for the expected type %s", d.Kind),
			"Expected: "+pr.Value(d),
		)
	})
}
