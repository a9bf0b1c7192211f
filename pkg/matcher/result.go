package matcher

// Outcome classifies the result of a check.
type Outcome int

const (
	// Passed means the observed type conforms.
	Passed Outcome = iota
	// Failed is a recoverable mismatch.
	Failed
	// Aborted is a structural mismatch that must not be combined
	// with partial results: wrong arity, union coverage gaps,
	// missing object keys.
	Aborted
	// Misused reports an assertion authoring error: an undefined
	// type name, a check applied to the wrong kind of type, or a
	// descriptor with no matching check.
	Misused
)

var outcomeNames = map[Outcome]string{
	Passed:  "passed",
	Failed:  "failed",
	Aborted: "aborted",
	Misused: "misused",
}

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the outcome by name in reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of a check. The message is built only when
// it is requested.
type Result struct {
	Outcome Outcome
	message func() string
}

// Pass returns a passing result.
func Pass() Result {
	return Result{Outcome: Passed}
}

// PassWith returns a passing result carrying a message, shown when
// the result is negated.
func PassWith(message func() string) Result {
	return Result{Outcome: Passed, message: message}
}

// Fail returns a recoverable failing result.
func Fail(message func() string) Result {
	return Result{Outcome: Failed, message: message}
}

// Abort returns a structural abort.
func Abort(message func() string) Result {
	return Result{Outcome: Aborted, message: message}
}

// Misuse returns an authoring error.
func Misuse(message func() string) Result {
	return Result{Outcome: Misused, message: message}
}

// Passed reports whether the check passed.
func (r Result) Passed() bool {
	return r.Outcome == Passed
}

// Message builds the diagnostic message.
func (r Result) Message() string {
	if r.message == nil {
		return ""
	}
	return r.message()
}

// Prefixed returns the result with its message prefixed.
func (r Result) Prefixed(prefix string) Result {
	inner := r.message
	r.message = func() string {
		if inner == nil {
			return prefix
		}
		return prefix + inner()
	}
	return r
}

// Safe converts aborts and misuse into a recoverable failure. It is
// applied wherever a nested result is inspected instead of being
// propagated.
func Safe(r Result) Result {
	if r.Outcome == Aborted || r.Outcome == Misused {
		r.Outcome = Failed
	}
	return r
}

// FirstFailure evaluates steps in order and returns the first
// result that did not pass. Remaining steps are not evaluated.
func FirstFailure(steps ...func() Result) Result {
	for _, step := range steps {
		if r := step(); !r.Passed() {
			return r
		}
	}
	return Pass()
}
