package assertion

import (
	"fmt"
	"strconv"
	"time"

	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/suggest"
)

// Assertion checks the shape of one selected type.
type Assertion struct {
	sel     *Selector
	ctx     *matcher.Context
	negated bool
}

// Result captures the outcome of one check invocation.
type Result struct {
	// Type is the selected type name.
	Type string `json:"type"`

	// Check is the name of the evaluated check.
	Check string `json:"check"`

	// Negated reports whether the outcome was flipped.
	Negated bool `json:"negated"`

	// Expected renders the expectation passed to the check.
	Expected string `json:"expected,omitempty"`

	// Outcome is the outcome of the check before negation, with
	// aborts already turned into failures.
	Outcome matcher.Outcome `json:"outcome"`

	// Passed is the final verdict.
	Passed bool `json:"passed"`

	// Message explains a failing verdict.
	Message string `json:"message,omitempty"`

	// Duration is the time spent in the check.
	Duration time.Duration `json:"duration"`
}

// Name returns the selected type name.
func (a *Assertion) Name() string {
	return a.ctx.Root
}

// Defined reports whether the selected name resolved to a type.
func (a *Assertion) Defined() bool {
	return a.ctx.Type != nil
}

// Negated reports whether checks on this assertion are negated.
func (a *Assertion) Negated() bool {
	return a.negated
}

// Not returns a copy of the assertion whose checks are negated.
// Calling Not on a negated assertion restores the plain form.
func (a *Assertion) Not() *Assertion {
	c := *a
	c.negated = !a.negated
	return &c
}

// Invoke runs the named check. An unknown name returns an error
// wrapping ErrUnknownCheck, with the closest known name as a hint.
//
// Negation flips passed and failed outcomes. Aborted and misused
// outcomes always fail, negated or not.
func (a *Assertion) Invoke(check string, p matcher.Params) (Result, error) {
	engine := a.sel.engine
	if !engine.HasCheck(check) {
		if closest, ok := suggest.Closest(check, engine.Names()); ok {
			return Result{}, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownCheck, check, closest)
		}
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCheck, check)
	}

	ctx := a.ctx.Derive(matcher.WithNegated(a.negated))
	start := time.Now()
	r := engine.Run(ctx, check, p)
	elapsed := time.Since(start)

	res := Result{
		Type:     a.ctx.Root,
		Check:    check,
		Negated:  a.negated,
		Expected: describeParams(p),
		Outcome:  r.Outcome,
		Duration: elapsed,
	}
	switch {
	case r.Outcome == matcher.Aborted, r.Outcome == matcher.Misused:
		res.Passed = false
	case a.negated:
		res.Passed = !r.Passed()
	default:
		res.Passed = r.Passed()
	}
	if !res.Passed {
		res.Message = r.Message()
		if res.Message == "" {
			pr := ctx.Printer
			if pr == nil {
				pr = matcher.NewPrinter(false)
			}
			res.Message = pr.Hint(check, ctx, res.Expected) + "\n\n" +
				"Received: " + pr.Received(ctx.Describe(ctx.Type))
		}
	}

	a.log(res, start)
	return res, nil
}

func (a *Assertion) log(res Result, start time.Time) {
	record := logging.CheckRecord{
		Timestamp:  start.Format(time.RFC3339Nano),
		Suite:      a.sel.suite,
		Type:       res.Type,
		Check:      res.Check,
		Negated:    res.Negated,
		Outcome:    res.Outcome.String(),
		Passed:     res.Passed,
		Message:    res.Message,
		DurationUs: res.Duration.Microseconds(),
	}
	a.sel.logger.Debug("check evaluated", record.Fields()...)
	a.sel.logger.LogCheck(record)
}

// run invokes a check and reports a failure to the bound TestingT.
func (a *Assertion) run(check string, p matcher.Params) bool {
	a.sel.helper()
	res, err := a.Invoke(check, p)
	if err != nil {
		a.sel.report(err.Error())
		return false
	}
	if !res.Passed {
		a.sel.report(res.Message)
	}
	return res.Passed
}

func describeParams(p matcher.Params) string {
	switch {
	case p.Expected != nil:
		return p.Expected.String()
	case p.Name != "":
		return p.Name
	case p.Text != "":
		return strconv.Quote(p.Text)
	case p.Args != nil:
		s := ""
		for i, arg := range p.Args {
			if i > 0 {
				s += ", "
			}
			s += arg.Name + ": " + arg.Type.String()
		}
		return "{" + s + "}"
	case p.Count != 0:
		return strconv.Itoa(p.Count)
	}
	return ""
}
