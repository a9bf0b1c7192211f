package assertion

import (
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/types"
)

// Definition describes a single check to evaluate against a
// selected type. It is the declarative form of an Assertion method
// call.
type Definition struct {
	// Type is the exported type name to select.
	Type string `json:"type" yaml:"type"`

	// Check is the check name (e.g. "isUnion", "hasArguments").
	Check string `json:"check" yaml:"check"`

	// Not negates the check.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`

	// Expected is the descriptor passed to descriptor checks.
	Expected *types.Descriptor `json:"expected,omitempty" yaml:"expected,omitempty"`

	// Name is the generic name expected by isTypeReference.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Count is the argument count expected by hasNbArguments.
	Count int `json:"count,omitempty" yaml:"count,omitempty"`

	// Text is the rendering expected by equals.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Args are the named type arguments of hasArguments and
	// isTypeReference.
	Args types.Args `json:"args,omitempty" yaml:"args,omitempty"`

	// Message is a human-readable description shown on failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Params converts the definition into check parameters.
func (d Definition) Params() matcher.Params {
	return matcher.Params{
		Expected: d.Expected,
		Name:     d.Name,
		Count:    d.Count,
		Text:     d.Text,
		Args:     d.Args,
	}
}

// Evaluate runs one definition. Unlike the Assertion methods it
// never reports to the bound TestingT; an unknown check becomes a
// misused, failing result.
func (s *Selector) Evaluate(def Definition) Result {
	return s.evaluate(s.Type(def.Type), def)
}

// EvaluateAll runs the definitions in order. Each type name is
// selected once.
func (s *Selector) EvaluateAll(defs []Definition) []Result {
	selected := make(map[string]*Assertion)
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		a, ok := selected[def.Type]
		if !ok {
			a = s.Type(def.Type)
			selected[def.Type] = a
		}
		results = append(results, s.evaluate(a, def))
	}
	return results
}

func (s *Selector) evaluate(a *Assertion, def Definition) Result {
	if def.Not {
		a = a.Not()
	}
	res, err := a.Invoke(def.Check, def.Params())
	if err != nil {
		return Result{
			Type:    def.Type,
			Check:   def.Check,
			Negated: def.Not,
			Outcome: matcher.Misused,
			Message: err.Error(),
		}
	}
	if !res.Passed && def.Message != "" {
		res.Message = def.Message + "\n\n" + res.Message
	}
	return res
}
