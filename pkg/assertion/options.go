package assertion

import (
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
)

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger receiving one record per evaluated
// check. The loader helpers use it as well.
func WithLogger(l logging.Logger) Option {
	return func(s *Selector) {
		s.logger = l
	}
}

// WithPrinter sets the printer used to render diagnostic messages.
func WithPrinter(p *matcher.Printer) Option {
	return func(s *Selector) {
		s.printer = p
	}
}

// WithColors is a shorthand for WithPrinter(matcher.NewPrinter(on)).
func WithColors(on bool) Option {
	return WithPrinter(matcher.NewPrinter(on))
}

// WithEngine replaces the check table.
func WithEngine(e *matcher.Engine) Option {
	return func(s *Selector) {
		s.engine = e
	}
}

// WithSuite tags the check records with a suite name.
func WithSuite(name string) Option {
	return func(s *Selector) {
		s.suite = name
	}
}
