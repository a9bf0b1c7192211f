// Package load compiles type declarations into an introspect
// universe. It parses a practical subset of TypeScript type syntax
// (aliases, interfaces, imports and exports between relative
// modules), evaluates every declaration into observed types and
// collects diagnostics as data.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/source"
)

// Program is a compiled source: its exported symbols and the
// diagnostics of the main file.
type Program struct {
	Source      *source.Source
	Options     CompilerOptions
	Symbols     map[string]*introspect.Symbol
	Diagnostics Diagnostics

	universe *introspect.Universe
	names    []string
}

// Checker returns the introspection oracle of the program.
func (p *Program) Checker() introspect.Checker {
	return p.universe
}

// Universe returns the universe holding the program's types.
func (p *Program) Universe() *introspect.Universe {
	return p.universe
}

// Lookup returns the symbol exported under name.
func (p *Program) Lookup(name string) (*introspect.Symbol, bool) {
	sym, ok := p.Symbols[name]
	return sym, ok
}

// Names returns the exported names in declaration order.
func (p *Program) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// SortedNames returns the exported names in lexical order.
func (p *Program) SortedNames() []string {
	out := p.Names()
	sort.Strings(out)
	return out
}

// Option configures Load.
type Option func(*config)

type config struct {
	logger logging.Logger
}

// WithLogger sets the logger used while loading.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Load compiles a source. Errors are returned only when the project
// configuration cannot be read; problems in the code itself are
// reported in Program.Diagnostics.
func Load(src *source.Source, opts ...Option) (*Program, error) {
	cfg := &config{logger: logging.NullLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	configDir := src.Options.BaseURL
	if configDir == "" {
		configDir = cwd
	}

	options, err := resolveOptions(configDir, src.Options.CompilerOptions, src.Options.IgnoreProjectOptions, log)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	base := importBase(src, options, cwd)
	c := newCompiler(options, log)

	m := newModule(src.Path, base, src.Name(), Sanitize(src.FullCode()))
	if src.Path != "" {
		c.modules[src.Path] = m
	}
	m.declare()
	c.checkImports(m)
	c.checkExports(m)
	c.checkDeclarations(m)

	prog := &Program{
		Source:   src,
		Options:  options,
		Symbols:  make(map[string]*introspect.Symbol),
		universe: c.u,
	}
	for _, name := range m.exportOrder {
		e := c.exported(m, name, 0)
		if e == nil {
			continue
		}
		prog.Symbols[name] = c.symbol(e)
		prog.names = append(prog.names, name)
	}
	prog.Diagnostics = m.r.diags.sorted()

	for path, dep := range c.modules {
		if dep == m || len(dep.r.diags) == 0 {
			continue
		}
		log.Debug("imported module has diagnostics",
			logging.StringField("path", path),
			logging.IntField("diagnostics", len(dep.r.diags)))
	}

	log.Info("program loaded",
		logging.StringField("source", src.Name()),
		logging.StringField("kind", src.Kind.String()),
		logging.IntField("symbols", len(prog.names)),
		logging.IntField("diagnostics", len(prog.Diagnostics)),
		logging.BoolField("strict", options.Strict))
	return prog, nil
}

func importBase(src *source.Source, options CompilerOptions, cwd string) string {
	switch {
	case src.Options.BaseURL != "":
		return src.Options.BaseURL
	case options.BaseURL != "":
		return options.BaseURL
	case src.Path != "":
		return filepath.Dir(src.Path)
	}
	return cwd
}

// FromFile loads a .ts or .d.ts file.
func FromFile(path string, srcOpts source.Options, opts ...Option) (*Program, error) {
	src, err := source.FromFile(path, srcOpts)
	if err != nil {
		return nil, err
	}
	return Load(src, opts...)
}

// FromRecord loads one exported alias per declaration.
func FromRecord(decls []source.Declaration, srcOpts source.Options, opts ...Option) (*Program, error) {
	return Load(source.FromRecord(decls, srcOpts), opts...)
}

// FromRaw loads code given as a string.
func FromRaw(code string, srcOpts source.Options, opts ...Option) (*Program, error) {
	return Load(source.FromRaw(code, srcOpts), opts...)
}

// checkDeclarations resolves every declaration of the main module
// and the members reachable from it, so that semantic errors are
// reported even for names no assertion looks at.
func (c *compiler) checkDeclarations(m *module) {
	visited := make(map[int]bool)
	for _, name := range m.order {
		e := m.entities[name]
		sym := c.symbol(e)
		c.walk(c.u.DeclaredTypeOf(sym), visited)
	}
}

func (c *compiler) walk(t *introspect.Type, visited map[int]bool) {
	if t == nil || visited[t.ID()] {
		return
	}
	visited[t.ID()] = true

	u := c.u
	flags := u.Flags(t)
	switch {
	case flags&introspect.FlagUnion != 0:
		for _, m := range u.UnionMembers(t) {
			c.walk(m, visited)
		}
	case flags&introspect.FlagIntersection != 0:
		for _, m := range u.IntersectionMembers(t) {
			c.walk(m, visited)
		}
	case flags&introspect.FlagObject != 0:
		for _, arg := range u.TypeArguments(t) {
			c.walk(arg, visited)
		}
		if info := u.MappedInfo(t); info != nil && c.isGeneric(info.Constraint) {
			return
		}
		for _, p := range u.Properties(t) {
			c.walk(u.TypeOfSymbol(p), visited)
		}
		for _, idx := range u.IndexInfos(t) {
			c.walk(idx.ValueType, visited)
		}
	}
}
