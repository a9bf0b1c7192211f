package load

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/logging"
)

var expectErrorPattern = regexp.MustCompile(`(?m)^[ \t]*//[ \t]*@ts-expect-error.*$`)

// Sanitize blanks out `// @ts-expect-error` directive lines. Line
// numbers are preserved.
func Sanitize(code string) string {
	return expectErrorPattern.ReplaceAllString(code, "")
}

type entityKind int

const (
	entityAlias entityKind = iota
	entityInterface
)

// entity is a declared type name: an alias or a (merged)
// interface.
type entity struct {
	name   string
	kind   entityKind
	mod    *module
	alias  *aliasDecl
	ifaces []*interfaceDecl

	sym        *introspect.Symbol
	params     []*introspect.Symbol
	paramTypes []*introspect.Type
	instances  map[string]*instance
	reported   bool
}

type instance struct {
	resolving bool
	typ       *introspect.Type
}

func (e *entity) typeParams() []*typeParam {
	if e.kind == entityAlias {
		return e.alias.params
	}
	return e.ifaces[0].params
}

func (e *entity) pos() int {
	if e.kind == entityAlias {
		return e.alias.pos
	}
	return e.ifaces[0].pos
}

// binding is an imported name, or a re-exported one.
type binding struct {
	spec *specifier
	from string

	resolved bool
	target   *entity
}

type exportRef struct {
	local   string
	spec    *specifier
	binding *binding
}

// module is one parsed file with its declarations.
type module struct {
	path string
	dir  string
	src  string
	file *sourceFile
	r    *reporter

	entities    map[string]*entity
	order       []string
	imports     map[string]*binding
	importOrder []string
	exports     map[string]*exportRef
	exportOrder []string
}

func newModule(path, dir, name, src string) *module {
	r := newReporter(name, src)
	return &module{
		path:     path,
		dir:      dir,
		src:      src,
		file:     parse(src, r),
		r:        r,
		entities: make(map[string]*entity),
		imports:  make(map[string]*binding),
		exports:  make(map[string]*exportRef),
	}
}

func (m *module) report(offset, code int, format string, args ...any) {
	m.r.report(PhaseSemantic, offset, code, format, args...)
}

// declare collects the declarations, imports and exports of the
// module.
func (m *module) declare() {
	for _, stmt := range m.file.statements {
		switch s := stmt.(type) {
		case *aliasDecl:
			m.declareEntity(&entity{name: s.name, kind: entityAlias, mod: m, alias: s}, s.pos)
			if s.exported {
				m.addExport(s.name, &exportRef{local: s.name})
			}
		case *interfaceDecl:
			if prev, ok := m.entities[s.name]; ok && prev.kind == entityInterface {
				prev.ifaces = append(prev.ifaces, s)
			} else {
				m.declareEntity(&entity{name: s.name, kind: entityInterface, mod: m, ifaces: []*interfaceDecl{s}}, s.pos)
			}
			if s.exported {
				m.addExport(s.name, &exportRef{local: s.name})
			}
		case *importDecl:
			for _, spec := range s.specs {
				local := spec.local()
				if _, dup := m.entities[local]; dup {
					m.report(spec.pos, CodeDuplicateIdentifier, "Duplicate identifier '%s'.", local)
					continue
				}
				if _, dup := m.imports[local]; dup {
					m.report(spec.pos, CodeDuplicateIdentifier, "Duplicate identifier '%s'.", local)
					continue
				}
				m.imports[local] = &binding{spec: spec, from: s.from}
				m.importOrder = append(m.importOrder, local)
			}
		case *exportDecl:
			for _, spec := range s.specs {
				ref := &exportRef{local: spec.name, spec: spec}
				if s.from != "" {
					ref.binding = &binding{spec: spec, from: s.from}
				}
				m.addExport(spec.local(), ref)
			}
		}
	}
}

func (m *module) declareEntity(e *entity, pos int) {
	if e.name == "" {
		return
	}
	_, dupEntity := m.entities[e.name]
	_, dupImport := m.imports[e.name]
	if dupEntity || dupImport {
		m.report(pos, CodeDuplicateIdentifier, "Duplicate identifier '%s'.", e.name)
		if prev, ok := m.entities[e.name]; ok {
			m.report(prev.pos(), CodeDuplicateIdentifier, "Duplicate identifier '%s'.", e.name)
		}
		return
	}
	m.entities[e.name] = e
	m.order = append(m.order, e.name)
}

func (m *module) addExport(name string, ref *exportRef) {
	if _, ok := m.exports[name]; !ok {
		m.exportOrder = append(m.exportOrder, name)
	}
	m.exports[name] = ref
}

// localNames lists every name declared or imported by the module.
func (m *module) localNames() []string {
	names := make([]string, 0, len(m.order)+len(m.importOrder))
	names = append(names, m.order...)
	names = append(names, m.importOrder...)
	return names
}

// moduleCandidates lists the files a relative module specifier may
// resolve to.
func moduleCandidates(dir, spec string) []string {
	base := filepath.Join(dir, spec)
	if strings.HasSuffix(spec, ".ts") {
		return []string{base}
	}
	return []string{
		base + ".ts",
		base + ".d.ts",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.d.ts"),
	}
}

func isRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || filepath.IsAbs(spec)
}

// loadModule resolves a module specifier from dir. It returns nil
// when the module cannot be found.
func (c *compiler) loadModule(dir, spec string) *module {
	if !isRelative(spec) {
		return nil
	}
	for _, candidate := range moduleCandidates(dir, spec) {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if m, ok := c.modules[abs]; ok {
			return m
		}
		info, err := os.Stat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			c.log.Warn("cannot read module", logging.StringField("path", abs), logging.ErrorField(err))
			continue
		}
		m := newModule(abs, filepath.Dir(abs), filepath.Base(abs), Sanitize(string(data)))
		c.modules[abs] = m
		m.declare()
		c.log.Debug("module loaded",
			logging.StringField("path", abs),
			logging.IntField("declarations", len(m.order)))
		return m
	}
	return nil
}

// resolveBinding follows an import to the entity it names.
func (c *compiler) resolveBinding(m *module, b *binding) *entity {
	if b.resolved {
		return b.target
	}
	b.resolved = true
	if target := c.loadModule(m.dir, b.from); target != nil {
		b.target = c.exported(target, b.spec.name, 0)
	}
	return b.target
}

// exported returns the entity a module exports under name.
func (c *compiler) exported(m *module, name string, depth int) *entity {
	ref, ok := m.exports[name]
	if !ok || depth > maxExportHops {
		return nil
	}
	if ref.binding != nil {
		return c.resolveBinding(m, ref.binding)
	}
	if e, ok := m.entities[ref.local]; ok {
		return e
	}
	if b, ok := m.imports[ref.local]; ok {
		return c.resolveBinding(m, b)
	}
	return nil
}

const maxExportHops = 16

// lookup resolves a name in the scope of a module: local
// declarations, then imports, then the built-in library.
func (c *compiler) lookup(m *module, name string) *entity {
	if e, ok := m.entities[name]; ok {
		return e
	}
	if b, ok := m.imports[name]; ok {
		return c.resolveBinding(m, b)
	}
	if m != c.prelude {
		if e, ok := c.prelude.entities[name]; ok {
			return e
		}
	}
	return nil
}

// checkImports reports unresolved modules and unknown imported
// members.
func (c *compiler) checkImports(m *module) {
	reported := make(map[string]bool)
	for _, local := range m.importOrder {
		b := m.imports[local]
		target := c.loadModule(m.dir, b.from)
		if target == nil {
			if !reported[b.from] {
				reported[b.from] = true
				m.report(b.spec.pos, CodeCannotFindModule,
					"Cannot find module '%s' or its corresponding type declarations.", b.from)
			}
			continue
		}
		if c.exported(target, b.spec.name, 0) == nil {
			m.report(b.spec.pos, CodeNoExportedMember,
				"Module '\"%s\"' has no exported member '%s'.", b.from, b.spec.name)
		}
	}
}

// checkExports reports export specifiers that name nothing
// exportable.
func (c *compiler) checkExports(m *module) {
	for _, name := range m.exportOrder {
		ref := m.exports[name]
		if ref.spec == nil {
			continue
		}
		if ref.binding != nil {
			target := c.loadModule(m.dir, ref.binding.from)
			switch {
			case target == nil:
				m.report(ref.spec.pos, CodeCannotFindModule,
					"Cannot find module '%s' or its corresponding type declarations.", ref.binding.from)
			case c.exported(target, ref.spec.name, 0) == nil:
				m.r.report(PhaseDeclaration, ref.spec.pos, CodeNoExportedMember,
					"Module '\"%s\"' has no exported member '%s'.", ref.binding.from, ref.spec.name)
			}
			continue
		}
		if _, ok := m.entities[ref.local]; ok {
			continue
		}
		if _, ok := m.imports[ref.local]; ok {
			continue
		}
		if _, ok := c.prelude.entities[ref.local]; ok || isBuiltinName(ref.local) {
			m.r.report(PhaseDeclaration, ref.spec.pos, CodeCannotExport,
				"Cannot export '%s'. Only local declarations can be exported from a module.", ref.local)
			continue
		}
		c.reportUnknownName(m, ref.spec.pos, ref.local, nil)
	}
}
