package introspect

// Type is an observed type. Its fields are private: observations
// are made through a Checker.
type Type struct {
	id          int
	flags       TypeFlags
	objectFlags ObjectFlags

	// intrinsic, interface or type parameter name
	name string

	// literal value: string, float64, bool, *big.Int
	value any

	// union and intersection members
	types []*Type

	// template literal
	texts []string
	holes []*Type

	// references: arrays, tuples and generic interfaces
	target       *Type
	args         []*Type
	tupleLabels  []string
	mapper       *Mapper
	typeParams   []*Symbol
	readonlyView bool

	aliasName string
	aliasArgs []*Type

	// generic alias a reference was instantiated through, and the
	// interned reference it was copied from
	instanceOf string
	origin     *Type

	symbol *Symbol

	members *lazyMembers
	mapped  *MappedInfo

	// deferred forms over type parameters
	operand     *Type // keyof operand, indexed access object
	index       *Type // indexed access index
	conditional *ConditionalInfo
}

// Mapper is the deferred substitution record of a generic
// instantiation: the declared type parameters and the types they
// were instantiated with, position by position.
type Mapper struct {
	Sources []*Symbol
	Targets []*Type
}

// Lookup returns the argument bound to the parameter named name.
func (m *Mapper) Lookup(name string) (*Type, bool) {
	if m == nil {
		return nil, false
	}
	for i, src := range m.Sources {
		if src.Name == name && i < len(m.Targets) {
			return m.Targets[i], true
		}
	}
	return nil, false
}

// Names returns the parameter names in declaration order.
func (m *Mapper) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.Sources))
	for i, src := range m.Sources {
		names[i] = src.Name
	}
	return names
}

// IndexInfo is an index signature of an object type.
type IndexInfo struct {
	KeyName   string
	KeyType   *Type
	ValueType *Type
	Readonly  bool
}

// MappedInfo keeps the declared form of a mapped type for
// rendering.
type MappedInfo struct {
	KeyName    string
	Constraint *Type
	NameType   *Type
	Template   *Type
	Optional   bool
	Readonly   bool
}

// ConditionalInfo keeps the operands of a deferred conditional.
type ConditionalInfo struct {
	Check   *Type
	Extends *Type
	True    *Type
	False   *Type
}

// MemberResolver lazily computes the members of an object type.
type MemberResolver func() ([]*Symbol, []IndexInfo)

type lazyMembers struct {
	state   resolveState
	resolve MemberResolver
	props   []*Symbol
	indexes []IndexInfo
}

type resolveState int

const (
	unresolved resolveState = iota
	resolving
	resolved
)

func (m *lazyMembers) get() ([]*Symbol, []IndexInfo) {
	switch m.state {
	case resolved:
		return m.props, m.indexes
	case resolving:
		// members that refer back to themselves while being
		// computed see an empty shape
		return nil, nil
	}
	m.state = resolving
	if m.resolve != nil {
		m.props, m.indexes = m.resolve()
	}
	m.state = resolved
	m.resolve = nil
	return m.props, m.indexes
}

// ID returns the creation order of the type within its universe.
func (t *Type) ID() int {
	return t.id
}
