package types

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDescriptor is returned when a document does not
// describe a type.
var ErrInvalidDescriptor = errors.New("invalid type descriptor")

var scalarForms = map[string]func() *Descriptor{
	"any":            Any,
	"unknown":        Unknown,
	"void":           Void,
	"undefined":      Undefined,
	"null":           Null,
	"never":          Never,
	"string":         String,
	"number":         Number,
	"boolean":        Boolean,
	"bigint":         BigInt,
	"symbol":         Symbol,
	"uniqueSymbol":   UniqueSymbol,
	"object":         Object,
	"array":          func() *Descriptor { return Array(nil) },
	"tuple":          func() *Descriptor { return Tuple() },
	"union":          func() *Descriptor { return Union() },
	"intersection":   func() *Descriptor { return Intersection() },
	"template":       func() *Descriptor { return TemplateLiteral() },
	"mapped":         func() *Descriptor { return MappedObject(MappedShape{}) },
	"stringLiteral":  func() *Descriptor { return StringLiteral() },
	"numberLiteral":  func() *Descriptor { return NumberLiteral() },
	"booleanLiteral": func() *Descriptor { return BooleanLiteral() },
	"bigintLiteral":  func() *Descriptor { return BigIntLiteral() },
}

// UnmarshalYAML decodes a descriptor from its document form.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := Decode(node)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

// Decode builds a descriptor from a YAML (or JSON) node. Plain
// scalars name a shape ("string", "never"); single-key mappings
// carry a payload ({union: [string, number]}).
func Decode(node *yaml.Node) (*Descriptor, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if form, ok := scalarForms[node.Value]; ok {
			return form(), nil
		}
		return nil, nodeError(node, "unknown type %q", node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, nodeError(node, "expected a single key mapping")
		}
		return decodeForm(node.Content[0].Value, node.Content[1])
	}
	return nil, nodeError(node, "expected a scalar or a mapping")
}

func decodeForm(key string, value *yaml.Node) (*Descriptor, error) {
	switch key {
	case "stringLiteral":
		return StringLiteral(value.Value), nil
	case "numberLiteral":
		f, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return nil, nodeError(value, "invalid number %q", value.Value)
		}
		return NumberLiteral(f), nil
	case "booleanLiteral":
		b, err := strconv.ParseBool(value.Value)
		if err != nil {
			return nil, nodeError(value, "invalid boolean %q", value.Value)
		}
		return BooleanLiteral(b), nil
	case "bigintLiteral":
		n, ok := new(big.Int).SetString(value.Value, 10)
		if !ok {
			return nil, nodeError(value, "invalid bigint %q", value.Value)
		}
		return BigIntLiteral(n), nil
	case "symbol":
		var opts struct {
			Unique bool `yaml:"unique"`
		}
		if err := value.Decode(&opts); err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindSymbol, Unique: opts.Unique}, nil
	case "array":
		elem, err := Decode(value)
		if err != nil {
			return nil, err
		}
		return Array(elem), nil
	case "tuple", "union", "intersection":
		list, err := decodeList(value)
		if err != nil {
			return nil, err
		}
		switch key {
		case "tuple":
			return Tuple(list...), nil
		case "union":
			return Union(list...), nil
		}
		return Intersection(list...), nil
	case "template":
		segments, err := decodeSegments(value)
		if err != nil {
			return nil, err
		}
		return TemplateLiteral(segments...), nil
	case "object":
		return decodeObject(value)
	case "mapped":
		return decodeMapped(value)
	}
	return nil, nodeError(value, "unknown type form %q", key)
}

// decodeList always returns a non-nil slice so that an empty
// document list is an explicit empty expectation.
func decodeList(node *yaml.Node) ([]*Descriptor, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nodeError(node, "expected a list")
	}
	list := make([]*Descriptor, 0, len(node.Content))
	for _, item := range node.Content {
		d, err := Decode(item)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}

// decodeSegments treats quoted scalars as text and plain scalars
// as type names. {text: ...} and {hole: ...} force either form.
func decodeSegments(node *yaml.Node) ([]Segment, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nodeError(node, "expected a list")
	}
	segments := make([]Segment, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && item.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			segments = append(segments, Text(item.Value))
			continue
		}
		if item.Kind == yaml.MappingNode && len(item.Content) == 2 {
			switch item.Content[0].Value {
			case "text":
				segments = append(segments, Text(item.Content[1].Value))
				continue
			case "hole":
				d, err := Decode(item.Content[1])
				if err != nil {
					return nil, err
				}
				segments = append(segments, Hole(d))
				continue
			}
		}
		d, err := Decode(item)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Hole(d))
	}
	return segments, nil
}

func decodeObject(node *yaml.Node) (*Descriptor, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, "expected an object shape")
	}
	var shape Shape
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "properties":
			if value.Kind != yaml.MappingNode {
				return nil, nodeError(value, "expected a property mapping")
			}
			shape.Properties = make([]Property, 0, len(value.Content)/2)
			for j := 0; j+1 < len(value.Content); j += 2 {
				d, err := Decode(value.Content[j+1])
				if err != nil {
					return nil, err
				}
				shape.Properties = append(shape.Properties, Prop(value.Content[j].Value, d))
			}
		case "indexes":
			if value.Kind != yaml.SequenceNode {
				return nil, nodeError(value, "expected a list of index signatures")
			}
			shape.Indexes = make([]Index, 0, len(value.Content))
			for _, item := range value.Content {
				idx, err := decodeIndex(item)
				if err != nil {
					return nil, err
				}
				shape.Indexes = append(shape.Indexes, idx)
			}
		default:
			return nil, nodeError(key, "unknown object field %q", key.Value)
		}
	}
	return AnonymousObject(shape), nil
}

func decodeIndex(node *yaml.Node) (Index, error) {
	var raw struct {
		Key   *Descriptor `yaml:"key"`
		Value *Descriptor `yaml:"value"`
	}
	if err := node.Decode(&raw); err != nil {
		return Index{}, err
	}
	if raw.Key == nil || raw.Value == nil {
		return Index{}, nodeError(node, "index signature needs a key and a value")
	}
	return IndexOf(raw.Key, raw.Value), nil
}

func decodeMapped(node *yaml.Node) (*Descriptor, error) {
	var raw struct {
		Keys     []string    `yaml:"keys"`
		Template *Descriptor `yaml:"template"`
	}
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	return MappedObject(MappedShape{Keys: raw.Keys, Template: raw.Template}), nil
}

// DecodeArgs decodes an ordered mapping of named type arguments.
func DecodeArgs(node *yaml.Node) (Args, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, "expected a mapping of type arguments")
	}
	args := make(Args, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		d, err := Decode(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		args = append(args, Arg(node.Content[i].Value, d))
	}
	return args, nil
}

// UnmarshalYAML keeps the document order of the arguments.
func (a *Args) UnmarshalYAML(node *yaml.Node) error {
	args, err := DecodeArgs(node)
	if err != nil {
		return err
	}
	*a = args
	return nil
}

func nodeError(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", node.Line, ErrInvalidDescriptor, fmt.Sprintf(format, args...))
}
