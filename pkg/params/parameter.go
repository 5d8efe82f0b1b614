package params

import "fmt"

// Parameter is a named, typed value that is referenced from SQL text through a
// `{name:Type}` placeholder and transmitted to ClickHouse out of band.
type Parameter struct {
	// Name is unique within the Registry the parameter belongs to.
	Name string

	// Value is the native Go value bound to the placeholder. Shells produced by
	// FromPlaceholder carry a nil value until one is bound.
	Value any

	// Type is the ClickHouse type used in the placeholder, e.g. UInt8 or Array(String).
	Type string

	// Auto marks parameters whose name was generated by Registry.Auto.
	Auto bool

	explicit bool
}

// New creates a parameter whose type is inferred from value.
//
// Example:
//
//	p := params.New("id", 42)
//	p.Placeholder() // {id:UInt8}
func New(name string, value any) *Parameter {
	return &Parameter{
		Name:  name,
		Value: value,
		Type:  InferType(value),
	}
}

// NewTyped creates a parameter with an explicit ClickHouse type. An empty type falls
// back to inference.
//
// Example:
//
//	p := params.NewTyped("id", 42, "UInt64")
//	p.Placeholder() // {id:UInt64}
func NewTyped(name string, value any, typ string) *Parameter {
	if typ == "" {
		return New(name, value)
	}

	return &Parameter{
		Name:     name,
		Value:    value,
		Type:     typ,
		explicit: true,
	}
}

// Placeholder renders the `{name:Type}` token for use in SQL text.
func (p *Parameter) Placeholder() string {
	return fmt.Sprintf("{%s:%s}", p.Name, p.Type)
}

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	return p.Placeholder()
}

func (p *Parameter) set(value any, typ string) {
	p.Value = value
	switch {
	case typ != "":
		p.Type = typ
		p.explicit = true
	case !p.explicit:
		p.Type = InferType(value)
	}
}
