package params

import (
	"fmt"
	"net/url"
)

// HTTPParamPrefix is prepended to every binding name when parameters are sent as
// query string values over the ClickHouse HTTP interface.
const HTTPParamPrefix = "param_"

// Registry owns the parameters of one compiled statement graph. A top-level query and
// every nested group, sub-select and union it contains share a single Registry, which
// keeps auto-generated names unique within the statement.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	params  map[string]*Parameter
	order   []string
	counter int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{params: make(map[string]*Parameter)}
}

// Bind upserts a parameter, inferring its type from value. When the parameter already
// exists with an explicit type (e.g. a shell from FromPlaceholder) that type is kept.
func (r *Registry) Bind(name string, value any) *Parameter {
	return r.BindTyped(name, value, "")
}

// BindTyped upserts a parameter with an explicit type. An empty type behaves like Bind.
func (r *Registry) BindTyped(name string, value any, typ string) *Parameter {
	if p, ok := r.params[name]; ok {
		p.set(value, typ)
		return p
	}

	return r.add(NewTyped(name, value, typ))
}

// Add registers a caller-built parameter. If a parameter with the same name already
// exists its value and type are replaced by those of p and the existing instance is
// returned.
func (r *Registry) Add(p *Parameter) *Parameter {
	if existing, ok := r.params[p.Name]; ok {
		if existing != p {
			existing.Value = p.Value
			existing.Type = p.Type
			existing.explicit = p.explicit
		}
		return existing
	}

	return r.add(p)
}

// Auto registers value under the next sequential name (p0, p1, …) and returns the new
// parameter.
func (r *Registry) Auto(value any) *Parameter {
	p := New(r.nextName(), value)
	p.Auto = true
	return r.add(p)
}

// Merge absorbs every parameter of other. Auto-named parameters are renamed onto this
// registry's counter, so their placeholders never collide with ones minted here.
// Explicitly named parameters are upserted, unless the name is held by an auto-named
// parameter of this registry, in which case the incoming one is renamed. other must not
// be used afterwards.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}

	for _, p := range other.Parameters() {
		if existing, ok := r.params[p.Name]; p.Auto || (ok && existing.Auto) {
			p.Name = r.nextName()
			r.add(p)
			continue
		}

		r.Add(p)
	}
}

// Get returns the parameter registered under name.
func (r *Registry) Get(name string) (*Parameter, bool) {
	p, ok := r.params[name]
	return p, ok
}

// Len returns the number of registered parameters.
func (r *Registry) Len() int {
	return len(r.order)
}

// Parameters returns the registered parameters in registration order.
func (r *Registry) Parameters() []*Parameter {
	out := make([]*Parameter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.params[name])
	}
	return out
}

// Clear removes every parameter and resets the auto-naming counter.
func (r *Registry) Clear() {
	r.params = make(map[string]*Parameter)
	r.order = nil
	r.counter = 0
}

// Bindings returns the name to value map sent alongside a query. Values are formatted
// by FormatValue.
func (r *Registry) Bindings() map[string]any {
	out := make(map[string]any, len(r.order))
	for _, p := range r.Parameters() {
		out[p.Name] = FormatValue(p.Value)
	}
	return out
}

// Strings returns the bindings with every value rendered as text, which is what the
// native and HTTP transports expect.
func (r *Registry) Strings() map[string]string {
	out := make(map[string]string, len(r.order))
	for _, p := range r.Parameters() {
		out[p.Name] = FormatString(p.Value)
	}
	return out
}

// HTTPValues returns the bindings as query string values, each key prefixed with
// HTTPParamPrefix.
func (r *Registry) HTTPValues() url.Values {
	values := make(url.Values, len(r.order))
	for name, value := range r.Strings() {
		values.Set(HTTPParamPrefix+name, value)
	}
	return values
}

func (r *Registry) add(p *Parameter) *Parameter {
	if r.params == nil {
		r.params = make(map[string]*Parameter)
	}

	r.params[p.Name] = p
	r.order = append(r.order, p.Name)
	return p
}

func (r *Registry) nextName() string {
	for {
		name := fmt.Sprintf("p%d", r.counter)
		r.counter++
		if _, taken := r.params[name]; !taken {
			return name
		}
	}
}
