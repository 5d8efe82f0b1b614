package querydef

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"gopkg.in/yaml.v3"
)

// Kind is the type of statement a Definition describes.
type Kind string

const (
	SelectKind      Kind = "select"
	InsertKind      Kind = "insert"
	DeleteKind      Kind = "delete"
	CreateTableKind Kind = "create_table"
	DropTableKind   Kind = "drop_table"
)

type (
	// Definition is a statement described in YAML. A SELECT is written with the top level
	// keys; the other statements each have their own key. Exactly one statement may be
	// present.
	//
	//	select: [id, {column: amount, func: sum, as: total}]
	//	from: events
	//	where:
	//	  - {column: type, value: purchase}
	//	  - {or: true, group: [{column: a, value: 1}, {column: b, op: ">", value: 2}]}
	//	group_by: [id]
	//	order_by: [{column: total, dir: desc}]
	//	limit: 10
	Definition struct {
		Select   []SelectItem   `yaml:"select"`
		Distinct bool           `yaml:"distinct"`
		From     string         `yaml:"from"`
		As       string         `yaml:"as"`
		Final    bool           `yaml:"final"`
		PreWhere []Predicate    `yaml:"prewhere"`
		Where    []Predicate    `yaml:"where"`
		GroupBy  []string       `yaml:"group_by"`
		Having   []Predicate    `yaml:"having"`
		OrderBy  []OrderTerm    `yaml:"order_by"`
		Limit    uint64         `yaml:"limit"`
		Offset   uint64         `yaml:"offset"`
		Format   string         `yaml:"format"`
		Settings map[string]any `yaml:"settings"`

		// Params are explicit bindings referenced from raw SQL as {name:Type}.
		Params map[string]any `yaml:"params"`

		Insert      *Insert              `yaml:"insert"`
		Delete      *Delete              `yaml:"delete"`
		CreateTable *grammar.CreateTable `yaml:"create_table"`
		DropTable   *grammar.DropTable   `yaml:"drop_table"`
	}

	// SelectItem is one entry of the select list. A plain string names a column.
	SelectItem struct {
		Column string `yaml:"column"`
		Raw    string `yaml:"raw"`
		Func   string `yaml:"func"`
		Args   []any  `yaml:"args"`
		As     string `yaml:"as"`
	}

	// Predicate is a condition node. It is either a comparison (Column, Op and Value), raw
	// SQL, or a parenthesized Group. Or joins it to the previous node with OR.
	Predicate struct {
		Column string      `yaml:"column"`
		Op     string      `yaml:"op"`
		Value  any         `yaml:"value"`
		Raw    string      `yaml:"raw"`
		Group  []Predicate `yaml:"group"`
		Or     bool        `yaml:"or"`
	}

	// OrderTerm is one ORDER BY entry. Dir is asc (default) or desc.
	OrderTerm struct {
		Column string `yaml:"column"`
		Dir    string `yaml:"dir"`
	}

	// Insert describes an INSERT. Rows are positional and need Columns. Records are keyed
	// by column name and used when Rows is empty.
	Insert struct {
		Table   string           `yaml:"table"`
		Columns []string         `yaml:"columns"`
		Rows    [][]any          `yaml:"rows"`
		Records []map[string]any `yaml:"records"`
	}

	// Delete describes a lightweight ALTER TABLE … DELETE mutation.
	Delete struct {
		Table string      `yaml:"table"`
		Where []Predicate `yaml:"where"`
	}
)

// Load parses a Definition from r.
func Load(r io.Reader) (*Definition, error) {
	var def Definition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal query definition")
	}

	if _, err := def.Kind(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadFile parses the Definition stored at path.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	def, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid query definition: %s", path)
	}
	return def, nil
}

// Kind returns the statement type, or an error when zero or several statements are
// described.
func (d *Definition) Kind() (Kind, error) {
	var kinds []Kind
	if d.From != "" || len(d.Select) > 0 {
		kinds = append(kinds, SelectKind)
	}
	if d.Insert != nil {
		kinds = append(kinds, InsertKind)
	}
	if d.Delete != nil {
		kinds = append(kinds, DeleteKind)
	}
	if d.CreateTable != nil {
		kinds = append(kinds, CreateTableKind)
	}
	if d.DropTable != nil {
		kinds = append(kinds, DropTableKind)
	}

	switch len(kinds) {
	case 0:
		return "", errors.New("query definition has no statement")
	case 1:
		return kinds[0], nil
	default:
		return "", errors.Errorf("query definition has more than one statement: %v", kinds)
	}
}

// UnmarshalYAML accepts a bare column name or a mapping.
func (s *SelectItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Column = node.Value
		return nil
	}

	type plain SelectItem
	return node.Decode((*plain)(s))
}
