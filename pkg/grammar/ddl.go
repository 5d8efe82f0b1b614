package grammar

import (
	"strings"

	"github.com/pseudomuto/chbuilder/pkg/utils"
)

type (
	// ColumnDef is one column of a CREATE TABLE statement.
	ColumnDef struct {
		Name    string `yaml:"name"`
		Type    string `yaml:"type"`
		Default string `yaml:"default,omitempty"`
		Comment string `yaml:"comment,omitempty"`
	}

	// CreateTable describes a CREATE TABLE statement. Engine is written verbatim, so it
	// may carry ORDER BY, PARTITION BY and other engine clauses.
	CreateTable struct {
		Name        string      `yaml:"name"`
		Columns     []ColumnDef `yaml:"columns"`
		Engine      string      `yaml:"engine"`
		IfNotExists bool        `yaml:"if_not_exists"`
		Cluster     string      `yaml:"cluster"`
	}

	// DropTable describes a DROP TABLE statement.
	DropTable struct {
		Name     string `yaml:"name"`
		IfExists bool   `yaml:"if_exists"`
		Cluster  string `yaml:"cluster"`
	}
)

// CompileCreateTable compiles a CREATE TABLE statement.
//
// Example:
//
//	grammar.CompileCreateTable(grammar.CreateTable{
//		Name:    "analytics.events",
//		Columns: []grammar.ColumnDef{{Name: "id", Type: "UInt64"}},
//		Engine:  "MergeTree() ORDER BY id",
//	})
//	// CREATE TABLE `analytics`.`events` (`id` UInt64) ENGINE = MergeTree() ORDER BY id
func CompileCreateTable(t CreateTable) string {
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = columnDef(col)
	}

	return utils.NewSQLBuilder().
		Create("TABLE").
		IfNotExists(t.IfNotExists).
		Name(t.Name).
		OnCluster(t.Cluster).
		Raw("(" + strings.Join(defs, ", ") + ")").
		Engine(t.Engine).
		String()
}

// CompileDropTable compiles a DROP TABLE statement.
func CompileDropTable(t DropTable) string {
	return utils.NewSQLBuilder().
		Drop("TABLE").
		IfExists(t.IfExists).
		Name(t.Name).
		OnCluster(t.Cluster).
		String()
}

func columnDef(col ColumnDef) string {
	sql := utils.BacktickIdentifier(col.Name) + " " + col.Type
	if col.Default != "" {
		sql += " DEFAULT " + col.Default
	}
	if col.Comment != "" {
		sql += " COMMENT " + utils.QuoteString(col.Comment)
	}
	return sql
}
