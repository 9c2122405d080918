package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/wordiz/ent/schema"
)

// Table names follow ent's snake_case plural convention.
const (
	tableLevelProgress   = "level_progresses"
	tableAnswerEvents    = "answer_events"
	tableAttemptEvents   = "attempt_events"
	tableLLMEvents       = "llm_request_events"
	tableCachedSentences = "cached_sentences"
)

// schemas maps every table to the ent schema that declares its columns.
var schemas = []struct {
	name   string
	schema ent.Interface
}{
	{tableLevelProgress, entschema.LevelProgress{}},
	{tableAnswerEvents, entschema.AnswerEvent{}},
	{tableAttemptEvents, entschema.AttemptEvent{}},
	{tableLLMEvents, entschema.LLMRequestEvent{}},
	{tableCachedSentences, entschema.CachedSentence{}},
}

// migrate creates or updates all tables declared in ent/schema.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := make([]*schema.Table, 0, len(schemas))
	for _, s := range schemas {
		t, err := tableFromSchema(s.name, s.schema)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// tableFromSchema builds a migration table from an ent schema: an
// auto-increment id, mixin fields, own fields and the indexes of both.
func tableFromSchema(name string, s ent.Interface) (*schema.Table, error) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("table %s field %s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		switch v := d.Default.(type) {
		case string, bool, int, int64:
			col.Default = v
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := findColumn(t, fname)
			if !ok {
				return nil, fmt.Errorf("table %s index: unknown column %q", name, fname)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    strings.ReplaceAll(name, "_", "") + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

func findColumn(t *schema.Table, name string) (*schema.Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
