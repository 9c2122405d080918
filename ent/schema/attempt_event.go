package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records phase transitions of a level attempt.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty(),
		field.String("mode").
			NotEmpty(),
		field.Int("level"),
		field.String("action").
			NotEmpty().
			Comment("start, review, complete, retry or quit"),
		field.Int("total_items").
			Default(0),
		field.Int("missed").
			Default(0).
			Comment("Size of the missed set at the transition"),
		field.Int("cycle").
			Default(0),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
		index.Fields("action"),
	}
}
