package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LevelProgress holds the mutable progress record of one level in one mode.
// Unlike events it is updated in place.
type LevelProgress struct {
	ent.Schema
}

func (LevelProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("mode").
			NotEmpty(),
		field.Int("level"),
		field.Bool("completed").
			Default(false),
		field.Int("total_items").
			Default(0),
		field.Int("correct_count").
			Default(0),
		field.Bool("unlocked").
			Default(false),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (LevelProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("mode", "level").
			Unique(),
	}
}
