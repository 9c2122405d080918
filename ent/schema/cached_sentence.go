package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CachedSentence is the last successfully loaded sentence set, used when
// the primary source is unavailable.
type CachedSentence struct {
	ent.Schema
}

func (CachedSentence) Fields() []ent.Field {
	return []ent.Field{
		field.String("item_id").
			NotEmpty().
			Unique(),
		field.Int("position").
			Comment("Load order within the set"),
		field.Int("level"),
		field.String("category").
			Default(""),
		field.String("source").
			Default(""),
		field.String("target").
			NotEmpty(),
		field.String("note").
			Default(""),
		field.Time("fetched_at").
			Default(time.Now),
	}
}

func (CachedSentence) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("level"),
	}
}
