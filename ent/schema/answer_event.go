package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single checked answer within a level attempt.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Comment("Links to AttemptEvent"),
		field.String("mode").
			NotEmpty().
			Comment("sentence-completion or speaking"),
		field.Int("level").
			Comment("Level the item belongs to"),
		field.String("item_id").
			NotEmpty().
			Comment("Sentence item answered"),
		field.String("phase").
			Comment("first-pass or review-pass"),
		field.Int("cycle").
			Default(0).
			Comment("Review cycle, 0 during the first pass"),
		field.String("expected").
			Comment("The canonical target sentence"),
		field.String("given").
			Comment("What the learner submitted"),
		field.Bool("correct").
			Comment("Whether the answer matched"),
		field.String("mistake").
			Default("").
			Comment("Rule-based mistake category, empty when correct"),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
		index.Fields("item_id"),
		index.Fields("mode", "level"),
	}
}
