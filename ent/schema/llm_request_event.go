package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one provider call made for a mistake explanation,
// including failed attempts that were retried.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Backend that served the call"),
		field.String("model").
			Comment("Model ID reported by the provider, or the configured one"),
		field.String("purpose").
			Comment("Why the call was made, e.g. feedback"),
		field.Int("input_tokens").
			Default(0).
			Comment("Prompt tokens billed"),
		field.Int("output_tokens").
			Default(0).
			Comment("Completion tokens billed"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Milliseconds from send to reply"),
		field.Bool("success").
			Comment("False when the call errored or the reply failed validation"),
		field.String("error_message").
			Default("").
			Comment("Error text when success is false"),
		field.Text("request_body").
			Default("").
			Comment("Rendered prompt shown by wordiz llm view"),
		field.Text("response_body").
			Default("").
			Comment("Raw completion text, kept even when invalid"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
		index.Fields("model"),
	}
}
