package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes the JSON object a Prompt expects back.
type Schema struct {
	// Name is a kebab-case identifier, used as the schema name by providers
	// that want one.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	compErr  error
}

// Validate checks raw against the schema. Failures are *ErrInvalidResponse.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	compiled, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// Round-trip through JSON so Go map and slice types become the
		// generic values the compiler walks.
		b, err := json.Marshal(s.Definition)
		if err != nil {
			s.compErr = fmt.Errorf("schema %q: %w", s.Name, err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			s.compErr = fmt.Errorf("schema %q: %w", s.Name, err)
			return
		}
		url := "mem://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			s.compErr = fmt.Errorf("schema %q: %w", s.Name, err)
			return
		}
		s.compiled, s.compErr = c.Compile(url)
	})
	return s.compiled, s.compErr
}
