package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/wordiz/internal/sentence"
)

// ErrNoSentences is returned when a source yields no usable items.
var ErrNoSentences = errors.New("no sentences")

// Loader fetches the primary sentence set.
type Loader interface {
	Load(ctx context.Context) (*sentence.ParseResult, error)
	// Describe names the source for status output.
	Describe() string
}

// FileLoader reads a CSV or XLSX sentence sheet from disk.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*sentence.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := sentence.ParseFile(l.Path)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", l.Path, ErrNoSentences)
	}
	return res, nil
}

func (l FileLoader) Describe() string {
	return l.Path
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*sentence.ParseResult, error)

func (f LoaderFunc) Load(ctx context.Context) (*sentence.ParseResult, error) {
	return f(ctx)
}

func (f LoaderFunc) Describe() string {
	return "func"
}
