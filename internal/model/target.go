package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target is one of the two programs under comparison: a command line parsed
// once at startup into a program path plus argument list.
type Target struct {
	Raw     string
	Program string
	Args    []string
}

// ParseTarget splits a command line into a Target using shell-word semantics:
// whitespace separates tokens, single- or double-quoted substrings are kept
// as one token with the quotes removed.
func ParseTarget(raw string) (Target, error) {
	words, err := splitWords(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", raw, err)
	}

	if len(words) == 0 {
		return Target{}, fmt.Errorf("invalid target %q: empty command line", raw)
	}

	return Target{
		Raw:     raw,
		Program: words[0],
		Args:    words[1:],
	}, nil
}

// Name returns the bare program name used for labels and evidence file
// naming, without directory or a trailing ".exe".
func (t Target) Name() string {
	return strings.TrimSuffix(filepath.Base(t.Program), ".exe")
}

// Argv returns the full argument vector, program first.
func (t Target) Argv() []string {
	argv := make([]string, 0, len(t.Args)+1)
	argv = append(argv, t.Program)
	argv = append(argv, t.Args...)

	return argv
}

func splitWords(raw string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		quote   rune
		started bool
	)

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			started = true

		case r == ' ' || r == '\t':
			if started {
				words = append(words, current.String())
				current.Reset()

				started = false
			}

		default:
			current.WriteRune(r)

			started = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}

	if started {
		words = append(words, current.String())
	}

	return words, nil
}
