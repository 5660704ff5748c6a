package jvedit_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/creachadair/jvedit"
	"github.com/creachadair/jvedit/value"
	json "github.com/goccy/go-json"
)

func BenchmarkLexer(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			dec.UseNumber()
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Lexer", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			lex := jvedit.NewLexer(input)
			for {
				tok, err := lex.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}

				// The Decoder unescapes strings, so do the same here.
				if tok.Type == jvedit.String {
					jvedit.Unquote(tok.Text)
				}
			}
		}
	})
}

func BenchmarkParse(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := value.Parse(input); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})
}
