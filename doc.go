// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvedit implements the lexical layer of a structural JSON editing
// engine.
//
// # Lexing
//
// The Lexer type converts JSON source text into a sequence of tokens. At each
// position of the input the lexer tries every lexical rule (the punctuation
// marks, the constants true, false, and null, quoted strings, and numeric
// literals) and selects the longest match. Construct a lexer and call its
// Next method to iterate over the input:
//
//	lex := jvedit.NewLexer(input)
//	for {
//	   tok, err := lex.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Lexing failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// Each token carries its exact source text and the byte offset where it
// begins. When no rule matches, Next reports an error of concrete type
// *jvedit.InvalidTokenError. The Lex function collects all the tokens of a
// string at once.
//
// # Related packages
//
// The value package parses token streams into immutable trees of JSON
// values, and renders them back to text. The jspath package defines paths
// addressing nodes within a tree, and the edit package implements pure
// structural edits (get, set, delete, move, merge) addressed by those paths.
// The editor package manages a single-writer editing session over a document.
package jvedit
