// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// Package token defines the source-location and diagnostic types shared by
// the lexer, parser, and AST packages.
package token

import (
	"crypto/sha256"
	"fmt"
)

// FileHash identifies a single source file by its name and content. Two
// inputs with the same name and content hash identically, which is all a
// Loc needs: it is never
// used to look bytes back up, only to tell whether two locations come from
// the same file.
type FileHash [32]byte

// HashFile derives a FileHash from a file's name and content.
func HashFile(name, content string) FileHash {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(content))

	var out FileHash
	copy(out[:], h.Sum(nil))

	return out
}

func (h FileHash) String() string {
	return fmt.Sprintf("%x", h[:4])
}

// Loc is a source span: a file identity plus a half-open [Start, End) byte
// range into that file's content.
type Loc struct {
	File  FileHash
	Start uint32
	End   uint32
}

// NewLoc builds a Loc. start must not be after end: every Loc the parser
// builds comes directly from token offsets that are already well ordered.
func NewLoc(file FileHash, start, end uint32) Loc {
	if start > end {
		panic(fmt.Sprintf("token: invalid Loc [%d, %d)", start, end))
	}

	return Loc{File: file, Start: start, End: end}
}

// Union returns the smallest Loc spanning both l and other. Both must share
// a File; Union does not check this, since mixing files within one AST is
// itself a bug the caller should have prevented.
func (l Loc) Union(other Loc) Loc {
	start := l.Start
	if other.Start < start {
		start = other.Start
	}

	end := l.End
	if other.End > end {
		end = other.End
	}

	return Loc{File: l.File, Start: start, End: end}
}

// Spanned pairs a value with the source span it was parsed from.
type Spanned[T any] struct {
	Loc   Loc
	Value T
}

// NewSpanned wraps a value with its Loc.
func NewSpanned[T any](loc Loc, value T) Spanned[T] {
	return Spanned[T]{Loc: loc, Value: value}
}
