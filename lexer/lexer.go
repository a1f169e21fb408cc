// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"strings"

	"github.com/golangee/movesyntax/token"
)

// info is everything the parser can observe about one lexed token.
type info struct {
	kind  Kind
	text  string
	start uint32
	end   uint32
}

// Lexer is a pull-based cursor over Move IR source text. A freshly
// constructed Lexer has no current token; callers must call Advance once to
// prime Peek/Content, exactly as the teacher's rune-at-a-time scanners
// require an initial read before any lookahead is meaningful.
type Lexer struct {
	file     string
	fileHash token.FileHash
	src      string

	// nextScanPos is the byte offset in src where the next raw scan
	// begins. It only ever moves forward, except that ReplaceToken can
	// rewind it to "unconsume" part of an already-scanned token (the >>
	// to > split).
	nextScanPos uint32

	cur         info
	previousEnd uint32
	specMode    bool

	// pending holds a token already scanned for Lookahead, if any.
	pending *info
}

// New creates a Lexer over content, identified by name for diagnostics and
// for FileHash. Call Advance once before using Peek/Content/Advance again.
func New(name, content string) *Lexer {
	return &Lexer{
		file:     name,
		fileHash: token.HashFile(name, content),
		src:      content,
	}
}

// FileHash identifies the file this Lexer was built from.
func (l *Lexer) FileHash() token.FileHash {
	return l.fileHash
}

// Peek returns the kind of the current token.
func (l *Lexer) Peek() Kind {
	return l.cur.kind
}

// Content returns the text of the current token. For NameBeginTy it
// excludes the fused '<'; for AccountAddressValue it excludes the "0x"
// prefix; for ByteArrayValue it excludes the h"..." delimiters.
func (l *Lexer) Content() string {
	return l.cur.text
}

// StartLoc returns the byte offset of the start of the current token.
func (l *Lexer) StartLoc() uint32 {
	return l.cur.start
}

// EndLoc returns the byte offset of the end of the current token.
func (l *Lexer) EndLoc() uint32 {
	return l.cur.end
}

// PreviousEndLoc returns the byte offset of the end of the token consumed
// immediately before the current one (0 before the first Advance).
func (l *Lexer) PreviousEndLoc() uint32 {
	return l.previousEnd
}

// Loc builds a Loc spanning the current token.
func (l *Lexer) Loc() token.Loc {
	return token.NewLoc(l.fileHash, l.cur.start, l.cur.end)
}

// Advance discards the current token and scans the next one into its
// place.
func (l *Lexer) Advance() error {
	l.previousEnd = l.cur.end

	if l.pending != nil {
		l.cur = *l.pending
		l.pending = nil

		return nil
	}

	next, err := l.scan()
	if err != nil {
		return err
	}

	l.cur = next

	return nil
}

// Lookahead returns the kind of the token that follows the current one,
// without advancing past the current token.
func (l *Lexer) Lookahead() (Kind, error) {
	if err := l.fillPending(); err != nil {
		return EOF, err
	}

	return l.pending.kind, nil
}

// LookaheadContent returns the text of the token that follows the current
// one, without advancing past the current token. Used where a lookahead
// Kind alone can't tell two reserved words apart, e.g. distinguishing
// "native struct" from "native fun" before committing to either parse.
func (l *Lexer) LookaheadContent() (string, error) {
	if err := l.fillPending(); err != nil {
		return "", err
	}

	return l.pending.text, nil
}

func (l *Lexer) fillPending() error {
	if l.pending != nil {
		return nil
	}

	next, err := l.scan()
	if err != nil {
		return err
	}

	l.pending = &next

	return nil
}

// ReplaceToken rewrites the current token to kind, consuming only
// consumedWidth bytes of it. This is the sole mechanism for closing a
// type-actuals list when the lexer produced a ">>" but only one ">" was
// wanted: the parser calls ReplaceToken(Gt, 1), leaving the remaining ">"
// to be rescanned as the next token.
func (l *Lexer) ReplaceToken(kind Kind, consumedWidth uint32) {
	l.cur.kind = kind
	l.cur.end = l.cur.start + consumedWidth
	l.cur.text = l.src[l.cur.start:l.cur.end]
	l.nextScanPos = l.cur.end
	l.pending = nil
}

// SpecMode reports whether the lexer is in specification mode.
func (l *Lexer) SpecMode() bool {
	return l.specMode
}

// SetSpecMode enables or disables specification mode. In spec mode, names
// do not fuse with a following '.' into a DotName token, which lets the
// parser build arbitrary-depth storage access paths ("x.f.g[i]") out of
// plain Name/Dot tokens instead of the two-component DotName fusion normal
// mode uses for qualified names like "0x1.M".
func (l *Lexer) SetSpecMode(on bool) {
	l.specMode = on
}

// scan reads one raw token starting at nextScanPos, skipping whitespace
// and comments first.
func (l *Lexer) scan() (info, error) {
	pos := l.skipTrivia(l.nextScanPos)

	if pos >= uint32(len(l.src)) {
		l.nextScanPos = pos
		return info{kind: EOF, start: pos, end: pos}, nil
	}

	c := l.src[pos]

	var (
		tok info
		err error
	)

	switch {
	case isDigit(c):
		tok, err = l.scanNumber(pos)
	case c == '"':
		return info{}, l.errorAt(pos, pos+1, "unexpected '\"', byte strings must start with 'h\"'")
	case c == 'h' && pos+1 < uint32(len(l.src)) && l.src[pos+1] == '"':
		tok, err = l.scanByteArray(pos)
	case isIdentStart(c):
		tok, err = l.scanNameLike(pos)
	default:
		tok, err = l.scanPunctuation(pos)
	}

	if err != nil {
		return info{}, err
	}

	l.nextScanPos = tok.end

	return tok, nil
}

// skipTrivia skips whitespace, "//" line comments, and "/* */" block
// comments starting at pos, returning the offset of the next significant
// byte.
func (l *Lexer) skipTrivia(pos uint32) uint32 {
	for pos < uint32(len(l.src)) {
		c := l.src[pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			pos++
		case c == '/' && pos+1 < uint32(len(l.src)) && l.src[pos+1] == '/':
			for pos < uint32(len(l.src)) && l.src[pos] != '\n' {
				pos++
			}
		case c == '/' && pos+1 < uint32(len(l.src)) && l.src[pos+1] == '*':
			pos += 2
			for pos+1 < uint32(len(l.src)) && !(l.src[pos] == '*' && l.src[pos+1] == '/') {
				pos++
			}

			pos += 2
			if pos > uint32(len(l.src)) {
				pos = uint32(len(l.src))
			}
		default:
			return pos
		}
	}

	return pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// scanNumber reads a decimal run, an account-address literal ("0x..."), or
// a decimal run directly followed by an alphanumeric suffix tail (the
// parser validates the tail is one of the exact typed suffixes). Outside
// spec mode an address literal followed by '.'+identifier becomes a
// DotName whose text keeps the "0x" prefix ("0x1.M").
func (l *Lexer) scanNumber(pos uint32) (info, error) {
	start := pos

	if l.src[pos] == '0' && pos+1 < uint32(len(l.src)) && (l.src[pos+1] == 'x' || l.src[pos+1] == 'X') {
		hexStart := pos + 2
		end := hexStart

		for end < uint32(len(l.src)) && isHexDigit(l.src[end]) {
			end++
		}

		if end == hexStart {
			return info{}, l.errorAt(start, end, "expected hex digits after '0x'")
		}

		if end-hexStart > 64 {
			return info{}, l.errorAt(start, end, "account address literal is longer than 32 bytes")
		}

		if !l.specMode && end+1 < uint32(len(l.src)) && l.src[end] == '.' && isIdentStart(l.src[end+1]) {
			return l.scanDotNameTail(start, end, l.src[start:end])
		}

		return info{kind: AccountAddressValue, text: l.src[hexStart:end], start: start, end: end}, nil
	}

	end := pos

	for end < uint32(len(l.src)) && isDigit(l.src[end]) {
		end++
	}

	for end < uint32(len(l.src)) && isIdentCont(l.src[end]) {
		end++
	}

	return info{kind: Num, text: l.src[start:end], start: start, end: end}, nil
}

// scanByteArray reads a 'h"hex..."' literal.
func (l *Lexer) scanByteArray(pos uint32) (info, error) {
	start := pos
	hexStart := pos + 2
	end := hexStart

	for end < uint32(len(l.src)) && l.src[end] != '"' {
		if !isHexDigit(l.src[end]) {
			return info{}, l.errorAt(start, end+1, "byte string literals may only contain hex digits")
		}

		end++
	}

	if end >= uint32(len(l.src)) {
		return info{}, l.errorAt(start, end, "unterminated byte string literal")
	}

	return info{kind: ByteArrayValue, text: l.src[hexStart:end], start: start, end: end + 1}, nil
}

// scanNameLike reads an identifier and applies the two fusion rules:
// a trailing '<' with no whitespace becomes NameBeginTy, and (outside spec
// mode) a trailing '.'+identifier with no whitespace becomes DotName.
func (l *Lexer) scanNameLike(pos uint32) (info, error) {
	start := pos
	end := pos

	for end < uint32(len(l.src)) && isIdentCont(l.src[end]) {
		end++
	}

	name := l.src[start:end]

	if end < uint32(len(l.src)) && l.src[end] == '<' {
		return info{kind: NameBeginTy, text: name, start: start, end: end + 1}, nil
	}

	if !l.specMode && end < uint32(len(l.src)) && l.src[end] == '.' && end+1 < uint32(len(l.src)) && isIdentStart(l.src[end+1]) {
		return l.scanDotNameTail(start, end, name)
	}

	return info{kind: Name, text: name, start: start, end: end}, nil
}

// scanDotNameTail fuses an already-scanned left component (ending at
// dotPos, text leftText) with the identifier that follows the '.' at
// dotPos, producing a single DotName token.
func (l *Lexer) scanDotNameTail(start, dotPos uint32, leftText string) (info, error) {
	rightStart := dotPos + 1
	rightEnd := rightStart

	for rightEnd < uint32(len(l.src)) && isIdentCont(l.src[rightEnd]) {
		rightEnd++
	}

	full := leftText + "." + l.src[rightStart:rightEnd]

	return info{kind: DotName, text: full, start: start, end: rightEnd}, nil
}

func (l *Lexer) scanPunctuation(pos uint32) (info, error) {
	rest := l.src[pos:]

	for _, p := range fixedPunctuation {
		if strings.HasPrefix(rest, p.text) {
			end := pos + uint32(len(p.text))
			return info{kind: p.kind, text: p.text, start: pos, end: end}, nil
		}
	}

	return info{}, l.errorAt(pos, pos+1, "unexpected character %q", l.src[pos])
}

func (l *Lexer) errorAt(start, end uint32, format string, args ...interface{}) error {
	return token.NewInvalidTokenError(token.NewLoc(l.fileHash, start, end), format, args...)
}
