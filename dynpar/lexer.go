// Copyright 2026 dynpar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dynpar

import "strings"

// scanner is a cursor over the raw specification text. The grammar is small
// enough that the parser drives the scanner directly instead of going
// through a token stream; the one unusual requirement is verbatim capture of
// embedded expressions (conditions, defaults, annotation arguments), which
// scanExpr handles by balancing brackets and quotes without interpreting
// anything.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// skipSpace advances past whitespace and # line comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '#':
			for !s.eof() && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// accept consumes c if it is the next byte.
func (s *scanner) accept(c byte) bool {
	if !s.eof() && s.src[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanIdent consumes an identifier, returning "" when none is present.
func (s *scanner) scanIdent() string {
	start := s.pos
	if s.eof() || !isIdentStart(s.src[s.pos]) {
		return ""
	}
	for !s.eof() && isIdentByte(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// scanExpr captures one expression verbatim, stopping at any of the stop
// bytes at nesting depth zero. Parentheses, brackets, braces and quoted
// strings nest; nothing inside is interpreted. The surrounding whitespace is
// trimmed, the interior is untouched.
func (s *scanner) scanExpr(stop ...byte) string {
	start := s.pos
	depth := 0
	var quote byte
	for !s.eof() {
		c := s.src[s.pos]
		if quote != 0 {
			if c == quote {
				// a doubled quote is an escaped quote inside the string
				if s.pos+1 < len(s.src) && s.src[s.pos+1] == quote {
					s.pos++
				} else {
					quote = 0
				}
			}
			s.pos++
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 && isStop(c, stop) {
				return strings.TrimSpace(s.src[start:s.pos])
			}
			depth--
		default:
			if depth == 0 && isStop(c, stop) {
				return strings.TrimSpace(s.src[start:s.pos])
			}
		}
		s.pos++
	}
	return strings.TrimSpace(s.src[start:s.pos])
}

func isStop(c byte, stop []byte) bool {
	for _, st := range stop {
		if c == st {
			return true
		}
	}
	return false
}
