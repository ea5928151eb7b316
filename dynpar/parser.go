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

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoParamBlock is returned when the input contains no param(...) block.
// This is the one structural (fatal) input error: without a declaration list
// there is nothing to generate from.
var ErrNoParamBlock = errors.New("input contains no param(...) block")

// Parse locates the param(...) block in src and parses its declaration list.
// Text before and after the block is ignored, so a whole script body can be
// passed as-is.
func Parse(src string) (*ParamBlock, error) {
	s := newScanner(src)
	if !findParamBlock(s) {
		return nil, ErrNoParamBlock
	}

	block := &ParamBlock{}
	for {
		s.skipSpace()
		if s.accept(')') {
			break
		}
		if s.eof() {
			return nil, fmt.Errorf("param block: missing closing parenthesis")
		}
		node, err := parseDecl(s)
		if err != nil {
			return nil, err
		}
		block.Params = append(block.Params, node)
		s.skipSpace()
		if !s.accept(',') && s.peek() != ')' {
			return nil, fmt.Errorf("parameter %q: expected ',' or ')' after declaration", node.Name)
		}
	}
	return block, nil
}

// findParamBlock advances the scanner to just past "param(" and reports
// whether the block was found. The keyword match is case-insensitive and
// must be a whole word.
func findParamBlock(s *scanner) bool {
	for !s.eof() {
		s.skipSpace()
		if s.eof() {
			return false
		}
		if isIdentStart(s.peek()) {
			word := s.scanIdent()
			if strings.EqualFold(word, "param") {
				s.skipSpace()
				if s.accept('(') {
					return true
				}
			}
			continue
		}
		s.pos++
	}
	return false
}

// parseDecl parses one declaration: annotations, an optionally $-sigiled
// name, and an optional "= default" expression. The verbatim extent of the
// declaration is recorded for static parameters, which are reproduced
// exactly in the generated parameter list.
func parseDecl(s *scanner) (ParameterNode, error) {
	s.skipSpace()
	start := s.pos
	var node ParameterNode

	for {
		s.skipSpace()
		if !s.accept('[') {
			break
		}
		ann, err := parseAnnotation(s)
		if err != nil {
			return node, err
		}
		node.Annotations = append(node.Annotations, ann)
	}

	s.skipSpace()
	s.accept('$')
	node.Name = s.scanIdent()
	if node.Name == "" {
		return node, fmt.Errorf("param block: expected parameter name at offset %d", s.pos)
	}

	s.skipSpace()
	if s.accept('=') {
		node.Default = s.scanExpr(',', ')')
		node.HasDefault = true
	}

	node.Extent = strings.TrimSpace(s.src[start:s.pos])
	return node, nil
}

func parseAnnotation(s *scanner) (AnnotationNode, error) {
	s.skipSpace()
	var ann AnnotationNode
	ann.Tag = s.scanIdent()
	if ann.Tag == "" {
		return ann, fmt.Errorf("annotation: expected tag name at offset %d", s.pos)
	}
	s.skipSpace()
	if s.accept('(') {
		ann.HasArgs = true
		if err := parseArgs(s, &ann); err != nil {
			return ann, err
		}
	}
	s.skipSpace()
	if !s.accept(']') {
		return ann, fmt.Errorf("annotation %q: expected closing ']'", ann.Tag)
	}
	return ann, nil
}

// parseArgs parses the annotation argument list up to and including the
// closing parenthesis. A bare identifier is a named flag with omitted value;
// "name = expr" is a named argument; anything else is a positional
// expression captured verbatim.
func parseArgs(s *scanner, ann *AnnotationNode) error {
	for {
		s.skipSpace()
		if s.accept(')') {
			return nil
		}
		if s.eof() {
			return fmt.Errorf("annotation %q: unterminated argument list", ann.Tag)
		}

		mark := s.pos
		name := s.scanIdent()
		s.skipSpace()
		switch {
		case name != "" && s.peek() == '=' && !strings.HasPrefix(s.src[s.pos:], "=="):
			s.accept('=')
			value := s.scanExpr(',', ')')
			ann.Args = append(ann.Args, Argument{Name: name, Value: value})
		case name != "" && (s.peek() == ',' || s.peek() == ')'):
			ann.Args = append(ann.Args, Argument{Name: name, Omitted: true})
		default:
			s.pos = mark
			value := s.scanExpr(',', ')')
			ann.Args = append(ann.Args, Argument{Value: value})
		}

		s.skipSpace()
		if !s.accept(',') && s.peek() != ')' {
			return fmt.Errorf("annotation %q: expected ',' or ')' in argument list", ann.Tag)
		}
	}
}
