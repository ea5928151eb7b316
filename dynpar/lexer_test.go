package dynpar

import "testing"

func TestScanExprBalancing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		rest byte // next byte after the capture
	}{
		{"plain", "42, next", "42", ','},
		{"stops at close paren", "'list')", "'list'", ')'},
		{"comma inside parens", "Join('a', 'b'), next", "Join('a', 'b')", ','},
		{"comma inside braces", "{$a, $b}, next", "{$a, $b}", ','},
		{"comma inside quotes", "'a, b', next", "'a, b'", ','},
		{"doubled quote escape", "'it''s', next", "'it''s'", ','},
		{"nested brackets", "[a[0], b], next", "[a[0], b]", ','},
		{"empty braces", "{})", "{}", ')'},
		{"trims outer space", "  x + y  ,", "x + y", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScanner(tt.src)
			got := s.scanExpr(',', ')')
			if got != tt.want {
				t.Errorf("scanExpr(%q) = %q, want %q", tt.src, got, tt.want)
			}
			if s.peek() != tt.rest {
				t.Errorf("scanExpr(%q) stopped before %q, want %q", tt.src, s.peek(), tt.rest)
			}
		})
	}
}

func TestSkipSpaceComments(t *testing.T) {
	s := newScanner("  # a comment\n\t x")
	s.skipSpace()
	if s.peek() != 'x' {
		t.Errorf("skipSpace stopped at %q, want 'x'", s.peek())
	}
}

func TestScanIdent(t *testing.T) {
	s := newScanner("Mandatory = 1")
	if got := s.scanIdent(); got != "Mandatory" {
		t.Errorf("scanIdent = %q, want Mandatory", got)
	}
	s2 := newScanner("'not an ident'")
	if got := s2.scanIdent(); got != "" {
		t.Errorf("scanIdent on quote = %q, want empty", got)
	}
}
