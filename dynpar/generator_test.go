package dynpar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStructuralError(t *testing.T) {
	// no param block: fatal, no partial output
	res, err := Generate("Write-Host 'nothing here'", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoParamBlock))
	assert.Nil(t, res)
}

func TestGenerateUnknownTarget(t *testing.T) {
	_, err := Generate(`param($A)`, Options{Target: "ruby"})
	require.Error(t, err)
}

func TestGenerateFunctionNames(t *testing.T) {
	tests := []struct {
		name    string
		fn      string
		wantErr bool
	}{
		{"DefaultWhenEmpty", "", false},
		{"VerbNoun", "Get-Widget", false},
		{"PlainIdentifier", "Invoke2", false},
		{"LeadingDash", "-Bad", true},
		{"TrailingDash", "Bad-", true},
		{"Spaces", "Not A Name", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(`param($A)`, Options{FunctionName: tt.fn})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate(name=%q) error = %v, wantErr %v", tt.fn, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			want := tt.fn
			if want == "" {
				want = "Test-Function"
			}
			if res.FunctionName != want {
				t.Errorf("FunctionName = %q, want %q", res.FunctionName, want)
			}
		})
	}
}

func TestGenerateWarningsDoNotSuppressOutput(t *testing.T) {
	// untyped dynamic plus a reserved-name collision: both warn, the
	// generated source is still complete
	res, err := Generate(`param([Conditional({$x})] $Verb)`, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Source)
	assert.Contains(t, res.Source, "$paramDictionary.Add('Verb', $dynParam)")

	codes := map[Code]bool{}
	for _, d := range res.Diagnostics {
		codes[d.Code] = true
	}
	assert.True(t, codes[CodeUntypedParameter])
	assert.True(t, codes[CodeReservedCollision])
}
