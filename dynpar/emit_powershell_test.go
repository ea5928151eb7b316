package dynpar

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleSpec = `param(
    [string] $Action,
    [Conditional({$Mode -eq 'edit'})] [Parameter(Mandatory)] [Guid] $Id,
    [Conditional({})] $Test
)`

// exampleGenerated is the complete expected output for exampleSpec. The
// powershell target's text conventions are a contract: callers byte-compare
// generated sources, so this test pins every separator and comment marker.
const exampleGenerated = `function Test-Function
{
    [CmdletBinding()]
    param
    (
        [string] $Action
    )

    dynamicparam
    {
        # container for the dynamically created parameters:
        $paramDictionary = New-Object -TypeName System.Management.Automation.RuntimeDefinedParameterDictionary

        #region START dynamic parameter $Id (do not modify)
        if ($Mode -eq 'edit')
        {
            $attributeCollection = New-Object -TypeName 'System.Collections.ObjectModel.Collection[System.Attribute]'
            $attrib = New-Object -TypeName System.Management.Automation.ParameterAttribute
            $attrib.Mandatory = $true
            $attributeCollection.Add($attrib)
            $dynParam = New-Object -TypeName System.Management.Automation.RuntimeDefinedParameter -ArgumentList ('Id', [Guid], $attributeCollection)
            $paramDictionary.Add('Id', $dynParam)
        }
        #endregion END dynamic parameter $Id
        #region START dynamic parameter $Test (do not modify)
        $attributeCollection = New-Object -TypeName 'System.Collections.ObjectModel.Collection[System.Attribute]'
        $attrib = New-Object -TypeName System.Management.Automation.ParameterAttribute
        $attributeCollection.Add($attrib)
        $dynParam = New-Object -TypeName System.Management.Automation.RuntimeDefinedParameter -ArgumentList ('Test', [Object], $attributeCollection)
        $paramDictionary.Add('Test', $dynParam)
        #endregion END dynamic parameter $Test

        # hand the finished dictionary back to the runtime:
        $paramDictionary
    }

    begin
    {
        # copy bound values (or defaults) into local variables once per call:
        if ($PSBoundParameters.ContainsKey('Id')) { $Id = $PSBoundParameters['Id'] } else { $Id = $null }
        if ($PSBoundParameters.ContainsKey('Test')) { $Test = $PSBoundParameters['Test'] } else { $Test = $null }
    }

    process
    {
        # re-copy pipeline-bound values once per pipeline item:


        Write-Verbose -Message @"
current dynamic parameter values:
    Id   : $Id
    Test : $Test
"@
    }

    end
    {
    }
}
`

func TestEmitPowerShellGolden(t *testing.T) {
	res, err := Generate(exampleSpec, Options{})
	require.NoError(t, err)
	if diff := cmp.Diff(exampleGenerated, res.Source); diff != "" {
		t.Errorf("generated source mismatch (-want +got):\n%s", diff)
	}

	// the only degradation in the example is the untyped $Test
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, CodeUntypedParameter, res.Diagnostics[0].Code)
	assert.Equal(t, "Test", res.Diagnostics[0].Parameter)
}

func TestEmitPowerShellDeterministic(t *testing.T) {
	first, err := Generate(exampleSpec, Options{FunctionName: "Get-Thing"})
	require.NoError(t, err)
	second, err := Generate(exampleSpec, Options{FunctionName: "Get-Thing"})
	require.NoError(t, err)
	assert.Equal(t, first.Source, second.Source, "re-emitting the same input must be byte-identical")
}

func TestEmitPowerShellDiagnosticsSorted(t *testing.T) {
	// declaration order Zebra before Alpha; the dump alone is sorted
	res, err := Generate(`param(
    [Conditional({$x})] [int] $Zebra,
    [Conditional({$y})] [int] $Alpha
)`, Options{})
	require.NoError(t, err)

	reg := res.Source
	assert.Less(t,
		strings.Index(reg, "#region START dynamic parameter $Zebra"),
		strings.Index(reg, "#region START dynamic parameter $Alpha"),
		"registration keeps declaration order")
	assert.Less(t,
		strings.Index(reg, "    Alpha : $Alpha"),
		strings.Index(reg, "    Zebra : $Zebra"),
		"diagnostics dump is sorted by name")
}

func TestEmitPowerShellInitializationOnePerDynamic(t *testing.T) {
	res, err := Generate(`param(
    [Conditional({$a})] [int] $One = 1,
    [Conditional({$b})] [int] $Two
)`, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(res.Source,
		"if ($PSBoundParameters.ContainsKey('One')) { $One = $PSBoundParameters['One'] } else { $One = 1 }"))
	assert.Equal(t, 1, strings.Count(res.Source,
		"if ($PSBoundParameters.ContainsKey('Two')) { $Two = $PSBoundParameters['Two'] } else { $Two = $null }"))
}

func TestEmitPowerShellPipelineRefresh(t *testing.T) {
	res, err := Generate(`param(
    [Conditional({})] [Parameter(ValueFromPipeline)] [string] $Item,
    [Conditional({})] [string] $Once
)`, Options{})
	require.NoError(t, err)

	// pipeline-aware: one copy in begin, one refresh in process
	assert.Equal(t, 2, strings.Count(res.Source, "$Item = $PSBoundParameters['Item']"))
	// not pipeline-aware: initialization only
	assert.Equal(t, 1, strings.Count(res.Source, "$Once = $PSBoundParameters['Once']"))
}

func TestEmitPowerShellNoGuardForAlwaysTrue(t *testing.T) {
	res, err := Generate(`param([Conditional({})] [int] $Always)`, Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Source, "$paramDictionary.Add('Always', $dynParam)")

	// the initialization region legitimately uses conditional copies, so
	// scope the no-guard check to the dynamicparam block
	dynBlock := res.Source[strings.Index(res.Source, "dynamicparam"):strings.Index(res.Source, "begin")]
	assert.NotContains(t, dynBlock, "if (", "empty condition suppresses the guard wrapper")
}

func TestEmitPowerShellEchoedAnnotations(t *testing.T) {
	res, err := Generate(`param(
    [Conditional({$x})] [Parameter(Position = 2)] [ValidateSet('a', 'b')] [string] $Choice
)`, Options{})
	require.NoError(t, err)

	assert.Contains(t, res.Source,
		"$attrib = New-Object -TypeName System.Management.Automation.ValidateSetAttribute -ArgumentList 'a', 'b'")
	assert.Contains(t, res.Source, "$attrib.Position = 2")
	// explicit Parameter annotation: nothing synthesized, exactly one
	// ParameterAttribute construction
	assert.Equal(t, 1, strings.Count(res.Source,
		"New-Object -TypeName System.Management.Automation.ParameterAttribute"))
}

func TestEmitPowerShellStaticSeparator(t *testing.T) {
	res, err := Generate(`param(
    [string] $A,
    [int] $B = 2,
    $C
)`, Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Source, "        [string] $A,\n        [int] $B = 2,\n        $C\n")
	assert.NotContains(t, res.Source, "#region START", "no dynamic parameters, empty registration region")
}
