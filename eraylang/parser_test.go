package eraylang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimalFile(t *testing.T) {
	file, err := Parse([]byte(`|x: Value| -> (value: Value)`))
	require.NoError(t, err)
	require.Len(t, file.Signature.Inputs, 1)
	assert.Equal(t, "x", file.Signature.Inputs[0].Name)
	assert.Equal(t, "Value", file.Signature.Inputs[0].Type)
	require.Len(t, file.Signature.Outputs, 1)
	assert.Equal(t, "value", file.Signature.Outputs[0].Name)
	assert.Empty(t, file.Imports)
	assert.Empty(t, file.Nodes)
	assert.Empty(t, file.Links)
}

func TestParseEmptyInputs(t *testing.T) {
	file, err := Parse([]byte(`|| -> (color: Color)`))
	require.NoError(t, err)
	assert.Empty(t, file.Signature.Inputs)
	require.Len(t, file.Signature.Outputs, 1)
	assert.Equal(t, "Color", file.Signature.Outputs[0].Type)
}

func TestParseSingleNamedOutputWithoutParens(t *testing.T) {
	file, err := Parse([]byte(`|lhs: Value, rhs: Value| -> value: Value`))
	require.NoError(t, err)
	require.Len(t, file.Signature.Outputs, 1)
	assert.Equal(t, "value", file.Signature.Outputs[0].Name)
}

func TestParseUnnamedOutput(t *testing.T) {
	file, err := Parse([]byte(`|x: Value| -> Vec3`))
	require.NoError(t, err)
	require.Len(t, file.Signature.Outputs, 1)
	assert.Equal(t, "", file.Signature.Outputs[0].Name)
	assert.Equal(t, "Vec3", file.Signature.Outputs[0].Type)
}

func TestParseTrailingCommaInVarList(t *testing.T) {
	file, err := Parse([]byte(`|x: Value, y: Color,| -> (value: Value,)`))
	require.NoError(t, err)
	assert.Len(t, file.Signature.Inputs, 2)
	assert.Len(t, file.Signature.Outputs, 1)
}

func TestParseDuplicateSocketNameRejected(t *testing.T) {
	_, err := Parse([]byte(`|x: Value, x: Color| -> (value: Value)`))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)

	_, err = Parse([]byte(`|x: Value| -> (v: Value, v: Color)`))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseImports(t *testing.T) {
	src := `
|x: Value| -> (value: Value)

import blur = gaussian |radius: Value| -> value: Value
import blur2 = gaussian |radius: Value| -> value: Value
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Imports, 2)
	assert.Equal(t, "blur", file.Imports[0].Alias)
	assert.Equal(t, "gaussian", file.Imports[0].Target)
	require.Len(t, file.Imports[0].Signature.Inputs, 1)
	assert.Equal(t, "radius", file.Imports[0].Signature.Inputs[0].Name)
	assert.Equal(t, "blur2", file.Imports[1].Alias)
}

func TestParseNodeDeclarations(t *testing.T) {
	src := `
|x: Value| -> (value: Value)

import blur = gaussian |radius: Value| -> value: Value

node a: noise
node b: $blur
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Nodes, 2)
	assert.Equal(t, "a", file.Nodes[0].Name)
	assert.Equal(t, "noise", file.Nodes[0].Type)
	assert.False(t, file.Nodes[0].Custom)
	assert.Equal(t, "b", file.Nodes[1].Name)
	assert.Equal(t, "blur", file.Nodes[1].Type)
	assert.True(t, file.Nodes[1].Custom)
}

func TestParseFieldLinks(t *testing.T) {
	src := `
|x: Value, y: Value| -> (value: Value)

node n: noise

link @IN.x -> n.x
link @IN.y -> n.y
link n.value -> @OUT.value
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Links, 3)

	first := file.Links[0]
	require.NotNil(t, first.Source)
	assert.Equal(t, MetaIn, first.Source.Meta)
	assert.Equal(t, []string{"x"}, first.Source.Chain)
	assert.Equal(t, MetaNone, first.Target.Meta)
	assert.Equal(t, "n", first.Target.Root)
	assert.Equal(t, []string{"x"}, first.Target.Chain)

	last := file.Links[2]
	assert.Equal(t, "n", last.Source.Root)
	assert.Equal(t, MetaOut, last.Target.Meta)
	assert.Equal(t, []string{"value"}, last.Target.Chain)
}

func TestParseExprLinks(t *testing.T) {
	src := `
|| -> (color: Color)

node mix: mix_color

link Color(1, 0.5, 0.25) -> mix.left
link Color(0, 0, 0) -> mix.right
link Value(0.5) -> mix.factor
link mix.color -> @OUT.color
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Links, 4)

	first := file.Links[0]
	require.NotNil(t, first.Expr)
	assert.Equal(t, "Color", first.Expr.Constructor)
	require.NotNil(t, first.Expr.Literal)
	assert.Equal(t, []float64{1, 0.5, 0.25}, first.Expr.Literal.Values)

	third := file.Links[2]
	require.NotNil(t, third.Expr)
	assert.Equal(t, "Value", third.Expr.Constructor)
	assert.Equal(t, []float64{0.5}, third.Expr.Literal.Values)
}

func TestParseExprWithFieldAndTrailing(t *testing.T) {
	src := `
|v: Vec3| -> (value: Value)

link Value(@IN.v.x) -> @OUT.value
link Vec3(@IN.v).y -> @OUT.value
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Links, 2)

	first := file.Links[0].Expr
	require.NotNil(t, first)
	require.NotNil(t, first.Field)
	assert.Equal(t, MetaIn, first.Field.Meta)
	assert.Equal(t, []string{"v", "x"}, first.Field.Chain)
	assert.Empty(t, first.Trailing)

	second := file.Links[1].Expr
	require.NotNil(t, second)
	assert.Equal(t, []string{"v"}, second.Field.Chain)
	assert.Equal(t, []string{"y"}, second.Trailing)
}

func TestParseUnderscoredNumbers(t *testing.T) {
	src := `
|| -> (value: Value)

link Value(1_000.5) -> @OUT.value
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Links, 1)
	assert.Equal(t, []float64{1000.5}, file.Links[0].Expr.Literal.Values)
}

func TestParseTwoComponentLiteralRejected(t *testing.T) {
	_, err := Parse([]byte(`
|| -> (value: Value)

link Color(1, 2) -> @OUT.value
`))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseSectionsOutOfOrder(t *testing.T) {
	_, err := Parse([]byte(`
|x: Value| -> (value: Value)

node n: noise
import blur = gaussian |radius: Value| -> value: Value
`))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseMissingSignature(t *testing.T) {
	_, err := Parse([]byte(`node n: noise`))
	require.Error(t, err)
	assert.IsType(t, &SyntaxError{}, err)
}

func TestParseSyntaxErrorPosition(t *testing.T) {
	_, err := Parse([]byte("|x: Value| ->\n(value Value)"))
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Pos.Line)
}

func TestParseCommentsAnywhere(t *testing.T) {
	src := `
// own signature
|x: Value| -> (value: Value) /* no imports */

node n: noise // a noise source

link @IN.x -> n.x
link Value(0) -> n.y
link n.value -> @OUT.value
`
	file, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Len(t, file.Nodes, 1)
	assert.Len(t, file.Links, 3)
}

func TestParseDeterministic(t *testing.T) {
	src := []byte(`
|x: Value, y: Value| -> (value: Value)

node n: noise

link @IN.x -> n.x
link @IN.y -> n.y
link n.value -> @OUT.value
`)
	first, err := Parse(src)
	require.NoError(t, err)
	second, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseSignatureOnly(t *testing.T) {
	sig, err := ParseSignature([]byte(`|x: Value, y: Value| -> (value: Value)`))
	require.NoError(t, err)
	require.Len(t, sig.Inputs, 2)
	assert.Equal(t, "y", sig.Inputs[1].Name)
	require.Len(t, sig.Outputs, 1)
}

func TestParseSignatureIgnoresBody(t *testing.T) {
	// Nothing past the signature is lexed, so a broken body cannot fail it.
	sig, err := ParseSignature([]byte("|x: Value| -> Value\nnode ### not a body"))
	require.NoError(t, err)
	assert.Empty(t, sig.Outputs[0].Name)
	assert.Equal(t, "Value", sig.Outputs[0].Type)
}

func TestParseSignatureMalformed(t *testing.T) {
	_, err := ParseSignature([]byte(`|x Value| -> Value`))
	require.Error(t, err)
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
}
