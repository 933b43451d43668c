package variables

import (
	"testing"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		Field{Name: "name", Required: true, Default: "auth", Prompt: "Your microservice name"},
		Field{Name: "description", Default: "A FastAPI microservice"},
		Field{Name: "port", Kind: KindInt, Default: 8000},
		Field{Name: "debug", Kind: KindBool, Default: false},
		Field{Name: "pythonName", Default: "<%= name %>", Transform: TransformSnake},
		Field{Name: "corsOrigins", Kind: KindList, Default: []any{"http://localhost:3000"}},
	)
	require.NoError(t, err)
	return s
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   any
		want types.Value
	}{
		{"string", KindString, "auth", types.StringValue("auth")},
		{"int as string", KindString, 8, types.StringValue("8")},
		{"bool as string", KindString, true, types.StringValue("true")},
		{"int", KindInt, 8080, types.IntValue(8080)},
		{"int64", KindInt, int64(8080), types.IntValue(8080)},
		{"integral float", KindInt, float64(8080), types.IntValue(8080)},
		{"int from string", KindInt, " 9000 ", types.IntValue(9000)},
		{"bool", KindBool, true, types.BoolValue(true)},
		{"bool from string", KindBool, "false", types.BoolValue(false)},
		{"list from csv", KindList, "a, b,,c", types.ListValue("a", "b", "c")},
		{"list from empty string", KindList, "", types.ListValue()},
		{"list from any slice", KindList, []any{"x", 1, true}, types.ListValue("x", "1", "true")},
		{"list from strings", KindList, []string{"x"}, types.ListValue("x")},
		{"value passthrough", KindInt, types.IntValue(3), types.IntValue(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestCoerceErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   any
	}{
		{"int from text", KindInt, "eighty"},
		{"fractional float", KindInt, 1.5},
		{"float past int64 range", KindInt, float64(1 << 63)},
		{"float below int64 range", KindInt, -1e19},
		{"bool from text", KindBool, "maybe"},
		{"string from map", KindString, map[string]any{}},
		{"list with nested slice", KindList, []any{[]any{"x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.kind, tt.in)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidVariable))
		})
	}
}

func TestInfer(t *testing.T) {
	v, err := Infer(int64(3))
	require.NoError(t, err)
	assert.Equal(t, types.ValueInt, v.Kind())

	v, err = Infer([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Items())

	_, err = Infer(struct{}{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidVariable))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindString, "Integer": KindInt, "bool": KindBool, "sequence": KindList} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("float")
	assert.Error(t, err)
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		transform Transform
		in, want  string
	}{
		{TransformSnake, "my-service", "my_service"},
		{TransformSnake, "userAuth", "user_auth"},
		{TransformSnake, "HTTPServer v2", "http_server_v2"},
		{TransformKebab, "user_auth Service", "user-auth-service"},
		{TransformLower, "AUTH", "auth"},
		{TransformUpper, "auth", "AUTH"},
		{TransformTitle, "user auth", "User Auth"},
		{TransformPascal, "user-profile", "UserProfile"},
		{TransformPascal, "auth", "Auth"},
		{TransformNone, "As Is", "As Is"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.transform.Apply(tt.in), "%s(%q)", tt.transform, tt.in)
	}

	_, err := ParseTransform("camel")
	assert.Error(t, err)
}

func TestNewSchemaValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"bad name", []Field{{Name: "my-name"}}},
		{"duplicate", []Field{{Name: "a"}, {Name: "a"}}},
		{"unknown kind", []Field{{Name: "a", Kind: "float"}}},
		{"unknown transform", []Field{{Name: "a", Transform: "camel"}}},
		{"bad default", []Field{{Name: "port", Kind: KindInt, Default: "eighty"}}},
		{"malformed templated default", []Field{{Name: "a", Default: "<%= b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.fields...)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidVariable), "got %v", err)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	ctx, err := serviceSchema(t).Build(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"corsOrigins", "debug", "description", "name", "port", "pythonName"}, ctx.Names())
	name, _ := ctx.Lookup("name")
	assert.Equal(t, "auth", name.String())
	port, _ := ctx.Lookup("port")
	assert.Equal(t, types.IntValue(8000).Interface(), port.Interface())
	cors, _ := ctx.Lookup("corsOrigins")
	assert.Equal(t, []string{"http://localhost:3000"}, cors.Items())
}

func TestBuildProvided(t *testing.T) {
	ctx, err := serviceSchema(t).Build(map[string]any{
		"name":        "user-profile",
		"port":        "9000",
		"debug":       "true",
		"corsOrigins": "http://a,http://b",
		"team":        "platform",
	})
	require.NoError(t, err)

	get := func(n string) types.Value {
		v, ok := ctx.Lookup(n)
		require.True(t, ok, n)
		return v
	}
	assert.Equal(t, int64(9000), get("port").Interface())
	assert.Equal(t, true, get("debug").Interface())
	assert.Equal(t, []string{"http://a", "http://b"}, get("corsOrigins").Items())
	assert.Equal(t, "user_profile", get("pythonName").String())
	assert.Equal(t, "platform", get("team").String())
}

func TestBuildDerivedDefaultIsOverridable(t *testing.T) {
	ctx, err := serviceSchema(t).Build(map[string]any{"name": "auth", "pythonName": "Custom-Name"})
	require.NoError(t, err)
	v, _ := ctx.Lookup("pythonName")
	assert.Equal(t, "Custom-Name", v.String())
}

func TestBuildMissing(t *testing.T) {
	s := MustSchema(
		Field{Name: "name", Required: true},
		Field{Name: "owner", Required: true},
		Field{Name: "slug", Default: "<%= name %>", Transform: TransformKebab},
		Field{Name: "note"},
	)

	_, err := s.Build(map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))
	assert.Equal(t, []string{"name", "owner"}, errors.GetErrorDetails(err)["names"])

	assert.Equal(t, []string{"owner"}, s.Missing(map[string]any{"name": "x"}))

	ctx, err := s.Build(map[string]any{"name": "Auth Service", "owner": "me"})
	require.NoError(t, err)
	slug, _ := ctx.Lookup("slug")
	assert.Equal(t, "auth-service", slug.String())
	assert.False(t, ctx.Has("note"))
}

func TestBuildInvalidProvided(t *testing.T) {
	_, err := serviceSchema(t).Build(map[string]any{"port": "http"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidVariable))
	assert.Equal(t, "port", errors.GetErrorDetails(err)["name"])

	_, err = serviceSchema(t).Build(map[string]any{"bad-name": "x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidVariable))
}

func TestBuildDefaultReferencingUnknown(t *testing.T) {
	s := MustSchema(Field{Name: "slug", Default: "<%= nothing %>"})
	_, err := s.Build(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedVariable))
}

func TestFieldDisplay(t *testing.T) {
	assert.Equal(t, "Your name", Field{Name: "n", Prompt: "Your name"}.Label())
	assert.Equal(t, "desc", Field{Name: "n", Description: "desc"}.Label())
	assert.Equal(t, "n", Field{Name: "n"}.Label())

	assert.Equal(t, "8000", Field{Default: 8000}.DefaultText())
	assert.Equal(t, "a,b", Field{Default: []any{"a", "b"}}.DefaultText())
	assert.Equal(t, "", Field{}.DefaultText())
}
