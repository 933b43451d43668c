package substitute

import (
	"testing"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() types.Context {
	return types.MustContext(map[string]types.Value{
		"name":        types.StringValue("auth"),
		"port":        types.IntValue(8080),
		"debug":       types.BoolValue(true),
		"corsOrigins": types.ListValue("http://localhost:3000", "https://example.com"),
		"empty":       types.StringValue(""),
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"empty template", "", ""},
		{"literal", "plain text", "plain text"},
		{"string value", "<%= name %>-service", "auth-service"},
		{"int value", "PORT=<%= port %>", "PORT=8080"},
		{"bool value", "DEBUG=<%= debug %>", "DEBUG=true"},
		{"no whitespace", "<%=name%>", "auth"},
		{"extra whitespace", "<%=   name \t %>", "auth"},
		{"multiple", "<%= name %>:<%= port %>/<%= name %>", "auth:8080/auth"},
		{"adjacent", "<%= name %><%= port %>", "auth8080"},
		{"empty value", "[<%= empty %>]", "[]"},
		{"multiline", "a\n<%= name %>\nb", "a\nauth\nb"},
		{"stray close delimiter", "50 %> done", "50 %> done"},
		{"ejs scriptlet is literal", "<% if (x) { %>", "<% if (x) { %>"},
		{"unicode around", "héllo <%= name %> wörld", "héllo auth wörld"},
	}

	ctx := testContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.template, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsIdentityForLiterals(t *testing.T) {
	literals := []string{
		"",
		"__init__.py",
		"FROM python:3.9-slim\nWORKDIR /app\n",
		"100% sure %> not a placeholder",
		"<% raw %> and <%- also raw %>",
	}
	for _, lit := range literals {
		got, err := Resolve(lit, types.Context{})
		require.NoError(t, err)
		assert.Equal(t, lit, got)
		assert.True(t, IsLiteral(lit))
	}
}

func TestResolveLeavesNoPlaceholders(t *testing.T) {
	ctx := testContext()
	templates := []string{
		"<%= name %>",
		"x<%= port %>y<%= debug %>z",
		"<%= name %>\n<%=name%>\n<%=  port%>",
	}
	for _, tmpl := range templates {
		got, err := Resolve(tmpl, ctx)
		require.NoError(t, err)
		assert.NotContains(t, got, OpenDelim)
		assert.NotContains(t, got, CloseDelim)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	ctx := testContext()
	tmpl := "<%= name %> on <%= port %>"
	first, err := Resolve(tmpl, ctx)
	require.NoError(t, err)
	second, err := Resolve(tmpl, ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveUnresolvedVariable(t *testing.T) {
	_, err := Resolve("line one\nvalue=<%= missing %>", testContext())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedVariable))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "missing", details["identifier"])
	assert.Equal(t, Position{Offset: 15, Line: 2, Column: 7}, details["location"])
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Contains(t, err.Error(), "2:7")
}

func TestResolveMalformedPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		template string
		offset   int
	}{
		{"unterminated", "PORT=<%= port", 5},
		{"unterminated at end", "abc<%=", 3},
		{"empty identifier", "x<%=  %>", 1},
		{"second unterminated", "<%= name %> and <%= port", 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.template, testContext())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedPlaceholder))
			pos, ok := errors.GetErrorDetails(err)["position"].(Position)
			require.True(t, ok)
			assert.Equal(t, tt.offset, pos.Offset)
		})
	}
}

func TestResolveSequences(t *testing.T) {
	ctx := testContext()

	t.Run("rejected_by_default", func(t *testing.T) {
		_, err := Resolve("CORS_ORIGINS=<%= corsOrigins %>", ctx)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSequenceValue))
		assert.Equal(t, "corsOrigins", errors.GetErrorDetails(err)["identifier"])
	})

	t.Run("expanded_with_default_separator", func(t *testing.T) {
		got, err := ResolveWith("CORS_ORIGINS=<%= corsOrigins %>", ctx, Options{ExpandSequences: true})
		require.NoError(t, err)
		assert.Equal(t, "CORS_ORIGINS=http://localhost:3000,https://example.com", got)
	})

	t.Run("expanded_with_custom_separator", func(t *testing.T) {
		got, err := ResolveWith("<%= corsOrigins %>", ctx, Options{ExpandSequences: true, Separator: " "})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000 https://example.com", got)
	})
}

func TestPlaceholders(t *testing.T) {
	got, err := Placeholders("a <%= name %>\n<%=port%> <%= name %>")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "name", got[0].Identifier)
	assert.Equal(t, "<%= name %>", got[0].Raw)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, got[0].Pos)

	assert.Equal(t, "port", got[1].Identifier)
	assert.Equal(t, 2, got[1].Pos.Line)
	assert.Equal(t, 1, got[1].Pos.Column)

	none, err := Placeholders("literal")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = Placeholders("<%= broken")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedPlaceholder))
}
