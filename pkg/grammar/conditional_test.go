package grammar

import (
	"testing"

	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConditional_Empty(t *testing.T) {
	stmt, err := ParseConditional("test", "")
	require.NoError(t, err)
	assert.Nil(t, stmt)
}

func TestParseConditional(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		modifier types.Modifier
		fallback *types.ErrorClause
	}{
		{
			name:     "modifier only",
			input:    "pub use",
			modifier: types.Modifier{Visibility: types.Qualified("pub"), Reexport: true},
		},
		{
			name:     "private with derived message",
			input:    "priv ||",
			modifier: types.Modifier{Visibility: types.Private},
			fallback: &types.ErrorClause{},
		},
		{
			name:     "custom message",
			input:    `pub use || "Unsupported operating system"`,
			modifier: types.Modifier{Visibility: types.Qualified("pub"), Reexport: true},
			fallback: &types.ErrorClause{Message: "Unsupported operating system", Custom: true},
		},
		{
			name:     "guard without modifier",
			input:    "||",
			modifier: types.Modifier{},
			fallback: &types.ErrorClause{},
		},
		{
			name:     "trailing semicolon",
			input:    "pub(crate);",
			modifier: types.Modifier{Visibility: types.Qualified("pub(crate)")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseConditional("test", tt.input)
			require.NoError(t, err)
			require.NotNil(t, stmt)
			assert.True(t, tt.modifier.Equal(stmt.Modifier), "got %v, want %v", stmt.Modifier, tt.modifier)
			if tt.fallback == nil {
				assert.Nil(t, stmt.Fallback)
				return
			}
			require.NotNil(t, stmt.Fallback)
			assert.Equal(t, tt.fallback.Message, stmt.Fallback.Message)
			assert.Equal(t, tt.fallback.Custom, stmt.Fallback.Custom)
		})
	}
}

func TestParseConditional_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   errors.ErrorCode
		column int
	}{
		{"repeated statement", "pub; priv", errors.ErrRepeatedStatement, 6},
		{"names are not accepted", "pub foo", errors.ErrSyntax, 5},
		{"message without guard", `pub "msg"`, errors.ErrSyntax, 5},
		{"extra token after message", `pub || "a" "b"`, errors.ErrSyntax, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseConditional("test", tt.input)
			require.Error(t, err)
			assert.Nil(t, stmt)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.column, errors.GetPosition(err).Column)
		})
	}
}

func TestParseConditional_ExpectedTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"before guard", "foo", "expected `||` or end of input, found `foo`"},
		{"after modifier", "pub foo", "expected `||` or end of input, found `foo`"},
		{"after guard", "pub || foo", "expected a string literal or end of input, found `foo`"},
		{"after message", `|| "a" foo`, "expected end of input, found `foo`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConditional("test", tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), "`||`, a string literal")
		})
	}
}
