package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltpkg/malt/pkg/errors"
)

func TestTableBuilderRejectsUnknownOption(t *testing.T) {
	builder := NewTableBuilder()

	err := builder.SetBool("no-such-flag", true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTableBuilderRejectsKindMismatch(t *testing.T) {
	builder := NewTableBuilder()

	assert.Error(t, builder.SetString("HEAD", "yes"))
	assert.Error(t, builder.SetBool("cc", true))
	assert.Error(t, builder.SetList("cc", []string{"clang"}))
}

func TestTableBuilderIsSingleUse(t *testing.T) {
	builder := NewTableBuilder()
	require.NoError(t, builder.SetBool("HEAD", true))

	table := builder.Freeze()
	require.NotNil(t, table)

	err := builder.SetBool("devel", true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestOptionTableAccessors(t *testing.T) {
	builder := NewTableBuilder()
	require.NoError(t, builder.SetBool("HEAD", true))
	require.NoError(t, builder.SetString("cc", "clang"))
	require.NoError(t, builder.SetList("with", []string{"pcre", "idn"}))
	require.NoError(t, builder.SetRemainder([]string{"wget", "curl"}))
	table := builder.Freeze()

	assert.True(t, table.Bool("HEAD"))
	assert.False(t, table.Bool("devel"))
	assert.Equal(t, "clang", table.Str("cc"))
	assert.Equal(t, "", table.Str("env"))
	assert.Equal(t, []string{"pcre", "idn"}, table.List("with"))
	assert.Nil(t, table.List("without"))
	assert.Equal(t, []string{"wget", "curl"}, table.Remainder())
}

func TestOptionTableReturnsCopies(t *testing.T) {
	builder := NewTableBuilder()
	require.NoError(t, builder.SetList("with", []string{"pcre"}))
	require.NoError(t, builder.SetRemainder([]string{"wget"}))
	table := builder.Freeze()

	table.List("with")[0] = "mutated"
	table.Remainder()[0] = "mutated"

	assert.Equal(t, []string{"pcre"}, table.List("with"))
	assert.Equal(t, []string{"wget"}, table.Remainder())
}

func TestTableFromFlagSet(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindOptions(flags)

	require.NoError(t, flags.Parse([]string{"--HEAD", "-s", "--cc", "clang", "--with", "pcre,idn", "wget", "curl"}))

	table, err := TableFromFlagSet(flags)
	require.NoError(t, err)

	assert.True(t, table.Bool("HEAD"))
	assert.True(t, table.Bool("build-from-source"))
	assert.False(t, table.Bool("devel"))
	assert.Equal(t, "clang", table.Str("cc"))
	assert.Equal(t, []string{"pcre", "idn"}, table.List("with"))
	assert.Equal(t, []string{"wget", "curl"}, table.Remainder())
}

func TestRecognizedToken(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"--HEAD", true},
		{"--build-from-source", true},
		{"-s", true},
		{"--cc=clang", true},
		{"--no-such-flag", false},
		{"-x", false},
		{"--head", false}, // canonical spelling is uppercase
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, recognizedToken(tt.tok))
		})
	}
}
