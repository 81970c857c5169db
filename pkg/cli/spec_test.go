package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltpkg/malt/pkg/types"
)

func TestSpecPrecedence(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		def  types.VersionSpec
		want types.VersionSpec
	}{
		{"head beats devel", []string{"--HEAD", "--devel", "wget"}, types.SpecStable, types.SpecHead},
		{"devel alone", []string{"--devel", "wget"}, types.SpecStable, types.SpecDevel},
		{"neither falls back to default", []string{"wget"}, types.SpecStable, types.SpecStable},
		{"no default means unspecified", []string{"wget"}, types.SpecNone, types.SpecNone},
		{"head with no default", []string{"--HEAD"}, types.SpecNone, types.SpecHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := newTestArgs(t, tt.argv)
			assert.Equal(t, tt.want, args.Spec(tt.def))
		})
	}
}

func TestSpecAgreesAcrossParseStates(t *testing.T) {
	args := newTestArgs(t, []string{"--devel", "wget"})

	pre := args.Spec(types.SpecStable)

	builder := NewTableBuilder()
	require.NoError(t, builder.SetBool("devel", true))
	require.NoError(t, args.CompleteParse(builder.Freeze()))

	assert.Equal(t, pre, args.Spec(types.SpecStable))
	assert.Equal(t, types.SpecDevel, pre)
}
