package cellar

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltpkg/malt/pkg/filesystem"
)

func newLayout(t *testing.T) (*Layout, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	return New("/opt/malt", "/opt/malt/Cellar", filesystem.NewAferoFS(mem)), mem
}

func TestRackAndLinkPaths(t *testing.T) {
	layout, _ := newLayout(t)

	assert.Equal(t, "/opt/malt/Cellar/wget", layout.Rack("wget"))
	assert.Equal(t, "/opt/malt/opt/wget", layout.OptPrefix("wget"))
	assert.Equal(t, "/opt/malt/var/malt/linked/wget", layout.LinkedKeg("wget"))
}

func TestSubdirs(t *testing.T) {
	layout, mem := newLayout(t)
	rack := layout.Rack("wget")

	require.NoError(t, mem.MkdirAll(rack+"/1.25", 0755))
	require.NoError(t, mem.MkdirAll(rack+"/1.21", 0755))
	require.NoError(t, afero.WriteFile(mem, rack+"/notes.txt", []byte("x"), 0644))

	subdirs, err := layout.Subdirs(rack)
	require.NoError(t, err)
	assert.Equal(t, []string{rack + "/1.21", rack + "/1.25"}, subdirs)
}

func TestSubdirsMissingRack(t *testing.T) {
	layout, _ := newLayout(t)

	subdirs, err := layout.Subdirs(layout.Rack("nothing"))
	require.NoError(t, err)
	assert.Empty(t, subdirs)
}

func TestRackNames(t *testing.T) {
	layout, mem := newLayout(t)

	require.NoError(t, mem.MkdirAll("/opt/malt/Cellar/wget/1.21", 0755))
	require.NoError(t, mem.MkdirAll("/opt/malt/Cellar/curl/8.0", 0755))

	assert.Equal(t, []string{"curl", "wget"}, layout.RackNames())
}

func TestRackNamesEmptyCellar(t *testing.T) {
	layout, _ := newLayout(t)
	assert.Empty(t, layout.RackNames())
}
