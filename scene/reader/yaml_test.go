package reader

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/scene"
	"github.com/Feilkin/blob-game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	return dir
}

func TestReadScene(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.yaml": `
objects:
  - name: player
    min: [-0.5, -0.5, -0.5]
    max: [0.5, 0.5, 0.5]
    translation: [1, 2, 0]
    buffer_index: 0
  - name: food
    min: [0, 0, 0]
    max: [1, 1, 1]
    scale: [2, 2, -1]
`,
	})

	sc, err := ReadScene(filepath.Join(dir, "scene.yaml"))
	require.NoError(t, err)
	require.Len(t, sc.Objects, 2)

	player := sc.Objects[0]
	assert.Equal(t, "player", player.Name)
	assert.Equal(t, scene.ObjectID("player"), player.ID)
	assert.Equal(t, int32(0), player.Index())
	assert.Equal(t, types.Splat(1), player.Scale)
	assert.Equal(t, bvh.AABB{Min: types.XYZ(0.5, 1.5, -0.5), Max: types.XYZ(1.5, 2.5, 0.5)}, player.WorldBounds())

	food := sc.Objects[1]
	assert.Equal(t, bvh.MissIndex, food.Index())
	assert.Equal(t, bvh.AABB{Min: types.XYZ(0, 0, -1), Max: types.XYZ(2, 2, 0)}, food.WorldBounds())
}

func TestReadSceneWithIncludes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.yaml": `
include: [parts/blobs.yaml]
objects:
  - name: arena
    min: [-10, -10, 0]
    max: [10, 10, 1]
    buffer_index: 2
`,
		"parts/blobs.yaml": `
objects:
  - name: blob-0
    min: [0, 0, 0]
    max: [1, 1, 1]
    buffer_index: 0
  - name: blob-1
    min: [3, 0, 0]
    max: [4, 1, 1]
    buffer_index: 1
`,
	})

	sc, err := ReadScene(filepath.Join(dir, "main.yaml"))
	require.NoError(t, err)

	var names []string
	for _, obj := range sc.Objects {
		names = append(names, obj.Name)
	}
	assert.Equal(t, []string{"blob-0", "blob-1", "arena"}, names)

	tree, err := sc.Compile()
	require.NoError(t, err)
	assert.Len(t, tree, 5)
	assert.Equal(t, 0, bvh.Stats(tree).UnresolvedLeafs)
}

func TestReadRemoteScene(t *testing.T) {
	files := map[string]string{
		"/scenes/main.yml": "include: [extra.yml]\nobjects:\n  - {name: a, min: [0, 0, 0], max: [1, 1, 1]}\n",
		"/scenes/extra.yml": "objects:\n  - {name: b, min: [2, 0, 0], max: [3, 1, 1]}\n",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := files[r.URL.Path]; ok {
			w.Write([]byte(body))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	sc, err := ReadScene(server.URL + "/scenes/main.yml")
	require.NoError(t, err)
	require.Len(t, sc.Objects, 2)
	assert.Equal(t, "b", sc.Objects[0].Name)
	assert.Equal(t, "a", sc.Objects[1].Name)
}

func TestRemoteSceneCannotIncludeLocalFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"local.yaml": "objects:\n  - {name: secret, min: [0, 0, 0], max: [1, 1, 1]}\n",
	})
	localFile := filepath.ToSlash(filepath.Join(dir, "local.yaml"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("include: [" + localFile + "]\n"))
	}))
	defer server.Close()

	_, err := ReadScene(server.URL + "/scenes/main.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote scene cannot include local file")
}

func TestReadSceneErrors(t *testing.T) {
	specs := []struct {
		name   string
		files  map[string]string
		expErr string
		isErr  error
	}{
		{
			name:   "inverted bounds",
			files:  map[string]string{"scene.yaml": "objects:\n  - {name: bad, min: [1, 0, 0], max: [0, 1, 1]}\n"},
			expErr: `object "bad"`,
			isErr:  bvh.ErrInvalidBound,
		},
		{
			name:   "missing name",
			files:  map[string]string{"scene.yaml": "objects:\n  - {min: [0, 0, 0], max: [1, 1, 1]}\n"},
			expErr: "object 0: missing name",
		},
		{
			name: "duplicate name across files",
			files: map[string]string{
				"scene.yaml": "include: [other.yaml]\nobjects:\n  - {name: dup, min: [0, 0, 0], max: [1, 1, 1]}\n",
				"other.yaml": "objects:\n  - {name: dup, min: [0, 0, 0], max: [1, 1, 1]}\n",
			},
			expErr: `duplicate name "dup"`,
		},
		{
			name:   "wrong vector length",
			files:  map[string]string{"scene.yaml": "objects:\n  - {name: a, min: [0, 0], max: [1, 1, 1]}\n"},
			expErr: "error:",
		},
		{
			name: "include cycle",
			files: map[string]string{
				"scene.yaml": "include: [a.yaml]\n",
				"a.yaml":     "include: [b.yaml]\n",
				"b.yaml":     "include: [a.yaml]\n",
			},
			expErr: "include cycle detected",
		},
		{
			name:   "missing include",
			files:  map[string]string{"scene.yaml": "include: [nope.yaml]\n"},
			expErr: "nope.yaml",
		},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			dir := writeFiles(t, s.files)
			_, err := ReadScene(filepath.Join(dir, "scene.yaml"))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), s.expErr), "expected error to contain %q; got %v", s.expErr, err)
			if s.isErr != nil {
				assert.ErrorIs(t, err, s.isErr)
			}
		})
	}
}

func TestReadSceneUnsupportedFormat(t *testing.T) {
	_, err := ReadScene("scene.obj")
	assert.EqualError(t, err, `readScene: unsupported file format ".obj"`)
}
