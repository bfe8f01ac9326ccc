package reader

import (
	"fmt"
	"path"
	"strings"

	"github.com/Feilkin/blob-game/asset"
	"github.com/Feilkin/blob-game/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or http(s) URL.
func ReadScene(filename string) (*scene.Scene, error) {
	var reader Reader
	switch strings.ToLower(path.Ext(filename)) {
	case ".yaml", ".yml":
		reader = newYamlReader()
	default:
		return nil, fmt.Errorf("readScene: unsupported file format %q", path.Ext(filename))
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
