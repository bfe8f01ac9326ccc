package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/Feilkin/blob-game/asset"
	"github.com/Feilkin/blob-game/log"
	"github.com/fxamacker/cbor/v2"
)

type zipTreeReader struct {
	logger log.Logger
}

// Read a compiled tree from a local file or http(s) URL. The tree structure
// is validated before it is returned.
func ReadTree(filename string) (*Compiled, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newZipTreeReader().Read(res)
}

// Create a new zip tree reader
func newZipTreeReader() *zipTreeReader {
	return &zipTreeReader{
		logger: log.New("zip reader"),
	}
}

// Read compiled tree from zip file.
func (p *zipTreeReader) Read(treeRes *asset.Resource) (*Compiled, error) {
	p.logger.Noticef(`parsing compiled BVH tree from "%s"`, treeRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := io.ReadAll(treeRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	compiled := &Compiled{}
	var foundTree bool
	for _, f := range zr.File {
		switch f.Name {
		case treeFile, objectFile:
		default:
			p.logger.Warningf("unknown file %s in BVH zip file; skipping", f.Name)
			continue
		}

		entryData, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("zipTreeReader: failed to load %s: %w", f.Name, err)
		}

		switch f.Name {
		case treeFile:
			err = compiled.Tree.UnmarshalBinary(entryData)
			foundTree = true
		case objectFile:
			err = cbor.Unmarshal(entryData, &compiled.Objects)
		}
		if err != nil {
			return nil, fmt.Errorf("zipTreeReader: failed to load %s: %w", f.Name, err)
		}
	}

	if !foundTree {
		return nil, fmt.Errorf("zipTreeReader: missing %s", treeFile)
	}
	if err = compiled.Tree.Validate(); err != nil {
		return nil, fmt.Errorf("zipTreeReader: %w", err)
	}

	p.logger.Noticef("loaded BVH tree in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiled, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
