package archive

import (
	"archive/zip"
	"os"
	"time"

	"github.com/Feilkin/blob-game/log"
	"github.com/fxamacker/cbor/v2"
)

type zipTreeWriter struct {
	logger   log.Logger
	treeFile string
}

// Write a compiled tree to a zip file.
func WriteTree(compiled *Compiled, filename string) error {
	return newZipTreeWriter(filename).Write(compiled)
}

// Create a new zip tree writer
func newZipTreeWriter(treeFile string) *zipTreeWriter {
	return &zipTreeWriter{
		logger:   log.New("zip writer"),
		treeFile: treeFile,
	}
}

// Write compiled tree to zip file.
func (w *zipTreeWriter) Write(compiled *Compiled) (err error) {
	w.logger.Noticef("writing compressed BVH tree to %s", w.treeFile)
	start := time.Now()

	zipFile, err := os.Create(w.treeFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := zipFile.Close(); err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(zipFile)

	treeData, err := compiled.Tree.MarshalBinary()
	if err != nil {
		return err
	}
	if err = writeEntry(zw, treeFile, treeData); err != nil {
		return err
	}

	objectData, err := cbor.Marshal(compiled.Objects)
	if err != nil {
		return err
	}
	if err = writeEntry(zw, objectFile, objectData); err != nil {
		return err
	}

	if err = zw.Close(); err != nil {
		return err
	}

	w.logger.Noticef("compressed BVH tree in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	cw, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = cw.Write(data)
	return err
}
