package delscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"voxelchunks/internal/world/chunk"
	"voxelchunks/internal/world/chunkstore"
)

// DefaultWorldDir is the folder the generated script deletes from, relative
// to where the operator runs it.
const DefaultWorldDir = "world"

// Render writes the complete script for chunks in dialect d. Chunks are
// emitted in the order given.
func Render(w io.Writer, d Dialect, chunks []chunk.Coord, worldDir string) error {
	s, ok := syntaxes[d]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDialectUnknown, d)
	}
	if err := checkWorldDir(worldDir); err != nil {
		return err
	}
	if worldDir == "" {
		worldDir = DefaultWorldDir
	}

	line := func(l string) error {
		_, err := io.WriteString(w, l+s.eol)
		return err
	}
	for _, l := range s.header {
		if err := line(l); err != nil {
			return err
		}
	}
	for _, c := range chunks {
		name := chunkstore.LegacyFilename(c)
		for _, l := range s.entry(name, chunkPath(worldDir, name)) {
			if err := line(l); err != nil {
				return err
			}
		}
	}
	for _, l := range s.footer {
		if err := line(l); err != nil {
			return err
		}
	}
	return nil
}

// Generate writes the script for set to outPath, creating or truncating it.
// Chunks are sorted by x, then z. The file is closed on every path; a failed
// write may leave a partial file behind.
func Generate(set *chunk.Set, d Dialect, outPath, worldDir string) (err error) {
	if _, ok := syntaxes[d]; !ok {
		return fmt.Errorf("%w: %s", ErrDialectUnknown, d)
	}
	if err := checkWorldDir(worldDir); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriterSize(f, 64*1024)
	if err := Render(bw, d, set.Sorted(), worldDir); err != nil {
		return err
	}
	return bw.Flush()
}

func checkWorldDir(dir string) error {
	if strings.ContainsAny(dir, "\"\r\n") {
		return fmt.Errorf("%w: %q must not contain quotes or line breaks", ErrWorldDir, dir)
	}
	return nil
}

// chunkPath joins dir and name with '/' and leaves dir otherwise as written.
func chunkPath(dir, name string) string {
	return strings.TrimRight(dir, `/\`) + "/" + name
}
