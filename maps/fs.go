package maps

import (
	"io/fs"
	"path"
	"strings"

	"github.com/milk9111/tiledmap/render"
)

// NewFSLoader returns a loader that reads maps and tileset images from fsys,
// such as an embed.FS. Backslashes in paths are treated as separators.
func NewFSLoader(fsys fs.FS) *Loader {
	readFile := func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, cleanFSPath(name))
	}
	l := NewLoader()
	l.ReadFile = readFile
	l.Images = &render.Images{ReadFile: readFile}
	return l
}

func cleanFSPath(name string) string {
	return path.Clean(strings.ReplaceAll(name, `\`, "/"))
}
