// Package radfile writes recovered texture lights in lights.rad format.
package radfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/lightsrad/internal/extract"
	"github.com/Faultbox/lightsrad/pkg/encoding"
)

// DefaultPrefix is prepended to the map name to form the output file name.
const DefaultPrefix = "lights_"

// OutputPath returns where the lights file for mapPath goes: dir if set,
// otherwise next to the map.
func OutputPath(mapPath, dir, prefix string) string {
	if dir == "" {
		dir = filepath.Dir(mapPath)
	}
	base := filepath.Base(mapPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, prefix+name+".rad")
}

// Line formats one entry: lowercased name followed by R G B.
func Line(t extract.TextureLight) string {
	return fmt.Sprintf("%s %d %d %d", encoding.MaterialKey(t.Name), t.Color[0], t.Color[1], t.Color[2])
}

// Write writes one line per texture.
func Write(w io.Writer, textures []extract.TextureLight) error {
	bw := bufio.NewWriter(w)
	for _, t := range textures {
		if _, err := bw.WriteString(Line(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes textures to path, creating its directory if needed.
// An empty list writes nothing and reports false.
func WriteFile(path string, textures []extract.TextureLight) (bool, error) {
	if len(textures) == 0 {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	if err := Write(f, textures); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
