package maps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasedir(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"single_char", "x", "x"},
		{"single_slash", "/", "/"},
		{"no_separator", "map.json", ""},
		{"relative", "levels/cave.json", "levels/"},
		{"nested", "assets/levels/cave.tmj", "assets/levels/"},
		{"absolute", "/srv/maps/world.json", "/srv/maps/"},
		{"backslash", `C:\maps\world.json`, `C:\maps\`},
		{"mixed_last_backslash", `assets/levels\cave.json`, `assets/levels\`},
		{"mixed_last_slash", `assets\levels/cave.json`, `assets\levels/`},
		{"trailing_separator", "levels/", "levels/"},
		{"root_file", "/map.json", "/"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Basedir(c.path))
		})
	}
}

func TestBasedirIsSeparatorTerminatedPrefix(t *testing.T) {
	paths := []string{"a/b", `a\b`, "a/b/c.json", `x\y/z\w.png`, "//", "./m.json", "../up/m.json"}
	for _, p := range paths {
		dir := Basedir(p)
		assert.True(t, strings.HasPrefix(p, dir), "%q is not a prefix of %q", dir, p)
		assert.True(t, strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`), "%q does not end in a separator", dir)
	}
}
