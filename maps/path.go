package maps

import "strings"

// Basedir returns everything in path up to and including the last '/' or
// '\'. A path without a separator yields "". Paths shorter than two bytes are
// returned unchanged.
func Basedir(path string) string {
	if len(path) <= 1 {
		return path
	}
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return ""
	}
	return path[:idx+1]
}
