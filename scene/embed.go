package scene

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the on-disk directory whose files override the embedded ones.
const Dir = "scene"

// ScriptsDir holds autopilot scripts, relative to Dir.
const ScriptsDir = "scripts"

// WatchDirs lists the on-disk directories hot reload watches. fsnotify does
// not recurse, so scripts get their own entry.
func WatchDirs() []string {
	return []string{Dir, filepath.Join(Dir, ScriptsDir)}
}

//go:embed *.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns a scene file, preferring the copy on disk so edits are picked
// up without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := cleanScenePath(path)
	if after, ok := strings.CutPrefix(s, ScriptsDir+"/"); ok {
		s = after
	}
	return ScriptsDir + "/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
