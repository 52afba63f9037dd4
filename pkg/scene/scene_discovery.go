package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned for names that are neither built in nor on disk
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "xml"
	FilePath    string `json:"filePath"`    // Path to XML file (xml type only)
}

var builtinScenes = []struct {
	info SceneInfo
	new  func() *Scene
}{
	{SceneInfo{ID: "default", DisplayName: "Default", Description: "Spheres over a ground plane with one mirror sphere", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Cornell box with a mirror sphere and a point light", Type: "builtin"}, NewCornellScene},
}

// ListBuiltinScenes returns metadata for the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		infos = append(infos, s.info)
	}
	return infos
}

// NewBuiltinScene creates a built-in scene by id
func NewBuiltinScene(id string) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == id {
			return s.new(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListXMLScenes scans dir for *.xml scene files
func ListXMLScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Type:        "xml",
			FilePath:    path,
		})
	}
	return scenes, nil
}

// titleCase turns "mirror_spheres" into "Mirror Spheres"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
