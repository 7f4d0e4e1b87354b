package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Load
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

type builtinScene struct {
	info SceneInfo
	new  func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Description: "Lit diffuse sphere on a floor"}, NewDefaultScene},
	{SceneInfo{ID: "single-sphere", Description: "Lit diffuse sphere with nothing behind it"}, NewSingleSphereScene},
	{SceneInfo{ID: "furnace", Description: "Camera enclosed by a diffuse sphere, light outside"}, NewFurnaceScene},
}

// ListBuiltinScenes returns the compiled-in scenes in registration order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		scenes[i] = b.info
		scenes[i].DisplayName = titleCase(b.info.ID)
		scenes[i].Type = "builtin"
	}
	return scenes
}

// ListJSONScenes scans dir for .json scene files. A missing directory yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseJSONMetadata reads the name and description of a scene file without building
// it. The file name is the fallback display name.
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read scene %s: %w", filePath, err)
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("failed to parse scene %s: %w", filePath, err)
	}
	if meta.Name != "" {
		info.DisplayName = meta.Name
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(ListBuiltinScenes(), jsonScenes...), nil
}

// Load returns a built-in scene by id, or reads a JSON scene when name ends in .json
func Load(name string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadJSON(name)
	}
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.new(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// titleCase converts a filename-style string to title case
// e.g., "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
