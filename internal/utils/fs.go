package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetRoots are searched in order when resolving layer images.
var AssetRoots []string

var textureExtensions = []string{".png", ".jpg", ".jpeg", ".tex"}

var errFound = errors.New("found")

// AddAssetRoot appends dir to AssetRoots unless it is already present.
func AddAssetRoot(dir string) {
	if dir == "" {
		return
	}
	clean := filepath.Clean(dir)
	for _, root := range AssetRoots {
		if root == clean {
			return
		}
	}
	AssetRoots = append(AssetRoots, clean)
}

func ResolveAssetPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	for _, root := range AssetRoots {
		p := filepath.Join(root, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return filepath.Join("assets", relPath) // Fallback to local even if not exists
}

// FindTextureFile looks a layer image up by name, with or without extension,
// across AssetRoots and their materials/ folder. Returns "" when nothing matches.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	if filepath.IsAbs(name) {
		if isFile(name) {
			return name
		}
		return ""
	}

	cleanName := strings.TrimPrefix(name, "materials/")
	cleanName = strings.TrimSuffix(cleanName, ".tex")

	var searchDirs []string
	for _, root := range AssetRoots {
		searchDirs = append(searchDirs, root, filepath.Join(root, "materials"))
	}

	for _, dir := range searchDirs {
		// Exact match if name already has extension
		if p := filepath.Join(dir, name); isFile(p) {
			return p
		}
		for _, ext := range textureExtensions {
			if p := filepath.Join(dir, cleanName+ext); isFile(p) {
				return p
			}
		}
	}

	// Recursive fallback (deep search)
	targetBase := filepath.Base(cleanName)
	for _, root := range AssetRoots {
		var foundPath string
		filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			base := entry.Name()
			ext := strings.ToLower(filepath.Ext(base))
			if strings.TrimSuffix(base, filepath.Ext(base)) == targetBase && isTextureExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			return foundPath
		}
	}

	return ""
}

func isTextureExt(ext string) bool {
	for _, e := range textureExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
