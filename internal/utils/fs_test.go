package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func withRoots(t *testing.T, roots ...string) {
	t.Helper()
	prev := AssetRoots
	AssetRoots = nil
	for _, root := range roots {
		AddAssetRoot(root)
	}
	t.Cleanup(func() { AssetRoots = prev })
}

func TestFindTextureFile(t *testing.T) {
	scene := t.TempDir()
	pkg := t.TempDir()
	writeFile(t, filepath.Join(scene, "sky.png"))
	writeFile(t, filepath.Join(scene, "hills.jpg"))
	writeFile(t, filepath.Join(pkg, "materials", "trees.tex"))
	writeFile(t, filepath.Join(pkg, "deep", "nested", "clouds.jpeg"))
	withRoots(t, scene, pkg)

	tests := []struct {
		name string
		want string
	}{
		{"sky", filepath.Join(scene, "sky.png")},
		{"sky.png", filepath.Join(scene, "sky.png")},
		{"hills", filepath.Join(scene, "hills.jpg")},
		{"materials/trees", filepath.Join(pkg, "materials", "trees.tex")},
		{"trees.tex", filepath.Join(pkg, "materials", "trees.tex")},
		{"clouds", filepath.Join(pkg, "deep", "nested", "clouds.jpeg")},
		{"missing", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FindTextureFile(tt.name); got != tt.want {
			t.Errorf("FindTextureFile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAddAssetRootDeduplicates(t *testing.T) {
	withRoots(t)
	AddAssetRoot("assets/")
	AddAssetRoot("assets")
	AddAssetRoot("")
	if len(AssetRoots) != 1 || AssetRoots[0] != "assets" {
		t.Fatalf("AssetRoots = %v", AssetRoots)
	}
}

func TestResolveAssetPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "scene.json"))
	withRoots(t, first, second)

	if got, want := ResolveAssetPath("scene.json"), filepath.Join(second, "scene.json"); got != want {
		t.Fatalf("ResolveAssetPath = %q, want %q", got, want)
	}
	if got, want := ResolveAssetPath("nope.json"), filepath.Join("assets", "nope.json"); got != want {
		t.Fatalf("fallback = %q, want %q", got, want)
	}
}
