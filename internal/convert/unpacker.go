package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"infinite-parallax/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the header and file table of a .pkg archive. The
// returned offset is where file data starts.
func ReadPkgIndex(r io.Reader) (version string, entries []FileEntry, dataStart int64, err error) {
	counter := &countingReader{r: r}

	version, err = readPkgString(counter)
	if err != nil {
		return "", nil, 0, fmt.Errorf("read version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(counter, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, 0, fmt.Errorf("read file count: %w", err)
	}

	entries = make([]FileEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(counter)
		if err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d: %w", i, err)
		}
		var offset, size uint32
		if err := binary.Read(counter, binary.LittleEndian, &offset); err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d offset: %w", i, err)
		}
		if err := binary.Read(counter, binary.LittleEndian, &size); err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d size: %w", i, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: offset, Size: size})
	}

	return version, entries, counter.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// LayerAssets keeps the files a parallax scene needs: scene JSON and layer images.
func LayerAssets(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".png", ".jpg", ".jpeg", ".tex":
		return true
	}
	return false
}

// ExtractPkg unpacks the entries of a .pkg archive accepted by keep (all
// entries when keep is nil) into outputDir and returns how many were written.
func ExtractPkg(pkgPath, outputDir string, keep func(name string) bool) (int, error) {
	utils.Debug("Unpacker: opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	version, entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: package %s, %d entries", version, len(entries))

	root := filepath.Clean(outputDir)
	written := 0
	for _, entry := range entries {
		if keep != nil && !keep(entry.Name) {
			continue
		}
		destPath := filepath.Join(root, entry.Name)
		if !strings.HasPrefix(destPath, root+string(os.PathSeparator)) {
			return written, fmt.Errorf("entry %q escapes output directory", entry.Name)
		}
		data := io.NewSectionReader(f, dataStart+int64(entry.Offset), int64(entry.Size))
		if err := writeEntry(destPath, data); err != nil {
			return written, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		written++
	}

	utils.Info("Unpacker: extracted %d of %d entries to %s", written, len(entries), root)
	return written, nil
}

func writeEntry(destPath string, data io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// BulkConvertTextures converts every .tex under root to PNG so layer images
// load without decoding at startup. Returns the number converted.
func BulkConvertTextures(root string, outDir string) int {
	TextureOutDir = outDir
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			utils.Error("Texture output dir %s: %v", outDir, err)
			return 0
		}
	}

	// Bounded so large packages don't hold every decoded image at once.
	const maxConcurrency = 10
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup
	var converted atomic.Int32

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil
		}
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := ConvertTexture(path); err != nil {
				utils.Warn("Texture: skipping %s: %v", path, err)
				return
			}
			converted.Add(1)
		}()
		return nil
	})
	if err != nil {
		utils.Error("Walking %s: %v", root, err)
	}

	wg.Wait()
	utils.Info("Texture: converted %d .tex files under %s", converted.Load(), root)
	return int(converted.Load())
}
