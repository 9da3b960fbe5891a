package convert

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"infinite-parallax/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// TextureOutDir is the directory where converted PNGs will be saved.
// If empty, they will be saved in the same directory as the source .tex file.
var TextureOutDir string

const (
	texMagic        = "TEXV0005"
	texInfoMagic    = "TEXI0001"
	formatDXT1      = 7
	formatDXT5      = 4
	formatRG88      = 8
	formatR8        = 9
	containerLegacy = "TEXB0001"
	containerV3     = "TEXB0003"
)

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an 8 byte tag followed by its NUL terminator.
func (t *texReader) magic() string {
	b := make([]byte, 9)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.Trim(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTex decodes the first mipmap of a Wallpaper Engine .tex texture.
func DecodeTex(r io.Reader) (image.Image, error) {
	tr := &texReader{r: r}

	if magic := tr.magic(); tr.err == nil && magic != texMagic {
		return nil, fmt.Errorf("invalid magic: %s", magic)
	}
	if info := tr.magic(); tr.err == nil && info != texInfoMagic {
		utils.Debug("    Unexpected info tag: %s", info)
	}

	format := tr.uint32()
	tr.uint32() // flags
	tr.uint32() // texture width
	tr.uint32() // texture height
	imgW := tr.uint32()
	imgH := tr.uint32()
	tr.uint32()

	containerMagic := tr.magic()
	imageCount := tr.uint32()
	if containerMagic == containerV3 {
		tr.uint32() // freeimage format
	}
	if tr.err != nil {
		return nil, fmt.Errorf("read tex header: %w", tr.err)
	}

	utils.Debug("    Format: %d, Target Size: %dx%d, Container: %s", format, imgW, imgH, containerMagic)

	if imageCount == 0 {
		return nil, fmt.Errorf("no image found in texture")
	}

	mipmapCount := tr.uint32()
	if tr.err == nil && mipmapCount == 0 {
		return nil, fmt.Errorf("no mipmap found in texture")
	}
	mW := tr.uint32()
	mH := tr.uint32()
	var isLZ4 bool
	var decompressedSize uint32
	if containerMagic != containerLegacy {
		isLZ4 = tr.uint32() == 1
		decompressedSize = tr.uint32()
	}
	dataSize := tr.uint32()
	data := tr.bytes(dataSize)
	if tr.err != nil {
		return nil, fmt.Errorf("read mipmap: %w", tr.err)
	}

	if isLZ4 {
		utils.Debug("    Decompressing LZ4: %d -> %d", dataSize, decompressedSize)
		decoded := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = decoded[:n]
	}

	pix, err := decodePixels(data, format, mW, mH)
	if err != nil {
		return nil, err
	}

	rgba := &image.RGBA{
		Pix:    pix,
		Stride: int(mW * 4),
		Rect:   image.Rect(0, 0, int(mW), int(mH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mW || imgH > mH {
		return rgba, nil
	}
	return rgba.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(data []byte, format, width, height uint32) ([]byte, error) {
	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	expectedDXT1 := blocks * 8
	expectedDXT5 := blocks * 16
	expectedRGBA := width * height * 4
	size := uint32(len(data))

	switch {
	case size == expectedRGBA:
		utils.Debug("    Type: RGBA")
		return data, nil
	case format == formatR8 && size == expectedRGBA/4:
		utils.Debug("    Type: R8")
		pix := make([]byte, expectedRGBA)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
		return pix, nil
	case format == formatRG88 && size == expectedRGBA/2:
		utils.Debug("    Type: RG88")
		pix := make([]byte, expectedRGBA)
		for i := 0; i < int(width*height); i++ {
			lum, alpha := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = lum, lum, lum, alpha
		}
		return pix, nil
	case format == formatDXT5 || (size == expectedDXT5 && format != formatDXT1):
		utils.Debug("    Type: DXT5")
		return dxt.DecodeDXT5(data, uint(width), uint(height))
	case format == formatDXT1 || size == expectedDXT1:
		utils.Debug("    Type: DXT1")
		return dxt.DecodeDXT1(data, uint(width), uint(height))
	}
	return nil, fmt.Errorf("unsupported format %d with size %d", format, size)
}

// DecodeTexFile decodes a .tex file from disk.
func DecodeTexFile(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func pngPathFor(texPath string) string {
	stem := strings.TrimSuffix(texPath, filepath.Ext(texPath))
	if TextureOutDir != "" {
		return filepath.Join(TextureOutDir, filepath.Base(stem)+".png")
	}
	return stem + ".png"
}

// ConvertTexture decodes a .tex file and writes it as PNG, returning the PNG path.
// An existing PNG is reused.
func ConvertTexture(texPath string) (string, error) {
	pngPath := pngPathFor(texPath)
	if _, err := os.Stat(pngPath); err == nil {
		return pngPath, nil
	}

	img, err := DecodeTexFile(texPath)
	if err != nil {
		return "", err
	}

	if err := writePNG(pngPath, img); err != nil {
		return "", err
	}
	return pngPath, nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode PNG %s: %w", path, err)
	}
	return f.Close()
}

// LoadImage decodes a layer image. .tex files go through the PNG cache;
// png and jpeg are decoded directly.
func LoadImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		pngPath, err := ConvertTexture(path)
		if err != nil {
			// Cache dir may be read-only; decode in memory instead.
			utils.Warn("Texture cache unavailable for %s: %v", path, err)
			return DecodeTexFile(path)
		}
		path = pngPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
