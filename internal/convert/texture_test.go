package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

type texOptions struct {
	format     uint32
	imgW, imgH uint32
	mipW, mipH uint32
	container  string
	lz4        bool
	pixels     []byte
}

func writeMagic(buf *bytes.Buffer, magic string) {
	buf.WriteString(magic)
	buf.WriteByte(0)
}

func putUint32(buf *bytes.Buffer, v uint32) {
	binary.Write(buf, binary.LittleEndian, v)
}

func buildTex(t *testing.T, opts texOptions) []byte {
	t.Helper()
	var buf bytes.Buffer
	writeMagic(&buf, "TEXV0005")
	writeMagic(&buf, "TEXI0001")
	putUint32(&buf, opts.format)
	putUint32(&buf, 0)
	putUint32(&buf, opts.mipW)
	putUint32(&buf, opts.mipH)
	putUint32(&buf, opts.imgW)
	putUint32(&buf, opts.imgH)
	putUint32(&buf, 0)

	writeMagic(&buf, opts.container)
	putUint32(&buf, 1) // image count
	if opts.container == "TEXB0003" {
		putUint32(&buf, 0)
	}

	putUint32(&buf, 1) // mipmap count
	putUint32(&buf, opts.mipW)
	putUint32(&buf, opts.mipH)

	data := opts.pixels
	if opts.container != "TEXB0001" {
		if opts.lz4 {
			compressed := make([]byte, lz4.CompressBlockBound(len(opts.pixels)))
			n, err := lz4.CompressBlock(opts.pixels, compressed, nil)
			if err != nil || n == 0 {
				t.Fatalf("lz4 compress: n=%d err=%v", n, err)
			}
			data = compressed[:n]
			putUint32(&buf, 1)
		} else {
			putUint32(&buf, 0)
		}
		putUint32(&buf, uint32(len(opts.pixels)))
	}
	putUint32(&buf, uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

func solidRGBA(w, h int, c color.RGBA) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	return pix
}

func TestDecodeTexRGBA(t *testing.T) {
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	for _, container := range []string{"TEXB0001", "TEXB0002", "TEXB0003"} {
		t.Run(container, func(t *testing.T) {
			data := buildTex(t, texOptions{
				imgW: 8, imgH: 4, mipW: 8, mipH: 4,
				container: container,
				pixels:    solidRGBA(8, 4, want),
			})
			img, err := DecodeTex(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Fatalf("bounds = %v", b)
			}
			if got := color.RGBAModel.Convert(img.At(3, 2)); got != want {
				t.Fatalf("pixel = %v, want %v", got, want)
			}
		})
	}
}

func TestDecodeTexLZ4CropsToImageSize(t *testing.T) {
	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	data := buildTex(t, texOptions{
		imgW: 12, imgH: 10, mipW: 16, mipH: 16,
		container: "TEXB0003",
		lz4:       true,
		pixels:    solidRGBA(16, 16, want),
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b != image.Rect(0, 0, 12, 10) {
		t.Fatalf("bounds = %v, want 12x10", b)
	}
	if got := color.RGBAModel.Convert(img.At(11, 9)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTexR8(t *testing.T) {
	pixels := bytes.Repeat([]byte{77}, 4*4)
	data := buildTex(t, texOptions{
		format: formatR8,
		imgW:   4, imgH: 4, mipW: 4, mipH: 4,
		container: "TEXB0002",
		pixels:    pixels,
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 77, G: 77, B: 77, A: 255}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTexErrors(t *testing.T) {
	valid := buildTex(t, texOptions{
		imgW: 4, imgH: 4, mipW: 4, mipH: 4,
		container: "TEXB0002",
		pixels:    solidRGBA(4, 4, color.RGBA{A: 255}),
	})

	bad := append([]byte(nil), valid...)
	copy(bad, "TEXV9999")

	tests := []struct {
		name string
		data []byte
	}{
		{"bad magic", bad},
		{"truncated header", valid[:20]},
		{"truncated data", valid[:len(valid)-10]},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTex(bytes.NewReader(tt.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadImageConvertsAndCachesTex(t *testing.T) {
	dir := t.TempDir()
	prev := TextureOutDir
	TextureOutDir = ""
	t.Cleanup(func() { TextureOutDir = prev })

	want := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	texPath := filepath.Join(dir, "sky.tex")
	data := buildTex(t, texOptions{imgW: 4, imgH: 4, mipW: 4, mipH: 4, container: "TEXB0003", pixels: solidRGBA(4, 4, want)})
	if err := os.WriteFile(texPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(texPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "sky.png")); err != nil {
		t.Fatalf("png cache not written: %v", err)
	}
}

func TestLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hills.png")
	src := image.NewRGBA(image.Rect(0, 0, 5, 3))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
}
