// Package debug provides frame capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/gl/v2.1/gl"
)

// FlipPixels converts raw GL pixel rows into an image. GL reads rows
// bottom-up, so the copy flips vertically.
// pixels must be RGBA with width*height*4 bytes.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y // Flip Y
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride

		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// WriteImage encodes GL pixels to path. The extension picks the codec:
// .webp is lossless WebP, anything else is PNG.
func WriteImage(path string, pixels []byte, width, height int) error {
	img, err := FlipPixels(pixels, width, height)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		if err := nativewebp.Encode(file, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}

// CaptureScreenshot reads the current framebuffer and writes it under dir
// with a timestamped name. format is "png" or "webp".
func CaptureScreenshot(dir string, width, height int, format string) (string, error) {
	if width < 1 || height < 1 {
		return "", fmt.Errorf("bad capture size %dx%d", width, height)
	}
	if format != "webp" {
		format = "png"
	}

	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(dir, fmt.Sprintf("stageview_%s.%s", timestamp, format))

	if err := WriteImage(path, pixels, width, height); err != nil {
		return "", err
	}
	return path, nil
}
