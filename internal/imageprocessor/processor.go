package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // регистрирует декодер gif
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // регистрирует декодер webp
)

// DefaultThumbnailWidth - ширина превью в галерее
const DefaultThumbnailWidth = 400

// Thumbnail - результат рендера превью
type Thumbnail struct {
	Data        []byte
	Ext         string // jpg или png
	ContentType string
	Width       int
	Height      int
}

// Processor handles image processing operations
type Processor struct {
	quality int // JPEG quality (1-100)
	width   int
}

// NewProcessor creates a new image processor
func NewProcessor(quality, width int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if width <= 0 {
		width = DefaultThumbnailWidth
	}
	return &Processor{
		quality: quality,
		width:   width,
	}
}

// Thumbnail декодирует изображение и уменьшает его до ширины превью с
// сохранением пропорций. Маленькие изображения не увеличиваются.
// png и gif кодируются в png (прозрачность), остальное в jpeg.
func (p *Processor) Thumbnail(reader io.Reader) (*Thumbnail, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.resize(img, p.width)
	bounds := resized.Bounds()

	thumb := &Thumbnail{Width: bounds.Dx(), Height: bounds.Dy()}

	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		thumb.Ext, thumb.ContentType = "png", "image/png"
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		thumb.Ext, thumb.ContentType = "jpg", "image/jpeg"
	}

	thumb.Data = buf.Bytes()
	return thumb, nil
}

// resize уменьшает изображение до maxWidth, сохраняя пропорции
func (p *Processor) resize(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth || width == 0 || height == 0 {
		return img
	}

	newHeight := int(float64(height) * float64(maxWidth) / float64(width))
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

// GetImageDimensions returns the dimensions of an image
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
