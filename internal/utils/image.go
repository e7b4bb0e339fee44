package utils

import (
	"bytes"
	"image"
	"image/jpeg"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// receiptMaxSide keeps uploaded payment proofs readable while bounding
// object-store cost.
const receiptMaxSide = 1400

var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

func ValidateImageContentType(contentType string) bool {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	if ct == "" {
		return false
	}
	return allowedImageContentTypes[ct]
}

func DetectContentType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return http.DetectContentType(sample)
}

// NormalizeReceiptImage re-encodes an uploaded payment proof as a JPEG
// bounded to receiptMaxSide. Phone uploads are frequently rotated via EXIF
// only, so orientation is applied before resizing.
func NormalizeReceiptImage(data []byte) ([]byte, error) {
	img, err := decodeAndAutoRotate(data)
	if err != nil {
		return nil, err
	}

	resized := imaging.Fit(img, receiptMaxSide, receiptMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAndAutoRotate(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// Only JPEGs typically carry EXIF; ignore errors.
	if strings.EqualFold(format, "jpeg") {
		if ex, exErr := exif.Decode(bytes.NewReader(data)); exErr == nil {
			if tag, tagErr := ex.Get(exif.Orientation); tagErr == nil {
				if orient, convErr := tag.Int(0); convErr == nil {
					switch orient {
					case 2:
						img = imaging.FlipH(img)
					case 3:
						img = imaging.Rotate180(img)
					case 4:
						img = imaging.FlipV(img)
					case 5:
						img = imaging.Transpose(img)
					case 6:
						img = imaging.Rotate270(img)
					case 7:
						img = imaging.Transverse(img)
					case 8:
						img = imaging.Rotate90(img)
					}
				}
			}
		}
	}

	return img, nil
}
