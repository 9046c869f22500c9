// Package photo holds timestamped photos and the timeline that answers
// period queries over them.
package photo

import (
	"errors"
	"time"
)

var (
	ErrNoPhotos    = errors.New("no photos found")
	ErrNoTimestamp = errors.New("photo has no capture timestamp")
)

// Photo is one image and the EXIF fields the book needs.
type Photo struct {
	Path        string
	Timestamp   time.Time
	Width       int
	Height      int
	Orientation int // EXIF orientation tag 1-8, 0 when absent
}

// Shape is the photo's shape as displayed: portrait, landscape or square.
func (p Photo) Shape() string {
	shape := "square"
	switch {
	case p.Width > p.Height:
		shape = "landscape"
	case p.Width < p.Height:
		shape = "portrait"
	}
	if p.RotationAngle()%180 == 0 {
		return shape
	}
	switch shape {
	case "landscape":
		return "portrait"
	case "portrait":
		return "landscape"
	}
	return shape
}

// RotationAngle is the counter-clockwise rotation in degrees that turns the
// stored image upright. Mirroring is ignored.
func (p Photo) RotationAngle() int {
	switch p.Orientation {
	case 3, 4:
		return 180
	case 5, 8:
		return 90
	case 6, 7:
		return 270
	}
	return 0
}

// OrientationName is the EXIF orientation in words, e.g. "Rotated 90 CW".
func (p Photo) OrientationName() string {
	switch p.Orientation {
	case 1:
		return "Horizontal (normal)"
	case 2:
		return "Mirrored horizontal"
	case 3:
		return "Rotated 180"
	case 4:
		return "Mirrored vertical"
	case 5:
		return "Mirrored horizontal then rotated 90 CCW"
	case 6:
		return "Rotated 90 CW"
	case 7:
		return "Mirrored horizontal then rotated 90 CW"
	case 8:
		return "Rotated 90 CCW"
	}
	return ""
}
