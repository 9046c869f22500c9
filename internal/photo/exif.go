package photo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// TimestampLayout is the EXIF DateTimeOriginal format.
const TimestampLayout = "2006:01:02 15:04:05"

// EXIFReader reads capture time, dimensions and orientation from EXIF.
// Location defaults to time.Local.
type EXIFReader struct {
	Location *time.Location
}

func (r EXIFReader) Read(f FileInfo) (Photo, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return Photo{}, err
	}
	defer fh.Close()

	x, err := exif.Decode(fh)
	if err != nil {
		return Photo{}, fmt.Errorf("%s: %w: %v", f.Path, ErrNoTimestamp, err)
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return Photo{}, fmt.Errorf("%s: %w", f.Path, ErrNoTimestamp)
	}
	raw, err := tag.StringVal()
	if err != nil {
		return Photo{}, fmt.Errorf("%s: %w: %v", f.Path, ErrNoTimestamp, err)
	}
	ts, err := r.ParseTimestamp(raw)
	if err != nil {
		return Photo{}, fmt.Errorf("%s: %w: %v", f.Path, ErrNoTimestamp, err)
	}

	return Photo{
		Path:        f.Path,
		Timestamp:   ts,
		Width:       intTag(x, exif.PixelXDimension),
		Height:      intTag(x, exif.PixelYDimension),
		Orientation: intTag(x, exif.Orientation),
	}, nil
}

// ParseTimestamp parses "YYYY:MM:DD HH:MM:SS". Some cameras pad the value
// with NULs or spaces.
func (r EXIFReader) ParseTimestamp(s string) (time.Time, error) {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(strings.TrimRight(s, "\x00 "))
	return time.ParseInLocation(TimestampLayout, s, loc)
}

func intTag(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}
