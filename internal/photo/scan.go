package photo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

var extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// IsPhoto reports whether path has an accepted image extension.
func IsPhoto(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Scan returns every accepted image directly inside root, sorted by path.
// Subdirectories and hidden files are ignored.
func Scan(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root {
				return filepath.SkipDir // photos are read from the top folder only
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if !IsPhoto(path) {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Reader extracts a Photo from an image file.
type Reader interface {
	Read(f FileInfo) (Photo, error)
}

// Load scans root and reads every image with r. A single unreadable photo
// fails the whole load.
func Load(root string, r Reader) (*Timeline, error) {
	files, err := Scan(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoPhotos
	}
	photos := make([]Photo, 0, len(files))
	for _, f := range files {
		p, err := r.Read(f)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return NewTimeline(photos...), nil
}
