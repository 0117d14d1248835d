package notify

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists common artwork filenames in priority order.
var coverNames = []string{
	"poster.jpg", "poster.png",
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"fanart.jpg", "fanart.png",
}

// FindCoverArt looks for artwork belonging to a local media file: first
// an image with the same base name ("movie.jpg", "movie-poster.jpg"), then
// the usual names in the same directory. Remote locators have none.
func FindCoverArt(mediaPath string) string {
	if mediaPath == "" || strings.Contains(mediaPath, "://") {
		return ""
	}
	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	candidates := []string{stem + ".jpg", stem + ".png", stem + "-poster.jpg", stem + "-poster.png"}
	candidates = append(candidates, coverNames...)
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
