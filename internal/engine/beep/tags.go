package beep

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"

	"github.com/llehouerou/vdplayer/internal/playback"
)

// readTags fills title, artist and album from embedded tags, falling back
// to the file name for the title.
func readTags(path string) playback.StreamInfo {
	info := playback.StreamInfo{Title: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info
	}
	if m.Title() != "" {
		info.Title = m.Title()
	}
	info.Artist = m.Artist()
	if info.Artist == "" {
		info.Artist = m.AlbumArtist()
	}
	info.Album = m.Album()
	return info
}
