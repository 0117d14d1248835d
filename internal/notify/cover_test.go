package notify

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{}, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindCoverArt(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "sintel.mkv")
	touch(t, media)

	if got := FindCoverArt(media); got != "" {
		t.Errorf("FindCoverArt() = %q, want empty", got)
	}

	coverPath := filepath.Join(dir, "cover.jpg")
	touch(t, coverPath)
	if got := FindCoverArt(media); got != coverPath {
		t.Errorf("FindCoverArt() = %q, want %q", got, coverPath)
	}
}

func TestFindCoverArtPriority(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "sintel.mkv")
	touch(t, filepath.Join(dir, "folder.png"))
	touch(t, filepath.Join(dir, "cover.jpg"))

	// same-name artwork wins over directory artwork
	own := filepath.Join(dir, "sintel-poster.jpg")
	touch(t, own)

	if got := FindCoverArt(media); got != own {
		t.Errorf("FindCoverArt() = %q, want %q (higher priority)", got, own)
	}
}

func TestFindCoverArtRemote(t *testing.T) {
	if got := FindCoverArt("https://example.org/cover.jpg"); got != "" {
		t.Errorf("FindCoverArt() = %q, want empty for URLs", got)
	}
}
