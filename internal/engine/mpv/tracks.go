package mpv

import (
	"strings"

	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/vdplayer/internal/playback"
)

// parseTrackList converts the "track-list" node into stream descriptions.
// Unknown fields and malformed entries are skipped.
func parseTrackList(n *mpv.Node) []playback.Stream {
	if n == nil {
		return nil
	}
	entries, ok := n.Data.([]*mpv.Node)
	if !ok {
		return nil
	}

	streams := make([]playback.Stream, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		fields, ok := entry.Data.(map[string]*mpv.Node)
		if !ok {
			continue
		}
		kind, ok := trackKind(nodeString(fields["type"]))
		if !ok {
			continue
		}
		streams = append(streams, playback.Stream{
			Kind:       kind,
			Index:      int(nodeInt(fields["id"])),
			Codec:      nodeString(fields["codec"]),
			Language:   nodeString(fields["lang"]),
			Title:      nodeString(fields["title"]),
			Bitrate:    int(nodeInt(fields["demux-bitrate"])),
			SampleRate: int(nodeInt(fields["demux-samplerate"])),
			Channels:   int(nodeInt(fields["demux-channel-count"])),
			Width:      int(nodeInt(fields["demux-w"])),
			Height:     int(nodeInt(fields["demux-h"])),
		})
	}
	return streams
}

// parseMetadata reads title and artist from the "metadata" node.
// Keys are matched case-insensitively since containers disagree on case.
func parseMetadata(n *mpv.Node) (title, artist, album string) {
	if n == nil {
		return "", "", ""
	}
	fields, ok := n.Data.(map[string]*mpv.Node)
	if !ok {
		return "", "", ""
	}
	for k, v := range fields {
		switch strings.ToLower(k) {
		case "title":
			title = nodeString(v)
		case "artist":
			artist = nodeString(v)
		case "album":
			album = nodeString(v)
		}
	}
	return title, artist, album
}

func trackKind(t string) (playback.StreamKind, bool) {
	switch t {
	case "video":
		return playback.StreamVideo, true
	case "audio":
		return playback.StreamAudio, true
	case "sub":
		return playback.StreamText, true
	default:
		return "", false
	}
}

func nodeString(n *mpv.Node) string {
	if n == nil {
		return ""
	}
	s, _ := n.Data.(string)
	return s
}

func nodeInt(n *mpv.Node) int64 {
	if n == nil {
		return 0
	}
	switch v := n.Data.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}
