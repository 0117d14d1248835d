package playback

// StreamKind classifies an elementary stream.
type StreamKind string

const (
	StreamVideo StreamKind = "video"
	StreamAudio StreamKind = "audio"
	StreamText  StreamKind = "text"
)

// Stream describes one elementary stream of the loaded media.
// Zero values mean the engine did not report the field.
type Stream struct {
	Kind       StreamKind
	Index      int
	Codec      string
	Language   string
	Title      string
	Bitrate    int // bits per second
	SampleRate int
	Channels   int
	Width      int
	Height     int
}

// StreamInfo is the metadata view derived from discovered tags.
type StreamInfo struct {
	Title   string
	Artist  string
	Album   string
	Streams []Stream
}

// Count returns the number of streams of the given kind.
func (i StreamInfo) Count(kind StreamKind) int {
	n := 0
	for _, s := range i.Streams {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// OfKind returns the streams of the given kind, in engine order.
func (i StreamInfo) OfKind(kind StreamKind) []Stream {
	var out []Stream
	for _, s := range i.Streams {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
