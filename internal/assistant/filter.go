package assistant

import "strings"

const markerPrefix = "[RECOMMEND:"

// markerFilter strips recommendation markers from streamed reply text.
// Markers can be split across chunks, so text from an unresolved "[" onward
// is held back until it either completes a marker (dropped) or turns out to
// be ordinary text (released).
type markerFilter struct {
	pending string
}

// feed consumes the next chunk and returns the text that is safe to show.
func (f *markerFilter) feed(chunk string) string {
	f.pending += chunk

	var out strings.Builder
	for {
		idx := strings.IndexByte(f.pending, '[')
		if idx < 0 {
			out.WriteString(f.pending)
			f.pending = ""

			break
		}

		out.WriteString(f.pending[:idx])
		rest := f.pending[idx:]

		// A complete marker is dropped entirely.
		if strings.HasPrefix(rest, markerPrefix) {
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				f.pending = rest[end+1:]

				continue
			}
			// Marker opened but not closed yet.
			f.pending = rest

			break
		}

		// Might still grow into a marker prefix.
		if len(rest) < len(markerPrefix) && strings.HasPrefix(markerPrefix, rest) {
			f.pending = rest

			break
		}

		// An ordinary bracket.
		out.WriteByte('[')
		f.pending = rest[1:]
	}

	return out.String()
}

// flush releases whatever is still held once the stream has ended. An
// unterminated marker at end of stream is treated as ordinary text.
func (f *markerFilter) flush() string {
	out := f.pending
	f.pending = ""

	return out
}
