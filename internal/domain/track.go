package domain

// Track is a playable item as consumed by the playback engine: a song's audio
// asset resolved to a URL. The engine treats URL as the track's identity when
// deciding whether a play request targets the already-active track.
type Track struct {
	ID     string
	Title  string
	Author string
	URL    string
}
