package mediastore

import "testing"

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"ave-maria.mp3", "ave-maria.mp3"},
		{"sheet music (final).pdf", "sheet-music--final-.pdf"},
		{"../../etc/passwd", "passwd"},
		{"C:\\Users\\me\\song.mp3", "song.mp3"},
		{"", "file"},
		{"ünïcode.mp3", "-n-code.mp3"},
	}
	for _, tc := range cases {
		if got := sanitizeFileName(tc.in); got != tc.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
