package sandbox

import "testing"

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			name: "plain message",
			msg:  "boom",
			want: "boom",
		},
		{
			name: "go error prefix stripped",
			msg:  "GoError: no such record",
			want: "no such record",
		},
		{
			name: "host frames removed",
			msg: "Error: boom\n" +
				"\tat run (snippet.js:3:9)\n" +
				"\tat github.com/example/pkg.(*Thing).Call (native)\n" +
				"\tat handler (/build/pkg/thing.go:42)\n" +
				"\tat snippet.js:5:1",
			want: "Error: boom\n" +
				"\tat run (snippet.js:3:9)\n" +
				"\tat snippet.js:5:1",
		},
		{
			name: "non-frame lines kept",
			msg:  "first line\nsecond line",
			want: "first line\nsecond line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeMessage(tt.msg); got != tt.want {
				t.Errorf("sanitizeMessage(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}

func TestIsHostFrame(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"\tat github.com/dop251/goja.(*Runtime).RunProgram (native)", true},
		{"\tat doCall (/src/sandbox/sandbox.go:120)", true},
		{"\tat run (snippet.js:3:9)", false},
		{"not a frame at all", false},
	}
	for _, tt := range tests {
		if got := isHostFrame(tt.line); got != tt.want {
			t.Errorf("isHostFrame(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
