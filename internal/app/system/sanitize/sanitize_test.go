package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Sunday service notes", "Sunday service notes"},
		{"strips tags", "<b>bold</b> text", "bold text"},
		{"strips script", `<script>alert("x")</script>hello`, "hello"},
		{"trims whitespace", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
