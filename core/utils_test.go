package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		lower bool
		want  string
	}{
		{name: "trims", in: "  hey  ", want: "hey"},
		{name: "lowers", in: "  HeY ", lower: true, want: "hey"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.in, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "Week one recap", want: "Week one recap"},
		{name: "trims", in: "  Week one  ", want: "Week one"},
		{name: "strips markup", in: "<b>bold</b> claim", want: "bold claim"},
		{name: "drops script blocks", in: "<script>alert(1)</script>hello", want: "hello"},
		{name: "escapes entities", in: "tom & jerry", want: "tom &amp; jerry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.in); got != tt.want {
				t.Errorf("SanitizeString() = %q, want %q", got, tt.want)
			}
		})
	}
}
