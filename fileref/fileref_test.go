package fileref

import "testing"

func TestIsFileReference(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"icon.svg", true},
		{"Icon-2.SVG", true},
		{"./assets/icon.svg", true},
		{"assets/icon.svg", true},
		{`C:\icons\logo.svg`, true},
		{"../up/icon.svg", true},

		{"description.svg_backup", false},
		{"icon.svgz", false},
		{".svg", false},
		{"", false},
		{"svg", false},
		{"not an icon.svg", false}, // spaces break the strict filename shape
		{`"icon.svg"`, false},
	}
	for _, c := range cases {
		if got := IsFileReference(c.token); got != c.want {
			t.Errorf("IsFileReference(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}
