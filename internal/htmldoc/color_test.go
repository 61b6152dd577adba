package htmldoc

import "testing"

func TestCssToHex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"#fff", "#ffffff"},
		{"#FFFFFF", "#ffffff"},
		{"white", "#ffffff"},
		{"black", "#000000"},
		{"rgb(255, 0, 0)", "#ff0000"},
		{"rgb(100%, 0%, 0%)", "#ff0000"},
		{"transparent", ""},
		{"not-a-color", ""},
		{"", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got := cssToHex(tc.in)
			if got != tc.want {
				t.Errorf("cssToHex(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
