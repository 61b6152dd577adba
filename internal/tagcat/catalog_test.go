package tagcat

import "testing"

func TestByNameKnownTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		wantID    int
		wantFlags uint32
	}{
		{"br", Br, CMEmpty},
		{"DIV", Div, FLBlock},
		{"a", A, FLHref},
		{"img", Img, CMInline | CMEmpty},
		{"base", Base, CMHead | CMEmpty | CMUnique | FLHref},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, ok := ByName(tc.name)
			if !ok {
				t.Fatalf("ByName(%q) not found", tc.name)
			}
			if d.ID != tc.wantID {
				t.Errorf("ID = %d, want %d", d.ID, tc.wantID)
			}
			if d.Flags != tc.wantFlags {
				t.Errorf("Flags = %#x, want %#x", d.Flags, tc.wantFlags)
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	t.Parallel()
	if _, ok := ByName("totally-not-a-tag"); ok {
		t.Fatalf("expected unknown tag to miss")
	}
}

func TestByIDRoundTrip(t *testing.T) {
	t.Parallel()
	d, ok := ByName("table")
	if !ok {
		t.Fatal("table should be known")
	}
	back, ok := ByID(d.ID)
	if !ok || back.Name != "table" {
		t.Fatalf("ByID(%d) = %+v, ok=%v", d.ID, back, ok)
	}
}
