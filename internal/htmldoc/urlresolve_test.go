package htmldoc

import (
	"net/url"
	"testing"
)

func mustBase(t *testing.T, raw string) *Url {
	t.Helper()
	p, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return &Url{Raw: raw, Parsed: p}
}

func TestResolveHref(t *testing.T) {
	t.Parallel()
	base := mustBase(t, "http://e.com/dir/page.html")

	tests := []struct {
		name    string
		href    string
		base    *Url
		want    string
		wantOK  bool
	}{
		{"already absolute", "http://other.com/x", base, "http://other.com/x", true},
		{"protocol-relative", "//cdn.example.com/a.js", base, "http://cdn.example.com/a.js", true},
		{"root relative", "/foo", base, "http://e.com/foo", true},
		{"relative to dir", "bar.png", base, "http://e.com/dir/bar.png", true},
		{"data uri rejected", "data:image/png;base64,AAAA", base, "", false},
		{"empty rejected", "   ", base, "", false},
		{"no base, relative stays unresolved", "bar.png", nil, "bar.png", true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := resolveHref(tc.href, tc.base)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if got.Raw != tc.want {
				t.Errorf("Raw = %q, want %q", got.Raw, tc.want)
			}
		})
	}
}

func TestResolveHrefNoPathBase(t *testing.T) {
	t.Parallel()
	base := mustBase(t, "http://e.com")
	got, ok := resolveHref("foo", base)
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	want := "http://e.com/foo"
	if got.Raw != want {
		t.Errorf("Raw = %q, want %q", got.Raw, want)
	}
}

func TestFindQueryURLs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		href string
		want []string
	}{
		{"redirector param", "http://r.example.com/go?u=http://target.example.com/x", []string{"http://target.example.com/x"}},
		{"no query", "http://e.com/page", nil},
		{"mailto without user rejected", "http://e.com/go?u=mailto:", nil},
		{"mailto with user kept", "http://e.com/go?u=mailto:foo@bar.com", []string{"mailto:foo@bar.com"}},
		{"plain non-url value ignored", "http://e.com/go?x=hello", nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := findQueryURLs(tc.href)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d urls, want %d (%+v)", len(got), len(tc.want), got)
			}
			for i, u := range got {
				if u.Raw != tc.want[i] {
					t.Errorf("url[%d] = %q, want %q", i, u.Raw, tc.want[i])
				}
				if u.Flags&URLQuery == 0 {
					t.Errorf("url[%d] missing URL_QUERY flag", i)
				}
			}
		})
	}
}
