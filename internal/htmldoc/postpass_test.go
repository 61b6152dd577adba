package htmldoc

import "testing"

func TestPostOrderSumsContentLength(t *testing.T) {
	t.Parallel()
	leaf1 := &HtmlTag{Name: "span", ContentOffset: 0, ContentLength: 3}
	leaf2 := &HtmlTag{Name: "span", ContentOffset: 5, ContentLength: 4}
	root := &HtmlTag{Name: "div", ContentOffset: -1, Children: []*HtmlTag{leaf1, leaf2}}
	leaf1.Parent, leaf2.Parent = root, root

	postOrderSum(root)

	if root.ContentLength != 7 {
		t.Errorf("root.ContentLength = %d, want 7", root.ContentLength)
	}
	if root.ContentOffset != 0 {
		t.Errorf("root.ContentOffset = %d, want 0 (inherited from first child)", root.ContentOffset)
	}
}

func TestPreOrderEmitsInvisibleException(t *testing.T) {
	t.Parallel()
	hc := &HtmlContent{Parsed: []byte("hello world")}
	var excs []Exception
	hc.exceptions = &excs

	tag := &HtmlTag{
		Name: "span", ContentOffset: 0, ContentLength: 11,
		Block: &Block{Declarations: map[string]string{"display": "none"}},
	}
	hc.RootTag = tag

	runPostPass(hc, Options{Exceptions: &excs})

	if len(excs) != 1 {
		t.Fatalf("got %d exceptions, want 1", len(excs))
	}
	if excs[0].Kind != ExcInvisible || excs[0].Pos != 0 || excs[0].Len != 11 {
		t.Errorf("exception = %+v, want {Pos:0 Len:11 Kind:ExcInvisible}", excs[0])
	}
}

func TestPreOrderCarvesVisibleChildOutOfInvisibleParent(t *testing.T) {
	t.Parallel()
	hc := &HtmlContent{Parsed: []byte("abcdefghij")}
	var excs []Exception
	hc.exceptions = &excs

	child := &HtmlTag{
		Name: "span", ContentOffset: 3, ContentLength: 4, // "defg", middle of parent
		Block: &Block{},
	}
	root := &HtmlTag{
		Name: "div", ContentOffset: 0, ContentLength: 10,
		Block:    &Block{Declarations: map[string]string{"display": "none"}},
		Children: []*HtmlTag{child},
	}
	child.Parent = root

	preOrder(root, visState{visible: true, excIdx: -1}, nil, hc)

	if len(excs) != 2 {
		t.Fatalf("got %d exceptions, want 2 (prefix + suffix around the visible child): %+v", len(excs), excs)
	}
	if excs[0].Pos != 0 || excs[0].Len != 3 {
		t.Errorf("prefix exception = %+v, want {Pos:0 Len:3}", excs[0])
	}
	if excs[1].Pos != 7 || excs[1].Len != 3 {
		t.Errorf("suffix exception = %+v, want {Pos:7 Len:3}", excs[1])
	}
}

func TestComputeVisibleHeuristics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		b    *Block
		want bool
	}{
		{"nil block visible", nil, true},
		{"default block visible", &Block{}, true},
		{"display none", &Block{Declarations: map[string]string{"display": "none"}}, false},
		{"visibility hidden", &Block{Declarations: map[string]string{"visibility": "hidden"}}, false},
		{"opacity zero", &Block{Declarations: map[string]string{"opacity": "0"}}, false},
		{"font-size zero", &Block{Declarations: map[string]string{"font-size": "0px"}}, false},
		{"fg equals bg", &Block{FgColor: "#ffffff", BgColor: "#ffffff"}, false},
		{"fg differs from bg", &Block{FgColor: "#ffffff", BgColor: "#000000"}, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := computeVisible(tc.b); got != tc.want {
				t.Errorf("computeVisible(%+v) = %v, want %v", tc.b, got, tc.want)
			}
		})
	}
}
