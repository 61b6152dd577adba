// Command htmlscan reads an HTML document from stdin or a file argument,
// runs it through the htmldoc parser, and dumps the resulting document
// structure and extracted artifacts - a debug tool in the spirit of the
// teacher's cmd/cssdebug, but driven by this module's own parser rather
// than an x/net/html tree fetched over HTTP.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spamcore/htmlscan/internal/htmldoc"
	"github.com/spamcore/htmlscan/internal/service"
)

func main() {
	jsonOut := flag.Bool("json", false, "emit the JSON scan summary instead of the text dump")
	allowCSS := flag.Bool("css", true, "parse <style> blocks and apply computed visibility")
	flag.Parse()

	var input []byte
	var err error
	if args := flag.Args(); len(args) > 0 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("htmlscan: %v", err)
	}

	var excs []htmldoc.Exception
	urls := htmldoc.NewURLSet()
	hc := htmldoc.Process(input, htmldoc.Options{
		AllowCSS:   *allowCSS,
		Exceptions: &excs,
		URLs:       urls,
	})

	if *jsonOut {
		result := service.BuildScanResult(hc, excs)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("htmlscan: %v", err)
		}
		return
	}

	fmt.Println("structure:", hc.DebugStructure())
	fmt.Println("text:", string(hc.ParsedText()))
	fmt.Println("flags:", hc.Flags)
	for _, u := range urls.All() {
		fmt.Printf("url: %s (count=%d flags=%#x)\n", u.Raw, u.Count, u.Flags)
	}
	for _, img := range hc.Images {
		fmt.Printf("image: src=%q flags=%#x %dx%d\n", img.Src, img.Flags, img.Width, img.Height)
	}
	for _, e := range excs {
		fmt.Printf("exception: pos=%d len=%d kind=%d\n", e.Pos, e.Len, e.Kind)
	}
}
