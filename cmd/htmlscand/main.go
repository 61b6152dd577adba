// Command htmlscand serves the HTML scan service over HTTP, in the
// style of the teacher's cmd/operetta: a flag-configurable listen
// address, conservative server timeouts, and connection-state logging.
package main

import (
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spamcore/htmlscan/internal/service"
)

func main() {
	addrFlag := flag.String("addr", ":8082", "listen address, e.g. :8082 or 0.0.0.0:8082")
	flag.Parse()

	addr := *addrFlag
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(os.Stdout)

	srv := service.New(service.DefaultConfig())
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          log.New(os.Stdout, "HTTPERR ", log.LstdFlags|log.Lmicroseconds),
		ConnState: func(c net.Conn, s http.ConnState) {
			log.Printf("CONN %s %s", s.String(), c.RemoteAddr())
		},
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen error on %s: %v", addr, err)
	}

	log.Println("listening on", addr)
	log.Fatal(httpSrv.Serve(ln))
}
