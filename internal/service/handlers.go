package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/spamcore/htmlscan/internal/htmldoc"
)

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.cfg.MaxBodyBytes {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	var excs []htmldoc.Exception
	urls := htmldoc.NewURLSet()
	hc := htmldoc.Process(body, htmldoc.Options{
		AllowCSS:   s.cfg.AllowCSS,
		Exceptions: &excs,
		URLs:       urls,
	})

	result := BuildScanResult(hc, excs)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Printf("scan: failed to encode response: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}
