package service

import (
	"log"
	"net/http"
)

func withLogging(logger *log.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Printf("REQ %s %s Host=%s UA=%q From=%s ContentLength=%d", r.Method, r.URL.String(), r.Host, r.UserAgent(), r.RemoteAddr, r.ContentLength)
		next.ServeHTTP(w, r)
	})
}
