// Package install serves the bootstrap install script over a small fixed set
// of HTTP routes.
package install

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strings"
)

//go:embed install.sh
var embeddedScript []byte

// DefaultIPHeader carries the client address set by the edge proxy.
const DefaultIPHeader = "CF-Connecting-IP"

const noCache = "no-cache, no-store, must-revalidate"

// Script returns the script at path, or the embedded one when path is empty.
func Script(path string) ([]byte, error) {
	if path == "" {
		return embeddedScript, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("reading install script: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("install script %s is empty", path)
	}
	return data, nil
}

// Handler routes /health, /ip, / and /install. Everything else is 404.
type Handler struct {
	script   []byte
	ipHeader string
	mux      *http.ServeMux
}

// NewHandler creates a Handler serving script. An empty ipHeader selects
// DefaultIPHeader.
func NewHandler(script []byte, ipHeader string) *Handler {
	if ipHeader == "" {
		ipHeader = DefaultIPHeader
	}
	h := &Handler{script: script, ipHeader: ipHeader, mux: http.NewServeMux()}
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.HandleFunc("/ip", h.handleIP)
	h.mux.HandleFunc("/install", h.handleScript)
	h.mux.HandleFunc("/{$}", h.handleScript)
	h.mux.HandleFunc("/", handleNotFound)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "OK")
}

func (h *Handler) handleIP(w http.ResponseWriter, r *http.Request) {
	ip := strings.TrimSpace(r.Header.Get(h.ipHeader))
	if ip == "" {
		ip = "unknown"
	}
	w.Header().Set("Cache-Control", noCache)
	writeText(w, http.StatusOK, ip)
}

func (h *Handler) handleScript(w http.ResponseWriter, _ *http.Request) {
	hdr := w.Header()
	hdr.Set("Content-Type", "text/x-shellscript; charset=utf-8")
	hdr.Set("Content-Disposition", `inline; filename="install.sh"`)
	hdr.Set("Cache-Control", noCache)
	hdr.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(h.script) //nolint:errcheck
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusNotFound, "Not Found")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck
}
