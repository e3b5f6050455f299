package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroid-racer/internal/config"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// pageData fills the landing page.
type pageData struct {
	SSHHost string
	SSHPort string
}

func main() {
	settings := config.Load()
	logger := settings.NewLogger(os.Stderr, "web")

	data := pageData{SSHHost: settings.DisplayHost, SSHPort: settings.SSHPort}
	http.Handle("/", newHandler(data, logger))

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page at the root and 404 elsewhere.
func newHandler(data pageData, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
}
