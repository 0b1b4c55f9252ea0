package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"smppdump/internal/engine"
	"smppdump/internal/handlers"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	pcapPath := flag.String("pcap", "", "capture file to load at startup")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", *logLevel, err)
	}
	log.SetLevel(level)

	eng := engine.New()

	if *pcapPath != "" {
		data, err := os.ReadFile(*pcapPath)
		if err != nil {
			log.Fatalf("Read capture %s: %v", *pcapPath, err)
		}
		if err := eng.LoadCapture(data); err != nil {
			log.Fatalf("Load capture %s: %v", *pcapPath, err)
		}
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, eng)

	addr := fmt.Sprintf(":%d", *port)
	log.Infof("smppdump listening on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
