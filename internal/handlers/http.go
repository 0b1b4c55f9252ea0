package handlers

import (
	"io"
	"io/fs"
	"net/http"

	"smppdump/internal/engine"
	"smppdump/web"
)

const maxUploadSize = 100 << 20 // 100 MB

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, eng *engine.Engine) {
	// Serve embedded static files
	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("/", fileServer)

	// WebSocket endpoint
	mux.HandleFunc("/ws", HandleWebSocket(eng))

	// Capture file upload
	mux.HandleFunc("/api/upload", handleUpload(eng))
}

func handleUpload(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "File too large (max 100MB)", http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		// The decoder works on a resident buffer, so the upload is read
		// fully into memory; no temp file is needed.
		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}

		if err := eng.LoadCapture(data); err != nil {
			http.Error(w, "Failed to read capture: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
