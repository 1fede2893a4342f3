package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/storage"
)

const maxInputBody = 1 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type savedResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
}

type inputRequest struct {
	Key string `json:"key"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) { handleBooks(w, r, deps) })
	mux.HandleFunc("/books/", func(w http.ResponseWriter, r *http.Request) { handleBooks(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/input", func(w http.ResponseWriter, r *http.Request) { handleInput(w, r, deps) })
	mux.HandleFunc("/recent", func(w http.ResponseWriter, r *http.Request) { handleRecent(w, r, deps) })
	return mux
}

func handleBooks(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	// GET    /books        -> file list
	// GET    /books/{name} -> download
	// POST   /books/{name} -> upload (Content-Length required)
	// DELETE /books/{name}
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/books"), "/")
	if name == "" {
		if r.Method != http.MethodGet {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		files, err := deps.Books.List()
		if err != nil {
			writeStorageError(w, "list_failed", err)
			return
		}
		if files == nil {
			files = []storage.File{}
		}
		writeJSON(w, http.StatusOK, files)
		return
	}

	switch r.Method {
	case http.MethodGet:
		downloadBook(w, r, deps, name)
	case http.MethodPost:
		if err := requireContentLength(r, deps.MaxUploadBytes); err != nil {
			if errors.Is(err, errTooLarge) {
				writeAPIError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error())
				return
			}
			writeAPIError(w, http.StatusLengthRequired, "length_required", err.Error())
			return
		}
		body := http.MaxBytesReader(w, r.Body, deps.MaxUploadBytes)
		if err := deps.Books.Save(name, body, r.ContentLength); err != nil {
			writeStorageError(w, "upload_failed", err)
			return
		}
		deps.Logger.Infof("web", "stored %q (%d bytes)", name, r.ContentLength)
		deps.LibraryChanged()
		writeJSON(w, http.StatusOK, savedResponse{OK: true, Name: storage.SanitizeFilename(name)})
	case http.MethodDelete:
		if err := deps.Books.Delete(name); err != nil {
			writeStorageError(w, "delete_failed", err)
			return
		}
		deps.Logger.Infof("web", "deleted %q", name)
		deps.LibraryChanged()
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func downloadBook(w http.ResponseWriter, r *http.Request, deps APIV1Deps, name string) {
	path, err := deps.Books.Path(name)
	if err != nil {
		writeStorageError(w, "download_failed", err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		writeStorageError(w, "download_failed", err)
		return
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeAPIError(w, http.StatusNotFound, "book_not_found", "book not found")
		return
	}

	setDownloadHeaders(w, name, "application/octet-stream")
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func writeStorageError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		writeAPIError(w, http.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, storage.ErrShortBody):
		writeAPIError(w, http.StatusBadRequest, "short_body", err.Error())
	case errors.Is(err, os.ErrNotExist):
		writeAPIError(w, http.StatusNotFound, "book_not_found", "book not found")
	case errors.Is(err, errNotConfigured):
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "library not configured")
	default:
		writeAPIError(w, http.StatusInternalServerError, code, err.Error())
	}
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Frames == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frames not configured")
		return
	}
	frame, mode, ok := deps.Frames.Snapshot()
	if !ok {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "nothing drawn yet")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Refresh-Mode", mode.String())
	if err := png.Encode(w, frame); err != nil {
		deps.Logger.Errorf("web", "encode frame: %v", err)
	}
}

func handleInput(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Keys == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "input not configured")
		return
	}

	var req inputRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxInputBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	key, ok := resolveKey(req.Key, deps.Layout())
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "unknown_key", "unknown key "+req.Key)
		return
	}
	deps.Keys.Tap(key)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// resolveKey accepts a logical button ("confirm") or a physical key ("front2").
func resolveKey(name string, layout input.Layout) (input.Key, bool) {
	if b, ok := input.ParseButton(name); ok {
		return input.KeyFor(layout, b)
	}
	return input.ParseKey(strings.TrimSpace(strings.ToLower(name)))
}

func handleRecent(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Recent == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "recent books not configured")
		return
	}
	books, err := deps.Recent.List(r.Context(), 0)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if books == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func setDownloadHeaders(w http.ResponseWriter, filename, contentType string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	cd := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	w.Header().Set("Content-Disposition", cd)
}

func requireContentLength(r *http.Request, maxBytes int64) error {
	// Reject chunked/unknown length so uploads stream straight to disk.
	if r.ContentLength <= 0 {
		return errLengthRequired
	}
	if r.ContentLength > maxBytes {
		return fmt.Errorf("%w: %s exceeds the %s limit", errTooLarge,
			humanize.IBytes(uint64(r.ContentLength)), humanize.IBytes(uint64(maxBytes)))
	}
	return nil
}

var (
	errLengthRequired = errors.New("content-length header is required")
	errTooLarge       = errors.New("upload too large")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
