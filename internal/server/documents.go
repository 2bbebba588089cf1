package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tsawler/docpreview"
	"github.com/tsawler/docpreview/format"
	"github.com/tsawler/docpreview/ocr"
)

var (
	errInvalidName = errors.New("invalid document name")
	errNotFound    = errors.New("document not found")
)

// document describes a previewable file.
type document struct {
	Name      string `json:"name"`
	Format    string `json:"format"`
	Unit      string `json:"unit"`
	PageCount int    `json:"page_count"`
}

// pageInfo describes one position within a document.
type pageInfo struct {
	document
	Page  int    `json:"page"`
	Label string `json:"label"`
	Prev  *int   `json:"prev"`
	Next  *int   `json:"next"`
	// Text reports whether the page text route is served by this build.
	Text bool `json:"text"`
}

func (s *Server) describe(name string) document {
	f := format.Detect(name)
	return document{
		Name:      name,
		Format:    f.String(),
		Unit:      f.Unit(),
		PageCount: s.previewer.PageCount(filepath.Join(s.docsDir, name)),
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		s.logger.Error("listing documents", "dir", s.docsDir, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot list documents"))
		return
	}

	docs := []document{}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !s.previewer.IsSupported(e.Name()) {
			continue
		}
		docs = append(docs, s.describe(e.Name()))
	}

	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	name, path, ok := s.lookup(w, r)
	if !ok {
		return
	}

	doc := s.describe(name)
	if doc.PageCount == 0 {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("%s could not be read", name))
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid page number %q", v))
			return
		}
		page = n
	}

	nav, err := docpreview.NewNavigation(doc.PageCount).Jump(page)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	info := pageInfo{
		document: doc,
		Page:     nav.Page,
		Label:    nav.Label(path, doc.Unit),
		Text:     ocr.Enabled,
	}
	if prev, err := nav.Prev(); err == nil {
		info.Prev = &prev.Page
	}
	if next, err := nav.Next(); err == nil {
		info.Next = &next.Page
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	_, path, page, ok := s.lookupPage(w, r)
	if !ok {
		return
	}

	data, err := s.previewer.PreviewPNG(path, page)
	if err != nil {
		s.logger.Error("encoding preview", "path", path, "page", page, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot encode preview"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

func (s *Server) handlePageText(w http.ResponseWriter, r *http.Request) {
	_, path, page, ok := s.lookupPage(w, r)
	if !ok {
		return
	}

	text, err := s.previewer.PageText(path, page)
	switch {
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		writeError(w, http.StatusNotImplemented, err)
		return
	case errors.Is(err, docpreview.ErrPageOutOfRange):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.logger.Error("recognizing page text", "path", path, "page", page, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot recognize page text"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"page": page, "text": text})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	tooLarge := fmt.Errorf("upload exceeds %d bytes", s.maxUpload)
	if r.ContentLength > s.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("missing file field"))
		return
	}
	defer file.Close()

	base := filepath.Base(strings.ReplaceAll(header.Filename, `\`, "/"))
	want := format.Detect(base)
	if want == format.Unknown {
		writeError(w, http.StatusUnsupportedMediaType, docpreview.Unsupported(base))
		return
	}

	got, err := format.DetectFromReader(file, header.Size)
	if err != nil || got != want {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Errorf("content of %s is not %s", base, want))
		return
	}

	name := uuid.NewString() + "-" + base
	if err := s.store(name, file); err != nil {
		s.logger.Error("storing upload", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot store upload"))
		return
	}

	s.logger.Info("document uploaded", "name", name, "bytes", header.Size)
	writeJSON(w, http.StatusCreated, s.describe(name))
}

func (s *Server) store(name string, src io.ReadSeeker) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	dst, err := os.OpenFile(filepath.Join(s.docsDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return err
	}
	return dst.Close()
}

// lookup resolves the {name} parameter to a file in the documents
// directory, writing an error response when it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (name, path string, ok bool) {
	name = chi.URLParam(r, "name")
	path, err := s.resolve(name)
	switch {
	case errors.Is(err, errInvalidName):
		writeError(w, http.StatusBadRequest, err)
		return "", "", false
	case err != nil:
		writeError(w, http.StatusNotFound, err)
		return "", "", false
	}

	if !s.previewer.IsSupported(name) {
		writeError(w, http.StatusUnsupportedMediaType, docpreview.Unsupported(name))
		return "", "", false
	}
	return name, path, true
}

// lookupPage is lookup plus the {page} parameter.
func (s *Server) lookupPage(w http.ResponseWriter, r *http.Request) (name, path string, page int, ok bool) {
	name, path, ok = s.lookup(w, r)
	if !ok {
		return "", "", 0, false
	}

	v := chi.URLParam(r, "page")
	page, err := strconv.Atoi(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid page number %q", v))
		return "", "", 0, false
	}
	return name, path, page, true
}

// resolve maps a document name to a regular file directly inside the
// documents directory.
func (s *Server) resolve(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", errInvalidName, name)
	}

	path := filepath.Join(s.docsDir, name)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", errNotFound, name)
	}
	return path, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
