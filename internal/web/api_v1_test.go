package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/storage"
)

type fakeFrames struct{ frame *image.Gray }

func (f fakeFrames) Snapshot() (*image.Gray, render.RefreshMode, bool) {
	return f.frame, render.FastRefresh, f.frame != nil
}

type fakeRecent []recent.Book

func (f fakeRecent) List(context.Context, int) ([]recent.Book, error) { return f, nil }

type apiFixture struct {
	server  *httptest.Server
	library storage.Library
	keys    *input.VirtualSource
	changes atomic.Int32
	layout  atomic.Int32
}

const testMaxUpload = 64

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		library: storage.Library{Dir: t.TempDir()},
		keys:    input.NewVirtualSource(),
	}
	deps := APIV1Deps{
		Books:          f.library,
		Frames:         fakeFrames{frame: image.NewGray(image.Rect(0, 0, 8, 4))},
		Keys:           f.keys,
		Recent:         fakeRecent{{Path: "/books/a.epub", Title: "A", OpenedAt: time.Unix(5, 0)}},
		Layout:         func() input.Layout { return input.Layout(f.layout.Load()) },
		LibraryChanged: func() { f.changes.Add(1) },
		MaxUploadBytes: testMaxUpload,
	}
	f.server = httptest.NewServer(NewDefaultMux("", deps))
	t.Cleanup(f.server.Close)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, body)
	require.NoError(t, err)
	res, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeError(t *testing.T, res *http.Response) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.NewDecoder(res.Body).Decode(&e))
	return e
}

func TestBooksUploadListDownloadDelete(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodPost, "/api/v1/books/novel.epub", strings.NewReader("chapter one"))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.EqualValues(t, 1, f.changes.Load())

	res = f.do(t, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var files []storage.File
	require.NoError(t, json.NewDecoder(res.Body).Decode(&files))
	require.Len(t, files, 1)
	require.Equal(t, "novel.epub", files[0].Name)
	require.EqualValues(t, len("chapter one"), files[0].Size)

	res = f.do(t, http.MethodGet, "/api/v1/books/novel.epub", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Disposition"), "novel.epub")
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "chapter one", string(body))

	res = f.do(t, http.MethodDelete, "/api/v1/books/novel.epub", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.EqualValues(t, 2, f.changes.Load())
	_, err = os.Stat(filepath.Join(f.library.Dir, "novel.epub"))
	require.ErrorIs(t, err, os.ErrNotExist)

	res = f.do(t, http.MethodDelete, "/api/v1/books/novel.epub", nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, "book_not_found", decodeError(t, res).Error)
}

func TestBooksRejectsBadRequests(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodGet, "/api/v1/books/.hidden", nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, "invalid_name", decodeError(t, res).Error)

	res = f.do(t, http.MethodPut, "/api/v1/books/a.epub", strings.NewReader("x"))
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res = f.do(t, http.MethodPost, "/api/v1/books", strings.NewReader("x"))
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	// An empty body carries no usable Content-Length.
	res = f.do(t, http.MethodPost, "/api/v1/books/empty.epub", http.NoBody)
	require.Equal(t, http.StatusLengthRequired, res.StatusCode)
	require.Zero(t, f.changes.Load())
}

func TestBooksRejectsOversizedUpload(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodPost, "/api/v1/books/huge.epub", strings.NewReader(strings.Repeat("x", testMaxUpload+1)))
	require.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
	require.Equal(t, "too_large", decodeError(t, res).Error)
	require.Zero(t, f.changes.Load())
	_, err := os.Stat(filepath.Join(f.library.Dir, "huge.epub"))
	require.ErrorIs(t, err, os.ErrNotExist)

	res = f.do(t, http.MethodPost, "/api/v1/books/fits.epub", strings.NewReader(strings.Repeat("x", testMaxUpload)))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.EqualValues(t, 1, f.changes.Load())
}

func TestFrameIsPNG(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodGet, "/api/v1/frame.png", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "image/png", res.Header.Get("Content-Type"))
	require.Equal(t, "fast", res.Header.Get("X-Refresh-Mode"))
	img, err := png.Decode(res.Body)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestFrameBeforeFirstCommit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewDefaultMux("", APIV1Deps{Frames: fakeFrames{}}))
	defer srv.Close()
	res, err := srv.Client().Get(srv.URL + "/api/v1/frame.png")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestInputTapsResolvedKey(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodPost, "/api/v1/input", strings.NewReader(`{"key":"confirm"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, f.keys.Poll().Has(input.Front2))

	f.layout.Store(int32(input.LayoutLeftRightBackConfirm))
	res = f.do(t, http.MethodPost, "/api/v1/input", strings.NewReader(`{"key":"confirm"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, f.keys.Poll().Has(input.Front4))

	res = f.do(t, http.MethodPost, "/api/v1/input", strings.NewReader(`{"key":"side-up"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, f.keys.Poll().Has(input.SideUp))

	res = f.do(t, http.MethodPost, "/api/v1/input", strings.NewReader(`{"key":"menu"}`))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, "unknown_key", decodeError(t, res).Error)

	res = f.do(t, http.MethodPost, "/api/v1/input", strings.NewReader(`not json`))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRecentListsBooks(t *testing.T) {
	f := newAPIFixture(t)

	res := f.do(t, http.MethodGet, "/api/v1/recent", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var books []recent.Book
	require.NoError(t, json.NewDecoder(res.Body).Decode(&books))
	require.Len(t, books, 1)
	require.Equal(t, "A", books[0].Title)
}

func TestUnconfiguredDepsAnswerNotImplemented(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewDefaultMux("", APIV1Deps{}))
	defer srv.Close()
	for _, path := range []string{"/api/v1/books", "/api/v1/frame.png", "/api/v1/recent"} {
		res, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		_ = res.Body.Close()
		require.Equal(t, http.StatusNotImplemented, res.StatusCode, path)
	}
	res, err := srv.Client().Post(srv.URL+"/api/v1/input", "application/json", bytes.NewReader([]byte(`{"key":"back"}`)))
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusNotImplemented, res.StatusCode)
}

func TestStaticUIServesEmbeddedIndex(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewDefaultMux("", APIV1Deps{}))
	defer srv.Close()
	res, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/api/v1/books")

	missing := httptest.NewServer(StaticUIHandler(filepath.Join(t.TempDir(), "nope")))
	defer missing.Close()
	res2, err := missing.Client().Get(missing.URL + "/")
	require.NoError(t, err)
	defer res2.Body.Close()
	require.Equal(t, http.StatusNotFound, res2.StatusCode)
}

func TestHTTPServerLifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewHTTPServer("127.0.0.1:0", APIV1Deps{})
	s.DevMode = true
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx), "second start is a no-op")

	req, err := http.NewRequest(http.MethodOptions, "http://"+s.ListenAddr()+"/api/v1/books", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	require.Error(t, s.Start(ctx))
}
