package testsupport

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// FakeAlbum is one album served by FakeServer.
type FakeAlbum struct {
	ID     string
	Name   string
	Artist string
	Rating int
	// SongPath is the first song's library-relative path; empty means the
	// album has no songs.
	SongPath string
}

// FakeServer emulates the subset of Navidrome used by navicull: the
// Subsonic album listing, startScan and ping, plus native login and song
// lookup.
type FakeServer struct {
	*httptest.Server

	Username string
	Password string
	Token    string

	mu          sync.Mutex
	albums      []FakeAlbum
	scans       int
	listCalls   int
	songLookups int
	failScan    bool
}

// NewFakeServer starts a fake server that accepts alice/s3cret.
func NewFakeServer(t testing.TB, albums ...FakeAlbum) *FakeServer {
	t.Helper()

	f := &FakeServer{
		Username: "alice",
		Password: "s3cret",
		Token:    "fake-token",
		albums:   append([]FakeAlbum(nil), albums...),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/getAlbumList2.view", f.handleAlbumList)
	mux.HandleFunc("/rest/startScan.view", f.handleStartScan)
	mux.HandleFunc("/rest/ping.view", f.handlePing)
	mux.HandleFunc("/auth/login", f.handleLogin)
	mux.HandleFunc("/api/song", f.handleSongs)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// FailScan makes startScan answer with a failed envelope.
func (f *FakeServer) FailScan() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failScan = true
}

// Scans returns how many times startScan was called.
func (f *FakeServer) Scans() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scans
}

// ListCalls returns how many listing windows were requested.
func (f *FakeServer) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// SongLookups returns how many native song lookups were served.
func (f *FakeServer) SongLookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.songLookups
}

func (f *FakeServer) handleAlbumList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.listCalls++
	albums := f.albums
	f.mu.Unlock()

	if !f.subsonicAuthorized(r) {
		writeEnvelope(w, "failed", map[string]any{"error": map[string]any{"code": 40, "message": "Wrong username or password"}})
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	start := min(max(offset, 0), len(albums))
	end := min(start+max(size, 0), len(albums))

	page := make([]map[string]any, 0, end-start)
	for _, a := range albums[start:end] {
		entry := map[string]any{"id": a.ID, "name": a.Name, "artist": a.Artist}
		if a.Rating > 0 {
			entry["userRating"] = a.Rating
		}
		page = append(page, entry)
	}
	writeEnvelope(w, "ok", map[string]any{"albumList2": map[string]any{"album": page}})
}

func (f *FakeServer) handleStartScan(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.scans++
	fail := f.failScan
	f.mu.Unlock()

	if fail {
		writeEnvelope(w, "failed", map[string]any{"error": map[string]any{"code": 0, "message": "scan already running"}})
		return
	}
	writeEnvelope(w, "ok", map[string]any{"scanStatus": map[string]any{"scanning": true}})
}

func (f *FakeServer) handlePing(w http.ResponseWriter, r *http.Request) {
	if !f.subsonicAuthorized(r) {
		writeEnvelope(w, "failed", map[string]any{"error": map[string]any{"code": 40, "message": "Wrong username or password"}})
		return
	}
	writeEnvelope(w, "ok", nil)
}

func (f *FakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if body.Username != f.Username || body.Password != f.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": f.Token, "username": body.Username})
}

func (f *FakeServer) handleSongs(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-nd-authorization") != "Bearer "+f.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f.mu.Lock()
	f.songLookups++
	albums := f.albums
	f.mu.Unlock()

	albumID := r.URL.Query().Get("album_id")
	songs := []map[string]string{}
	for _, a := range albums {
		if a.ID == albumID && a.SongPath != "" {
			songs = append(songs, map[string]string{"id": a.ID + "-s1", "path": a.SongPath})
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(songs)
}

func (f *FakeServer) subsonicAuthorized(r *http.Request) bool {
	query := r.URL.Query()
	if query.Get("u") != f.Username || query.Get("s") == "" {
		return false
	}
	sum := md5.Sum([]byte(f.Password + query.Get("s")))
	return query.Get("t") == hex.EncodeToString(sum[:])
}

func writeEnvelope(w http.ResponseWriter, status string, fields map[string]any) {
	body := map[string]any{"status": status, "version": "1.16.1"}
	for k, v := range fields {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"subsonic-response": body})
}
