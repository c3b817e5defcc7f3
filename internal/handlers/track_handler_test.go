package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/internal/store/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTrackRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	h := NewTrackHandler(services.NewTrackService(st))

	router := gin.New()
	router.GET("/api/v1/tracks", h.List)
	router.GET("/api/v1/tracks/:id", h.Get)
	return router, st
}

func seedHandlerTrack(t *testing.T, st *store.Store, title string, artistID primitive.ObjectID) *models.Track {
	t.Helper()
	track := &models.Track{
		Title:     title,
		TrackFile: "https://cdn.example.com/" + title + ".mp3",
		ArtistID:  artistID,
		Duration:  200,
	}
	if err := st.Tracks.Create(context.Background(), track); err != nil {
		t.Fatalf("seed track %q: %v", title, err)
	}
	return track
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func TestTrackListEnvelopeAndPagination(t *testing.T) {
	router, st := newTrackRouter(t)

	artist := &models.Artist{ArtistName: "Envelope Test Artist"}
	if err := st.Artists.Create(context.Background(), artist); err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	for _, title := range []string{"one", "two", "three"} {
		seedHandlerTrack(t, st, title, artist.ID)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks?page=1&limit=2", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.StatusCode != 200 || !env.Success {
		t.Fatalf("envelope = {statusCode:%d success:%v}, want {200 true}", env.StatusCode, env.Success)
	}

	var data struct {
		Tracks     []models.Track `json:"tracks"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Tracks) != 2 {
		t.Fatalf("page 1 has %d tracks, want 2", len(data.Tracks))
	}
	if data.Pagination.Total != 3 || data.Pagination.TotalPages != 2 {
		t.Fatalf("pagination = %+v, want total 3 and totalPages 2", data.Pagination)
	}
	if data.Tracks[0].Artist == nil || data.Tracks[0].Artist.ArtistName != artist.ArtistName {
		t.Fatalf("listed track is missing its populated artist: %+v", data.Tracks[0].Artist)
	}
}

func TestTrackGetUnknownIDReturnsNotFoundEnvelope(t *testing.T) {
	router, _ := newTrackRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success || env.StatusCode != 404 {
		t.Fatalf("envelope = {statusCode:%d success:%v}, want {404 false}", env.StatusCode, env.Success)
	}
	if env.Message != "track not found" {
		t.Fatalf("message = %q, want %q", env.Message, "track not found")
	}
}

func TestTrackGetMalformedIDReturnsBadRequest(t *testing.T) {
	router, _ := newTrackRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tracks/not-a-hex-id", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success || env.StatusCode != 400 {
		t.Fatalf("envelope = {statusCode:%d success:%v}, want {400 false}", env.StatusCode, env.Success)
	}
}
