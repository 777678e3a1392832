package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterOptions carries cross-cutting router configuration.
type RouterOptions struct {
	// Auth wraps every route except /healthz; see NewStaticTokenAuthMiddleware
	// and NewDevAuthMiddleware.
	Auth func(http.Handler) http.Handler

	// CORSAllowedOrigins enables a CORS layer for browser clients when non-empty.
	CORSAllowedOrigins []string
}

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: it wires routes/middleware and
// delegates to the Server handlers.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Debug-Subject"},
			AllowCredentials: true,
		}).Handler)
	}

	if opts.Auth != nil {
		r.Use(opts.Auth)
	}

	// Health endpoint for infra checks; bypasses auth.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/session", s.GetSession)

	r.Get("/group", s.GetGroup)
	r.Patch("/group", s.UpdateGroup)

	r.Route("/members", func(r chi.Router) {
		r.Get("/", s.ListMembers)
		r.Get("/me", s.GetMyProfile)
		r.Post("/me", s.CreateMyProfile)
		r.Patch("/me", s.UpdateMyProfile)
		r.Get("/{memberId}", s.GetMemberProfile)
		r.Get("/{memberId}/attendance", s.ListMemberAttendance)
	})

	r.Route("/songs", func(r chi.Router) {
		r.Get("/", s.ListSongs)
		r.Post("/", s.CreateSong)
		r.Get("/count", s.CountSongs)
		r.Get("/{songId}", s.GetSong)
		r.Patch("/{songId}", s.UpdateSong)
		r.Delete("/{songId}", s.DeleteSong)
		r.Get("/{songId}/assets", s.ListSongAssets)
		r.Post("/{songId}/assets", s.RegisterSongAsset)
		r.Get("/{songId}/tracks", s.ListSongTracks)
	})

	r.Delete("/assets/{assetId}", s.DeleteSongAsset)

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", s.ListActivities)
		r.Post("/", s.CreateActivity)
		r.Get("/{activityId}", s.GetActivity)
		r.Patch("/{activityId}", s.UpdateActivity)
		r.Delete("/{activityId}", s.DeleteActivity)
		r.Get("/{activityId}/attendance", s.GetAttendanceSheet)
		r.Put("/{activityId}/attendance/{memberId}", s.RecordAttendance)
	})

	return r
}
