package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/shortlist-dev/shortlister/internal/middleware"
	"github.com/shortlist-dev/shortlister/internal/middleware/metrics"
	rl "github.com/shortlist-dev/shortlister/internal/middleware/ratelimiter"
	"github.com/shortlist-dev/shortlister/internal/setup"
)

// New creates and configures the mux router with all routes.
// Rate limiters set with .Use throttle all endpoints of that subrouter combined.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.CompressHandler)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{deps.Config.Public.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	r.Use(metrics.Middleware)

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/readyz", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth := r.PathPrefix("/auth").Subrouter()

	// OTP-sending endpoint: strict per-email and per-IP limits
	signupInit := auth.NewRoute().Subrouter()
	signupInit.Use(mw.RateLimit(rl.New(1.0/10, 1, 1*time.Hour), mw.GetEmailFromBody)) // 1 per 10s by email
	signupInit.Use(mw.RateLimit(rl.New(1.0/10, 1, 1*time.Hour), mw.GetIP))            // 1 per 10s by IP
	signupInit.Use(mw.GlobalRateLimit(rl.Rps100()))
	signupInit.HandleFunc("/signup/init", h.SignupInit).Methods("POST")

	// OTP verification: stricter limits to prevent brute force
	signupVerify := auth.NewRoute().Subrouter()
	signupVerify.Use(mw.RateLimit(rl.New(5.0/600.0, 5, 1*time.Hour), mw.GetEmailFromBody)) // 5 attempts per 10 minutes by email
	signupVerify.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
	signupVerify.Use(mw.GlobalRateLimit(rl.Rps100()))
	signupVerify.HandleFunc("/signup/verify", h.SignupVerify).Methods("POST")

	login := auth.NewRoute().Subrouter()
	login.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
	login.Use(mw.GlobalRateLimit(rl.Rps100()))
	login.HandleFunc("/login", h.Login).Methods("POST")

	// Authenticated JD routes. /history registered before /{jd_id} so the
	// literal path wins.
	jd := r.PathPrefix("/jd").Subrouter()
	jd.Use(authMw.NeedAuth())
	jd.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIdFromContext))
	jd.HandleFunc("/submit", h.SubmitJd).Methods("POST")
	jd.HandleFunc("/history", h.GetJdHistory).Methods("GET")
	jd.HandleFunc("/{jd_id}", h.GetJd).Methods("GET")
	jd.HandleFunc("/{jd_id}/preview", h.PreviewJd).Methods("GET")
	jd.HandleFunc("/update/{jd_id}", h.UpdateJd).Methods("PUT")
	jd.HandleFunc("/delete/{jd_id}", h.DeleteJd).Methods("DELETE")

	ai := r.PathPrefix("/ai").Subrouter()
	ai.Use(authMw.NeedAuth())
	ai.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIdFromContext))
	ai.HandleFunc("/store", h.StoreAIResults).Methods("POST")
	ai.HandleFunc("/results/{jd_id}", h.GetAIResults).Methods("GET")
	ai.HandleFunc("/candidate-count/{jd_id}", h.GetCandidateCount).Methods("GET")

	return r
}
