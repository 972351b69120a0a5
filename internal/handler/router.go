package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sobilo34/Tyma-server/pkg/auth"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/metrics"
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	Zones      *ZoneHandler
	Officials  *OfficialHandler
	News       *NewsHandler
	Images     *ImageHandler
	Contact    *ContactHandler
	Newsletter *NewsletterHandler
	Auth       *AuthHandler
	Health     *HealthHandler
}

// NewRouter builds the HTTP routing table. Read endpoints and public form
// submissions are open; mutations require an admin bearer token.
func NewRouter(h Handlers, tokens *auth.TokenService, log *logger.Logger, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(CORSMiddleware)
	router.Use(logger.Middleware(log))
	router.Use(metrics.Middleware(m))

	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Public surface.
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	api.HandleFunc("/zones", h.Zones.ListZones).Methods(http.MethodGet)
	api.HandleFunc("/zones/{slug}", h.Zones.GetZone).Methods(http.MethodGet)

	api.HandleFunc("/officials", h.Officials.ListOfficials).Methods(http.MethodGet)
	api.HandleFunc("/officials/{official_id}", h.Officials.GetOfficial).Methods(http.MethodGet)

	api.HandleFunc("/news", h.News.ListNews).Methods(http.MethodGet)
	api.HandleFunc("/news/{slug}", h.News.GetNews).Methods(http.MethodGet)
	api.HandleFunc("/news-categories", h.News.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/news-categories/{slug}", h.News.GetCategory).Methods(http.MethodGet)

	// for-object is registered before the {image_id} route so it matches first.
	api.HandleFunc("/images/for-object", h.Images.ImagesForObject).Methods(http.MethodGet)
	api.HandleFunc("/images", h.Images.ListImages).Methods(http.MethodGet)
	api.HandleFunc("/images/{image_id}", h.Images.GetImage).Methods(http.MethodGet)

	api.HandleFunc("/contact", h.Contact.SubmitContact).Methods(http.MethodPost)
	api.HandleFunc("/contact/subjects", h.Contact.SubjectChoices).Methods(http.MethodGet)
	api.HandleFunc("/newsletter/subscribe", h.Newsletter.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/newsletter/unsubscribe", h.Newsletter.Unsubscribe).Methods(http.MethodPost)

	// Admin surface.
	admin := router.PathPrefix("/api").Subrouter()
	admin.Use(AuthMiddleware(tokens))

	admin.HandleFunc("/zones", h.Zones.CreateZone).Methods(http.MethodPost)
	admin.HandleFunc("/zones/{slug}", h.Zones.UpdateZone).Methods(http.MethodPut)
	admin.HandleFunc("/zones/{slug}", h.Zones.DeleteZone).Methods(http.MethodDelete)

	admin.HandleFunc("/officials", h.Officials.CreateOfficial).Methods(http.MethodPost)
	admin.HandleFunc("/officials/{official_id}", h.Officials.UpdateOfficial).Methods(http.MethodPut)
	admin.HandleFunc("/officials/{official_id}", h.Officials.DeleteOfficial).Methods(http.MethodDelete)

	admin.HandleFunc("/news", h.News.CreateNews).Methods(http.MethodPost)
	admin.HandleFunc("/news/{slug}", h.News.UpdateNews).Methods(http.MethodPut)
	admin.HandleFunc("/news/{slug}", h.News.DeleteNews).Methods(http.MethodDelete)
	admin.HandleFunc("/news-categories", h.News.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/news-categories/{slug}", h.News.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/news-categories/{slug}", h.News.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/images/upload", h.Images.UploadImage).Methods(http.MethodPost)
	admin.HandleFunc("/images/{image_id}", h.Images.UpdateImage).Methods(http.MethodPut)
	admin.HandleFunc("/images/{image_id}", h.Images.DeleteImage).Methods(http.MethodDelete)
	admin.HandleFunc("/images/{image_id}/link", h.Images.LinkImage).Methods(http.MethodPost)

	admin.HandleFunc("/contact/submissions", h.Contact.ListSubmissions).Methods(http.MethodGet)
	admin.HandleFunc("/newsletter/subscribers", h.Newsletter.ListSubscribers).Methods(http.MethodGet)

	return router
}
