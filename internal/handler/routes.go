package handler

import (
	"net/http"

	"edusite/internal/logger"
	mw "edusite/internal/middleware"
	"edusite/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Programs *ProgramHandler
	Blogs    *BlogHandler
	Showcase *ShowcaseHandler
	Lookups  *LookupHandler
	Contact  *ContactHandler
	Cache    *CacheHandler
	Health   *HealthHandler
	Auth     *AuthHandler
}

// NewRouter creates and configures a new chi router. The Casbin
// authorizer runs on every route; anonymous access to the public API
// is granted through policy, not by bypassing the middleware.
func NewRouter(h Handlers, sessions session.Manager, authz func(http.Handler) http.Handler, canonical string, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sessions.LoadAndSave)
	r.Use(mw.Language(canonical))
	r.Use(authz)

	wrap := mw.Error(log)

	// Authentication routes
	r.Get("/auth/login", h.Auth.handleLogin)
	r.Get("/auth/callback", h.Auth.handleCallback)
	r.Post("/auth/logout", h.Auth.handleLogout)

	// Public API
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", wrap(h.Health.check))

		r.Method(http.MethodGet, "/programs", wrap(h.Programs.list))
		r.Method(http.MethodGet, "/programs/{slug}", wrap(h.Programs.get))
		r.Method(http.MethodGet, "/blogs", wrap(h.Blogs.list))
		r.Method(http.MethodGet, "/blogs/{slug}", wrap(h.Blogs.get))
		r.Method(http.MethodGet, "/testimonials", wrap(h.Showcase.listTestimonials))
		r.Method(http.MethodGet, "/faqs", wrap(h.Showcase.listFAQs))
		r.Method(http.MethodGet, "/videos", wrap(h.Showcase.listVideos))
		r.Method(http.MethodGet, "/lookups", wrap(h.Lookups.bundle))
		r.Method(http.MethodPost, "/contact", wrap(h.Contact.submit))
	})

	// Admin API. Access control happens in the Casbin policy; routes
	// here only need to exist.
	r.Route("/api/admin", func(r chi.Router) {
		r.Method(http.MethodGet, "/programs", wrap(h.Programs.adminList))
		r.Method(http.MethodPost, "/programs", wrap(h.Programs.create))
		r.Method(http.MethodGet, "/programs/{id}", wrap(h.Programs.adminGet))
		r.Method(http.MethodPut, "/programs/{id}", wrap(h.Programs.update))
		r.Method(http.MethodDelete, "/programs/{id}", wrap(h.Programs.delete))

		r.Method(http.MethodGet, "/blogs", wrap(h.Blogs.adminList))
		r.Method(http.MethodPost, "/blogs", wrap(h.Blogs.create))
		r.Method(http.MethodGet, "/blogs/{id}", wrap(h.Blogs.adminGet))
		r.Method(http.MethodPut, "/blogs/{id}", wrap(h.Blogs.update))
		r.Method(http.MethodDelete, "/blogs/{id}", wrap(h.Blogs.delete))

		r.Method(http.MethodGet, "/testimonials", wrap(h.Showcase.adminListTestimonials))
		r.Method(http.MethodPost, "/testimonials", wrap(h.Showcase.createTestimonial))
		r.Method(http.MethodGet, "/testimonials/{id}", wrap(h.Showcase.getTestimonial))
		r.Method(http.MethodPut, "/testimonials/{id}", wrap(h.Showcase.updateTestimonial))
		r.Method(http.MethodDelete, "/testimonials/{id}", wrap(h.Showcase.deleteTestimonial))

		r.Method(http.MethodGet, "/faqs", wrap(h.Showcase.adminListFAQs))
		r.Method(http.MethodPost, "/faqs", wrap(h.Showcase.createFAQ))
		r.Method(http.MethodGet, "/faqs/{id}", wrap(h.Showcase.getFAQ))
		r.Method(http.MethodPut, "/faqs/{id}", wrap(h.Showcase.updateFAQ))
		r.Method(http.MethodDelete, "/faqs/{id}", wrap(h.Showcase.deleteFAQ))

		r.Method(http.MethodGet, "/videos", wrap(h.Showcase.adminListVideos))
		r.Method(http.MethodPost, "/videos", wrap(h.Showcase.createVideo))
		r.Method(http.MethodGet, "/videos/{id}", wrap(h.Showcase.getVideo))
		r.Method(http.MethodPut, "/videos/{id}", wrap(h.Showcase.updateVideo))
		r.Method(http.MethodDelete, "/videos/{id}", wrap(h.Showcase.deleteVideo))

		r.Route("/lookups", func(r chi.Router) {
			r.Method(http.MethodGet, "/countries", wrap(h.Lookups.adminTable(h.Lookups.lookups.Countries)))
			r.Method(http.MethodPost, "/countries", wrap(h.Lookups.create(h.Lookups.lookups.CreateCountry)))
			r.Method(http.MethodPut, "/countries/{id}", wrap(h.Lookups.update(h.Lookups.lookups.UpdateCountry)))
			r.Method(http.MethodDelete, "/countries/{id}", wrap(h.Lookups.remove(h.Lookups.lookups.DeleteCountry)))

			r.Method(http.MethodGet, "/cities", wrap(h.Lookups.adminCities))
			r.Method(http.MethodPost, "/cities", wrap(h.Lookups.create(h.Lookups.lookups.CreateCity)))
			r.Method(http.MethodPut, "/cities/{id}", wrap(h.Lookups.update(h.Lookups.lookups.UpdateCity)))
			r.Method(http.MethodDelete, "/cities/{id}", wrap(h.Lookups.remove(h.Lookups.lookups.DeleteCity)))

			r.Method(http.MethodGet, "/grade-levels", wrap(h.Lookups.adminTable(h.Lookups.lookups.GradeLevels)))
			r.Method(http.MethodPost, "/grade-levels", wrap(h.Lookups.create(h.Lookups.lookups.CreateGradeLevel)))
			r.Method(http.MethodPut, "/grade-levels/{id}", wrap(h.Lookups.update(h.Lookups.lookups.UpdateGradeLevel)))
			r.Method(http.MethodDelete, "/grade-levels/{id}", wrap(h.Lookups.remove(h.Lookups.lookups.DeleteGradeLevel)))

			r.Method(http.MethodGet, "/program-types", wrap(h.Lookups.adminTable(h.Lookups.lookups.ProgramTypes)))
			r.Method(http.MethodPost, "/program-types", wrap(h.Lookups.create(h.Lookups.lookups.CreateProgramType)))
			r.Method(http.MethodPut, "/program-types/{id}", wrap(h.Lookups.update(h.Lookups.lookups.UpdateProgramType)))
			r.Method(http.MethodDelete, "/program-types/{id}", wrap(h.Lookups.remove(h.Lookups.lookups.DeleteProgramType)))
		})

		r.Method(http.MethodGet, "/contact-messages", wrap(h.Contact.adminList))
		r.Method(http.MethodPost, "/cache/clear", wrap(h.Cache.clear))
		r.Method(http.MethodGet, "/cache/stats", wrap(h.Cache.stats))
	})

	return r
}
