package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/becomecodx/HOMIGO/internal/config"
	"github.com/becomecodx/HOMIGO/internal/domain/enums"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	feedsvc "github.com/becomecodx/HOMIGO/internal/services/feed"
	listingsvc "github.com/becomecodx/HOMIGO/internal/services/listings"
	matchessvc "github.com/becomecodx/HOMIGO/internal/services/matches"
	mediasvc "github.com/becomecodx/HOMIGO/internal/services/media"
	profilesvc "github.com/becomecodx/HOMIGO/internal/services/profiles"
	reqsvc "github.com/becomecodx/HOMIGO/internal/services/requirements"
	savedsvc "github.com/becomecodx/HOMIGO/internal/services/saved"
	swipesvc "github.com/becomecodx/HOMIGO/internal/services/swipes"
	httperrors "github.com/becomecodx/HOMIGO/internal/transport/http/errors"
	"github.com/becomecodx/HOMIGO/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService        *authsvc.Service
	SwipeService       *swipesvc.Service
	MatchService       *matchessvc.Service
	ListingService     *listingsvc.Service
	RequirementService *reqsvc.Service
	SavedService       *savedsvc.Service
	ProfileService     *profilesvc.Service
	FeedService        *feedsvc.Service
	MediaService       *mediasvc.Service
	Logger             *zap.Logger
	Config             config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Config.Auth.CaptchaTTL)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	savedHandler := handlers.NewSavedHandler(deps.SavedService)
	listingsHandler := handlers.NewListingsHandler(deps.ListingService)
	requirementsHandler := handlers.NewRequirementsHandler(deps.RequirementService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	feedHandler := handlers.NewFeedHandler(deps.FeedService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	tenantMW := RequireRole(string(enums.SwiperTypeTenant))
	hostMW := RequireRole(string(enums.SwiperTypeHost))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httperrors.Write(w, http.StatusOK, struct {
			Status string `json:"status"`
		}{Status: "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/captcha", authHandler.Captcha)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/matching", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/swipe", swipeHandler.Swipe)
		r.Get("/matches", matchesHandler.List)
		r.Get("/matches/{matchID}", matchesHandler.Get)
		r.Post("/matches/{matchID}/schedule-visit", matchesHandler.ScheduleVisit)
		r.Patch("/matches/{matchID}/visit-status", matchesHandler.UpdateVisitStatus)
		r.Post("/matches/{matchID}/close-deal", matchesHandler.CloseDeal)
		r.Post("/matches/{matchID}/unmatch", matchesHandler.Unmatch)
		r.Post("/save", savedHandler.Save)
		r.Get("/saved", savedHandler.List)
		r.Delete("/saved/{savedID}", savedHandler.Delete)
	})

	r.Route("/listings", func(r chi.Router) {
		r.With(authMW, hostMW).Post("/", listingsHandler.Create)
		r.With(authMW, hostMW).Get("/my", listingsHandler.ListMine)
		r.Get("/{listingID}", listingsHandler.Get)
		r.With(authMW, hostMW).Patch("/{listingID}/status", listingsHandler.UpdateStatus)
	})

	r.Route("/feed", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/listings", feedHandler.Listings)
		r.Get("/requirements", feedHandler.Requirements)
	})

	r.Route("/tenant", func(r chi.Router) {
		r.Use(authMW)
		r.With(tenantMW).Post("/requirements", requirementsHandler.Create)
		r.With(tenantMW).Get("/requirements/my", requirementsHandler.ListMine)
		r.Get("/requirements/{requirementID}", requirementsHandler.Get)
		r.With(tenantMW).Patch("/requirements/{requirementID}/status", requirementsHandler.UpdateStatus)
		r.With(tenantMW).Get("/profile", profileHandler.GetTenant)
		r.With(tenantMW).Put("/profile", profileHandler.UpdateTenant)
	})

	r.Route("/host", func(r chi.Router) {
		r.Use(authMW, hostMW)
		r.Get("/profile", profileHandler.GetHost)
		r.Put("/profile", profileHandler.UpdateHost)
	})

	r.Route("/media", func(r chi.Router) {
		r.Use(authMW)
		r.With(hostMW).Post("/listings/{listingID}/photos", mediaHandler.UploadListingPhoto)
		r.Get("/listings/{listingID}/photos", mediaHandler.ListListingPhotos)
	})
}
