package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyagevr/api/internal/config"
	"github.com/voyagevr/api/internal/identity"
	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/handler"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
	"github.com/voyagevr/api/internal/telemetry"
)

type RouterDeps struct {
	Config             *config.Config
	Log                *zap.Logger
	Identity           identity.Provider
	UserService        service.UserService
	AdminService       service.AdminService
	UserHandler        *handler.UserHandler
	BookingHandler     *handler.BookingHandler
	PackageHandler     *handler.PackageHandler
	QuoteHandler       *handler.QuoteHandler
	DestinationHandler *handler.DestinationHandler
	ReviewHandler      *handler.ReviewHandler
	FavoriteHandler    *handler.FavoriteHandler
	AdminHandler       *handler.AdminHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		// catalog browsing does not require a session
		destination := v1.Group("/destinations")
		{
			destination.GET("", d.DestinationHandler.ListDestinations)
			destination.GET("/:destination_id", d.DestinationHandler.GetDestination)
			destination.GET("/:destination_id/reviews", d.ReviewHandler.ListReviews)
		}

		authed := v1.Group("")
		authed.Use(middleware.UserAuth(d.Identity, d.UserService))
		{
			authed.GET("/me", d.UserHandler.Me)
			authed.PATCH("/me", d.UserHandler.UpdateMe)

			booking := authed.Group("/bookings")
			{
				booking.GET("", d.BookingHandler.ListBookings)
				booking.POST("", d.BookingHandler.CreateBooking)
				booking.GET("/active", d.BookingHandler.GetActiveBooking)
				booking.PUT("/cancel/:booking_id", d.BookingHandler.CancelBooking)
			}

			pkg := authed.Group("/packages")
			{
				pkg.GET("", d.PackageHandler.ListPackages)
				pkg.POST("", d.PackageHandler.AddPackage)
				pkg.DELETE("/:destination_id", d.PackageHandler.DeletePackage)

				pkg.GET("/groups", d.PackageHandler.ListGroups)
				pkg.POST("/groups", d.PackageHandler.CreateGroup)
			}

			quote := authed.Group("/quotes")
			{
				quote.GET("", d.QuoteHandler.ListQuotes)
				quote.POST("", d.QuoteHandler.CreateQuote)
			}

			authed.GET("/favorites", d.FavoriteHandler.ListFavorites)
			authed.PUT("/favorites/:destination_id", d.FavoriteHandler.ToggleFavorite)

			authed.POST("/destinations/:destination_id/reviews", d.ReviewHandler.CreateReview)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminOnly(d.AdminService))
			{
				admin.GET("/bookings", d.AdminHandler.ListAllBookings)
				admin.PUT("/bookings/:booking_id/status", d.AdminHandler.UpdateBookingStatus)

				admin.GET("/quotes", d.AdminHandler.ListAllQuotes)
				admin.PUT("/quotes/:quote_id/status", d.AdminHandler.UpdateQuoteStatus)

				admin.GET("/users", d.AdminHandler.ListUsers)

				admin.GET("/admins", d.AdminHandler.ListAdmins)
				admin.POST("/admins", d.AdminHandler.GrantAdmin)
				admin.DELETE("/admins", d.AdminHandler.RevokeAdmin)

				admin.POST("/destinations", d.DestinationHandler.CreateDestination)
				admin.PUT("/destinations/:destination_id", d.DestinationHandler.UpdateDestination)
				admin.DELETE("/destinations/:destination_id", d.DestinationHandler.DeleteDestination)
				admin.POST("/media/presign", d.DestinationHandler.PresignMedia)
			}
		}
	}

	return r
}
