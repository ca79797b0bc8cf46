package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voyagevr/api/internal/config"
	"github.com/voyagevr/api/internal/identity"
	"github.com/voyagevr/api/internal/infra/blob"
	"github.com/voyagevr/api/internal/infra/cache"
	"github.com/voyagevr/api/internal/infra/db"
	"github.com/voyagevr/api/internal/infra/logger"
	mq "github.com/voyagevr/api/internal/infra/queue"
	"github.com/voyagevr/api/internal/modules/handler"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"github.com/voyagevr/api/internal/modules/service"
	"github.com/voyagevr/api/internal/pkg/userlock"
	"github.com/voyagevr/api/internal/router"
)

// activeBookingIndex enforces one live booking per user at the storage
// layer. AutoMigrate cannot express a partial index, so it is applied
// with raw SQL after the tables exist.
const activeBookingIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uq_vr_bookings_active_user
ON vr_bookings (user_id) WHERE status IN ('pending', 'confirmed')`

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(
				&model.User{},
				&model.Destination{},
				&model.VRBooking{},
				&model.PackageGroup{},
				&model.PackageMembership{},
				&model.QuoteRequest{},
				&model.Review{},
				&model.Favorite{},
				&model.AdminEmail{},
			); err != nil {
				return nil, err
			}
			if err := d.Exec(activeBookingIndex).Error; err != nil {
				return nil, err
			}
		}
		if err := EnsureBootstrapAdmin(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	do.Provide(inj, func(i *do.Injector) (*userlock.Locker, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		return userlock.New(rdb), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")
		if useTLS {
			url := cfg.RabbitMQ.URL
			if strings.HasPrefix(url, "amqp://") {
				url = strings.Replace(url, "amqp://", "amqps://", 1)
			}
			return amqp.DialTLS(url, &tls.Config{MinVersion: tls.VersionTLS12})
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		cfg := do.MustInvoke[*config.Config](i)
		return mq.NewPublisher(conn, log, cfg)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// identity
	do.Provide(inj, func(i *do.Injector) (identity.Provider, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return identity.NewSupabase(cfg), nil
	})

	// repos
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DestinationRepo, error) {
		return repo.NewDestinationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BookingRepo, error) {
		return repo.NewBookingRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PackageRepo, error) {
		return repo.NewPackageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.QuoteRepo, error) {
		return repo.NewQuoteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ReviewRepo, error) {
		return repo.NewReviewRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FavoriteRepo, error) {
		return repo.NewFavoriteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AdminRepo, error) {
		return repo.NewAdminRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// services
	do.Provide(inj, func(i *do.Injector) (service.AdminService, error) {
		return service.NewAdminService(do.MustInvoke[repo.AdminRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[service.AdminService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BookingService, error) {
		return service.NewBookingService(
			do.MustInvoke[repo.BookingRepo](i),
			do.MustInvoke[*userlock.Locker](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PackageService, error) {
		return service.NewPackageService(
			do.MustInvoke[repo.PackageRepo](i),
			do.MustInvoke[repo.DestinationRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.QuoteService, error) {
		return service.NewQuoteService(
			do.MustInvoke[repo.QuoteRepo](i),
			do.MustInvoke[service.PackageService](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DestinationService, error) {
		return service.NewDestinationService(
			do.MustInvoke[repo.DestinationRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReviewService, error) {
		return service.NewReviewService(
			do.MustInvoke[repo.ReviewRepo](i),
			do.MustInvoke[repo.DestinationRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FavoriteService, error) {
		return service.NewFavoriteService(
			do.MustInvoke[repo.FavoriteRepo](i),
			do.MustInvoke[repo.DestinationRepo](i),
		), nil
	})

	// handlers
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.AdminService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BookingHandler, error) {
		return handler.NewBookingHandler(do.MustInvoke[service.BookingService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PackageHandler, error) {
		return handler.NewPackageHandler(do.MustInvoke[service.PackageService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.QuoteHandler, error) {
		return handler.NewQuoteHandler(do.MustInvoke[service.QuoteService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DestinationHandler, error) {
		return handler.NewDestinationHandler(do.MustInvoke[service.DestinationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReviewHandler, error) {
		return handler.NewReviewHandler(do.MustInvoke[service.ReviewService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FavoriteHandler, error) {
		return handler.NewFavoriteHandler(do.MustInvoke[service.FavoriteService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AdminHandler, error) {
		return handler.NewAdminHandler(
			do.MustInvoke[service.BookingService](i),
			do.MustInvoke[service.QuoteService](i),
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.AdminService](i),
		), nil
	})

	// router
	do.Provide(inj, func(i *do.Injector) (*gin.Engine, error) {
		return router.NewRouter(router.RouterDeps{
			Config:             do.MustInvoke[*config.Config](i),
			Log:                do.MustInvoke[*zap.Logger](i),
			Identity:           do.MustInvoke[identity.Provider](i),
			UserService:        do.MustInvoke[service.UserService](i),
			AdminService:       do.MustInvoke[service.AdminService](i),
			UserHandler:        do.MustInvoke[*handler.UserHandler](i),
			BookingHandler:     do.MustInvoke[*handler.BookingHandler](i),
			PackageHandler:     do.MustInvoke[*handler.PackageHandler](i),
			QuoteHandler:       do.MustInvoke[*handler.QuoteHandler](i),
			DestinationHandler: do.MustInvoke[*handler.DestinationHandler](i),
			ReviewHandler:      do.MustInvoke[*handler.ReviewHandler](i),
			FavoriteHandler:    do.MustInvoke[*handler.FavoriteHandler](i),
			AdminHandler:       do.MustInvoke[*handler.AdminHandler](i),
		}), nil
	})

	return inj
}
