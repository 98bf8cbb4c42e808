package commands

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/config"
	"storefront/libs"
	"storefront/logger"
	"storefront/repositories"
	"storefront/routes"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// app owns the process-wide resources shared by the commands.
type app struct {
	cfg   *config.Config
	pool  *pgxpool.Pool
	redis *redis.Client
}

func boot(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()
	logger.Setup(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, pool: pool}, nil
}

func (a *app) Close() {
	config.CloseRedis(a.redis)
	config.CloseDB(a.pool)
}

func (a *app) productService() *services.ProductService {
	return services.NewProductService(repositories.NewProductRepository(a.pool), nil, repositories.NewTxManager(a.pool))
}

func (a *app) imageStore() (services.ImageStore, error) {
	cld, err := libs.NewCloudinaryImageStore(a.cfg)
	if err != nil {
		return nil, err
	}
	if cld != nil {
		slog.Info("product images stored on cloudinary")
		return cld, nil
	}
	slog.Info("product images stored on local disk", "dir", a.cfg.UploadDir)
	return libs.NewLocalImageStore(a.cfg.UploadDir, a.cfg.MaxUploadSize), nil
}

// router wires repositories, services and adapters into the HTTP router.
func (a *app) router(ctx context.Context) (*gin.Engine, error) {
	cfg := a.cfg
	if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET are required")
	}

	tx := repositories.NewTxManager(a.pool)
	users := repositories.NewUserRepository(a.pool)
	products := repositories.NewProductRepository(a.pool)
	carts := repositories.NewCartRepository(a.pool)
	favorites := repositories.NewFavoriteRepository(a.pool)
	orders := repositories.NewOrderRepository(a.pool)

	tokens := utils.NewJWT(cfg.JWTSecret, cfg.JWTExpiry)

	var limiter services.LoginLimiter
	a.redis = config.ConnectRedis(ctx, cfg)
	if a.redis != nil {
		limiter = libs.NewRedisLoginLimiter(a.redis, cfg.LoginAttempts, cfg.LoginWindow)
	}

	var mailer services.Mailer
	if m := libs.NewSMTPMailer(cfg); m != nil {
		mailer = m
	} else {
		slog.Info("smtp not configured, order confirmation emails disabled")
	}

	images, err := a.imageStore()
	if err != nil {
		return nil, err
	}

	gateway := libs.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripeTimeout)

	deps := routes.Dependencies{
		Tokens:    tokens,
		Auth:      services.NewAuthService(users, tokens, limiter),
		Users:     services.NewUserService(users, tx),
		Products:  services.NewProductService(products, images, tx),
		Favorites: services.NewFavoriteService(favorites, products, tx),
		Carts:     services.NewCartService(carts, products, tx),
		Checkout: services.NewCheckoutService(users, products, carts, orders, tx, gateway, mailer, services.CheckoutConfig{
			Currency:   cfg.CheckoutCurrency,
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
		}),
		Orders:    services.NewOrderService(orders, tx),
		OriginURL: cfg.OriginURL,
	}
	if _, local := images.(*libs.LocalImageStore); local {
		deps.UploadDir = cfg.UploadDir
	}
	return routes.NewRouter(deps), nil
}
