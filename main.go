package main

import (
	"burpp/app"
	"burpp/infra/postgres"
	"burpp/infra/rabbitmq"
	"burpp/internal/middleware"
	"burpp/pkg/config"
	"burpp/pkg/events"
	"burpp/pkg/geocode"
	"burpp/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

// handleSearch wraps the vendor search with its contractual response shape:
// responses are never cached, and failures return an empty result envelope.
func handleSearch(handler *app.SearchVendorsHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")

		var req app.SearchVendorsRequest
		if err := c.QueryParser(&req); err != nil {
			return searchError(c, fiber.StatusBadRequest, "Invalid query params")
		}

		res, err := handler.Handle(c.UserContext(), &req)
		if err != nil {
			zap.L().Error("Vendor search failed", zap.Error(err))
			return searchError(c, fiber.StatusInternalServerError, "Failed to search vendors")
		}

		return c.JSON(res)
	}
}

func searchError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   message,
		"vendors": []any{},
		"count":   0,
	})
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.Any("appConfig", appConfig))

	fiberApp := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Error("Failed to connect event publisher, continuing without events", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	} else {
		zap.L().Warn("RABBITMQ_URL not set, events disabled")
	}

	geocodeCache := geocode.NewTTLCache(
		time.Duration(appConfig.GeocodeCacheTTLMinutes)*time.Minute,
		appConfig.GeocodeCacheMaxEntries,
	)
	geocoder := geocode.NewNominatimClient(
		appConfig.GeocoderBaseURL,
		appConfig.GeocoderUserAgent,
		time.Duration(appConfig.GeocoderTimeoutSeconds)*time.Second,
		geocodeCache,
	)

	searchVendorsHandler := app.NewSearchVendorsHandler(pgRepository, geocoder)
	getVendorHandler := app.NewGetVendorHandler(pgRepository)
	registerVendorHandler := app.NewRegisterVendorHandler(pgRepository, eventPublisher)
	updateVendorHandler := app.NewUpdateVendorHandler(pgRepository)
	approveVendorHandler := app.NewApproveVendorHandler(pgRepository, eventPublisher)
	listVendorsHandler := app.NewListVendorsHandler(pgRepository)
	getCategoriesHandler := app.NewGetCategoriesHandler(pgRepository)
	getCategoryHandler := app.NewGetCategoryHandler(pgRepository)
	createCategoryHandler := app.NewCreateCategoryHandler(pgRepository)
	updateCategoryHandler := app.NewUpdateCategoryHandler(pgRepository)
	deleteCategoryHandler := app.NewDeleteCategoryHandler(pgRepository)
	createReviewHandler := app.NewCreateReviewHandler(pgRepository, eventPublisher)
	getReviewsHandler := app.NewGetReviewsHandler(pgRepository)
	startConversationHandler := app.NewStartConversationHandler(pgRepository)
	sendMessageHandler := app.NewSendMessageHandler(pgRepository, eventPublisher)
	getConversationsHandler := app.NewGetConversationsHandler(pgRepository)
	getMessagesHandler := app.NewGetMessagesHandler(pgRepository)
	addFavoriteHandler := app.NewAddFavoriteHandler(pgRepository, eventPublisher)
	removeFavoriteHandler := app.NewRemoveFavoriteHandler(pgRepository)
	getFavoritesHandler := app.NewGetFavoritesHandler(pgRepository)
	getNotificationsHandler := app.NewGetNotificationsHandler(pgRepository)

	publicRoutes := fiberApp.Group("/api/v1")
	publicRoutes.Get("/vendors/search", handleSearch(searchVendorsHandler))
	publicRoutes.Get("/vendors/:id", handle[app.GetVendorRequest, app.GetVendorResponse](getVendorHandler))
	publicRoutes.Get("/vendors/:id/reviews", handle[app.GetReviewsRequest, app.GetReviewsResponse](getReviewsHandler))
	publicRoutes.Get("/categories", handle[app.GetCategoriesRequest, app.GetCategoriesResponse](getCategoriesHandler))
	publicRoutes.Get("/categories/:id", handle[app.GetCategoryRequest, app.GetCategoryResponse](getCategoryHandler))

	protectedRoutes := fiberApp.Group("/api/v1", middleware.NewIdentityMiddleware())
	protectedRoutes.Post("/vendors", handle[app.RegisterVendorRequest, app.RegisterVendorResponse](registerVendorHandler))
	protectedRoutes.Put("/vendors/:id", handle[app.UpdateVendorRequest, app.UpdateVendorResponse](updateVendorHandler))
	protectedRoutes.Post("/vendors/:id/reviews", handle[app.CreateReviewRequest, app.CreateReviewResponse](createReviewHandler))
	protectedRoutes.Post("/vendors/:id/favorite", handle[app.AddFavoriteRequest, app.AddFavoriteResponse](addFavoriteHandler))
	protectedRoutes.Delete("/vendors/:id/favorite", handle[app.RemoveFavoriteRequest, app.RemoveFavoriteResponse](removeFavoriteHandler))
	protectedRoutes.Get("/favorites", handle[app.GetFavoritesRequest, app.GetFavoritesResponse](getFavoritesHandler))
	protectedRoutes.Post("/conversations", handle[app.StartConversationRequest, app.StartConversationResponse](startConversationHandler))
	protectedRoutes.Get("/conversations", handle[app.GetConversationsRequest, app.GetConversationsResponse](getConversationsHandler))
	protectedRoutes.Get("/conversations/:id/messages", handle[app.GetMessagesRequest, app.GetMessagesResponse](getMessagesHandler))
	protectedRoutes.Post("/conversations/:id/messages", handle[app.SendMessageRequest, app.SendMessageResponse](sendMessageHandler))
	protectedRoutes.Get("/notifications", handle[app.GetNotificationsRequest, app.GetNotificationsResponse](getNotificationsHandler))

	adminRoutes := fiberApp.Group("/api/v1/admin", middleware.NewIdentityMiddleware(), middleware.NewAdminMiddleware())
	adminRoutes.Get("/vendors", handle[app.ListVendorsRequest, app.ListVendorsResponse](listVendorsHandler))
	adminRoutes.Put("/vendors/:id/approval", handle[app.ApproveVendorRequest, app.ApproveVendorResponse](approveVendorHandler))
	adminRoutes.Post("/categories", handle[app.CreateCategoryRequest, app.CreateCategoryResponse](createCategoryHandler))
	adminRoutes.Put("/categories/:id", handle[app.UpdateCategoryRequest, app.UpdateCategoryResponse](updateCategoryHandler))
	adminRoutes.Delete("/categories/:id", handle[app.DeleteCategoryRequest, app.DeleteCategoryResponse](deleteCategoryHandler))

	// Start server in a goroutine
	go func() {
		if err := fiberApp.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(fiberApp)
}

func gracefulShutdown(fiberApp *fiber.App) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := fiberApp.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
