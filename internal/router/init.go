package router

import (
	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/internal/container"
	pginfra "github.com/oceantrail/divelog-api/internal/infrastructure/postgres"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	diveLogs := pginfra.NewDiveLogRepository(pool)
	spots := pginfra.NewDivingSpotRepository(pool)
	events := pginfra.NewEventRepository(pool)
	conversations := pginfra.NewConversationRepository(pool)
	achievements := pginfra.NewAchievementRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)

	userSvc := application.NewUserService(users, jwt, container.GetGCS(), cfg.GCSBucket,
		container.GetRedis(), logger, container.GetES(), cfg.ESUsersIndex)
	diveLogSvc := application.NewDiveLogService(diveLogs, users, spots, container.GetRabbitPub(), logger)
	spotSvc := application.NewSpotService(spots, container.GetGCS(), cfg.GCSBucket,
		logger, container.GetES(), cfg.ESSpotsIndex)
	eventSvc := application.NewEventService(events, users, container.GetRabbitPub(), logger)
	conversationSvc := application.NewConversationService(conversations, users, container.GetRabbitPub(), logger)
	achievementSvc := application.NewAchievementService(achievements, users, container.GetRabbitPub(), logger)
	notificationSvc := application.NewNotificationService(notifications, logger)

	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewDiveLogModule(handlers.NewDiveLogHandler(diveLogSvc, logger), jwt))
	r.Add(modules.NewSpotModule(handlers.NewSpotHandler(spotSvc, logger), jwt))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, logger), jwt))
	r.Add(modules.NewConversationModule(handlers.NewConversationHandler(conversationSvc, logger), jwt))
	r.Add(modules.NewAchievementModule(handlers.NewAchievementHandler(achievementSvc, logger), jwt))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notificationSvc, logger), jwt))
}
