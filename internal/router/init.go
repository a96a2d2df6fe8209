package router

import (
	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/internal/container"
	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	pginfra "github.com/vidstream/vidstream-backend/internal/infrastructure/postgres"
	handlers "github.com/vidstream/vidstream-backend/internal/interface/http"
	"github.com/vidstream/vidstream-backend/internal/router/modules"
)

// InitModules builds the repository/service/handler stack from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	videoRepo := pginfra.NewVideoRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetRabbitPub(),
		logger,
		cfg.AppName,
		cfg.SupportURL,
	)
	videoSvc := application.NewVideoService(
		videoRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESVideosIndex,
		logger,
	)
	engagementSvc := application.NewEngagementService(userRepo, videoRepo)
	playlistSvc := application.NewPlaylistService(userRepo, videoRepo)
	historySvc := application.NewHistoryService(userRepo, videoRepo)
	commentSvc := application.NewCommentService(videoRepo)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	videoHandler := handlers.NewVideoHandler(videoSvc, logger, cfg.MaxUploadBytes)
	engagementHandler := handlers.NewEngagementHandler(engagementSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)

	r.Add(modules.NewAuthModule(userHandler))
	r.Add(modules.NewVideoModule(videoHandler, engagementHandler, commentHandler))
	r.Add(modules.NewCollectionsModule(
		handlers.NewCollectionHandler(engagementSvc, relation.Liked, "liked videos"),
		handlers.NewCollectionHandler(engagementSvc, relation.Disliked, "disliked videos"),
		handlers.NewCollectionHandler(engagementSvc, relation.WatchLater, "watch later"),
	))
	r.Add(modules.NewPlaylistModule(handlers.NewPlaylistHandler(playlistSvc)))
	r.Add(modules.NewHistoryModule(handlers.NewHistoryHandler(historySvc)))
	r.Add(modules.NewDebugModule())
}
