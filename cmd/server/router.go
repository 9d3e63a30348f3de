package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thereayou/courier/internal/handlers"
	"github.com/thereayou/courier/internal/middleware"
	authpkg "github.com/thereayou/courier/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *authpkg.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	chatH *handlers.ChatHandler,
	channelH *handlers.ChannelHandler,
	historyH *handlers.HistoryHandler,
	wsH *handlers.WebSocketHandler,
) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/me", userH.GetMe)
		api.GET("/users", userH.ListUsers)
		api.GET("/users/:id/messages", historyH.GetPersonalMessages)

		api.POST("/chats", chatH.CreateChat)
		api.GET("/chats", chatH.GetMyChats)
		api.GET("/chats/:id/members", chatH.GetChatMembers)
		api.POST("/chats/:id/members", chatH.AddMember)
		api.PATCH("/chats/:id", chatH.RenameChat)
		api.DELETE("/chats/:id", chatH.DeleteChat)
		api.GET("/chats/:id/messages", historyH.GetChatMessages)

		api.POST("/channels", channelH.CreateChannel)
		api.GET("/channels", channelH.ListChannels)
		api.PATCH("/channels/:id", channelH.RenameChannel)
		api.DELETE("/channels/:id", channelH.DeleteChannel)
		api.GET("/channels/:id/messages", historyH.GetChannelMessages)
	}

	// WebSocket: без валидной сессии соединение отклоняется до апгрейда
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
