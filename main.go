package main

import (
	"fmt"
	"os"
	"quotes-backend/conf"
	"quotes-backend/database"
	"quotes-backend/handlers"
	"quotes-backend/middleware"
	"quotes-backend/repositories"
	"quotes-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {

	// 加载配置
	cfg, err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		panic(err)
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = cfg.Database.User
		dbPass = cfg.Database.Password
		dbHost = cfg.Database.Host
		dbPort = cfg.Database.Port
		dbName = cfg.Database.Dbname
	}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		cfg.ElevenLabs.APIKey = key
	}

	// 初始化数据库
	db, err := database.InitDB(dbHost, dbPort, dbUser, dbPass, dbName)
	if err != nil {
		panic(err)
	}

	//  初始化 Repositories
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// 初始化语音服务
	audioService := services.NewElevenLabsAudioService(
		cfg.ElevenLabs.APIKey,
		cfg.ElevenLabs.ModelID,
		cfg.Server.StaticDir,
	)

	// 上游随机名言客户端
	quoteClient := services.NewQuoteClient(cfg.Quotes.BaseURL)

	hub := services.NewHub()
	go hub.Run()

	// 播放控制器：ws 客户端当扬声器，一个用户一个槽位
	players := services.NewPlayerManager(audioService, &services.HubSink{Hub: hub}, cfg.Server.StaticDir)

	// 初始化 Handlers (注入 Repo)
	authHandler := handlers.NewAuthHandler(db, cfg.Auth)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo)
	quoteHandler := handlers.NewQuoteHandler(quoteClient)
	ttsHandler := handlers.NewTTSHandler(audioService)
	playbackHandler := handlers.NewPlaybackHandler(players)

	// 注册路由
	r := gin.Default()
	r.Static("/static/audio", cfg.Server.StaticDir)
	v1 := r.Group("/api/v1")
	{
		// 认证路由
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// 随机名言：纯透传，不要求登录
		v1.GET("/quotes/random", quoteHandler.GetRandomQuote)

		// 需要登录的路由
		authed := v1.Group("", middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			authed.GET("/favorites", favoriteHandler.GetFavorites)
			authed.POST("/favorites", favoriteHandler.AddFavorite)
			authed.DELETE("/favorites/:id", favoriteHandler.RemoveFavorite)

			authed.POST("/text-to-speech", ttsHandler.TextToSpeech)
			authed.POST("/playback/toggle", playbackHandler.Toggle)
		}

		// WebSocket 路由：下发播放指令 + 收播放回执
		v1.GET("/ws", func(c *gin.Context) {
			handlers.ServeWs(hub, players, c)
		})
	}
	_ = r.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}
