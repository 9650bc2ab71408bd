// 农业助手后端服务入口
// 负责初始化配置、数据库、缓存、对象存储，组装各层依赖并启动 HTTP 服务
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dakshesh8090/Agri-All-round/internal/cache"
	"github.com/Dakshesh8090/Agri-All-round/internal/config"
	"github.com/Dakshesh8090/Agri-All-round/internal/handler"
	"github.com/Dakshesh8090/Agri-All-round/internal/middleware"
	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/internal/storage"
	"github.com/Dakshesh8090/Agri-All-round/pkg/jwt"
)

func main() {
	// 1. 加载配置
	// 默认从 ./configs 目录读取 config.yaml，支持环境变量覆盖
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. 设置 Gin 运行模式
	// release 模式下关闭调试输出
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Println("[INFO] database connected")

	// 4. 自动迁移表结构
	if err := autoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("[INFO] database migrated")

	// 5. 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisCache.Close()
	log.Println("[INFO] redis connected")

	// 6. 初始化对象存储
	objectStore, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init object storage: %v", err)
	}
	log.Println("[INFO] object storage ready")

	// 7. 初始化 JWT 服务
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpire, cfg.JWT.RefreshExpire)

	// 8. 初始化数据访问层
	userRepo := repository.NewUserRepository(db)
	cropRepo := repository.NewCropRepository(db)
	diagnosisRepo := repository.NewDiagnosisRepository(db)
	queryRepo := repository.NewQueryRepository(db)

	// 9. 初始化业务逻辑层
	authService := service.NewAuthService(userRepo, redisCache, jwtService)
	userService := service.NewUserService(userRepo)
	cropService := service.NewCropService(cropRepo)
	assistantService := service.NewAssistantService(userRepo, queryRepo)
	diagnosisService := service.NewDiagnosisService(userRepo, diagnosisRepo, objectStore, service.NewRandomClassifier())
	weatherService := service.NewWeatherService(cfg, redisCache)

	// 10. 初始化处理器层
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	cropHandler := handler.NewCropHandler(cropService)
	chatHandler := handler.NewChatHandler(assistantService)
	diagnosisHandler := handler.NewDiagnosisHandler(diagnosisService)
	weatherHandler := handler.NewWeatherHandler(weatherService)

	// 11. 创建 Gin 引擎并注册中间件
	engine := gin.New()
	engine.Use(gin.Recovery())                // Panic 恢复
	engine.Use(middleware.LoggerMiddleware()) // 请求日志
	engine.Use(corsMiddleware(cfg))           // CORS 跨域

	// 12. 注册路由
	registerRoutes(engine, cfg, redisCache, jwtService,
		authHandler, userHandler, cropHandler, chatHandler, diagnosisHandler, weatherHandler)

	// 13. 启动 HTTP 服务器
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 在独立的 goroutine 中启动服务器
	go func() {
		log.Printf("[INFO] server listening on :%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// 14. 优雅关闭
	// 等待中断信号（Ctrl+C 或 kill）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down server...")

	// 给正在处理的请求 10 秒时间完成
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] server forced to shutdown: %v", err)
	}

	log.Println("[INFO] server exited")
}

// initDatabase 初始化 MySQL 数据库连接
// 参数:
//   - cfg: 应用配置
//
// 返回:
//   - *gorm.DB: 数据库连接实例
//   - error: 连接错误
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	// 构造 DSN (Data Source Name)
	// parseTime=True: 将数据库的时间类型解析为 time.Time
	// loc=Local: 使用本地时区
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.MySQL.Username,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
		cfg.MySQL.Charset,
	)

	// 根据运行模式选择 gorm 日志级别
	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // debug 模式打印所有 SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MySQL.MaxLifetime) * time.Second)

	return db, nil
}

// autoMigrate 自动迁移表结构
// 根据模型定义创建或更新数据库表
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Crop{},
		&model.Diagnosis{},
		&model.Query{},
	)
}

// corsMiddleware 根据配置构造 CORS 中间件
// 配置了允许域名列表时使用白名单，否则退回默认的宽松策略
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if len(cfg.Server.CORS) == 0 {
		return middleware.CORSMiddleware()
	}
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.Server.CORS
	return middleware.CORSMiddleware(corsConfig)
}

// registerRoutes 注册全部路由
// 根路径下是面向前端的开放接口，/api/v1 下是需要认证的管理接口
func registerRoutes(
	engine *gin.Engine,
	cfg *config.Config,
	redisCache *cache.RedisCache,
	jwtService *jwt.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	cropHandler *handler.CropHandler,
	chatHandler *handler.ChatHandler,
	diagnosisHandler *handler.DiagnosisHandler,
	weatherHandler *handler.WeatherHandler,
) {
	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 开放接口（与前端约定的路径，不带版本前缀）
	engine.POST("/chat", chatHandler.Chat)                   // 文字咨询
	engine.POST("/diagnosis", diagnosisHandler.Diagnose)     // 图片诊断
	engine.GET("/weather", weatherHandler.Current)           // 实时天气
	engine.GET("/weather/forecast", weatherHandler.Forecast) // 天气预报

	// API v1 路由组
	v1 := engine.Group("/api/v1")

	// 认证相关（无需登录）
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register) // 注册
		auth.POST("/login", authHandler.Login)       // 登录
		auth.POST("/refresh", authHandler.Refresh)   // 刷新 Token
	}

	// 需要认证的接口
	authorized := v1.Group("")
	authorized.Use(middleware.AuthMiddleware(jwtService, redisCache))
	{
		// 认证
		authorized.POST("/auth/logout", authHandler.Logout) // 登出
		authorized.GET("/auth/me", authHandler.Me)          // 当前用户

		// 个人资料
		authorized.GET("/users/me", userHandler.GetProfile)    // 获取资料
		authorized.PUT("/users/me", userHandler.UpdateProfile) // 修改资料

		// 作物记录
		authorized.GET("/crops", cropHandler.List)          // 列表
		authorized.POST("/crops", cropHandler.Create)       // 创建
		authorized.PUT("/crops/:id", cropHandler.Update)    // 修改
		authorized.DELETE("/crops/:id", cropHandler.Delete) // 删除

		// 诊断历史
		authorized.GET("/diagnoses", diagnosisHandler.History)       // 历史列表
		authorized.DELETE("/diagnoses/:id", diagnosisHandler.Delete) // 删除记录
	}
}
