package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haoyun/tianji/internal/api"
	"github.com/haoyun/tianji/internal/api/controller"
	"github.com/haoyun/tianji/internal/cache"
	"github.com/haoyun/tianji/internal/config"
	"github.com/haoyun/tianji/internal/infrastructure/llm"
	"github.com/haoyun/tianji/internal/service"
)

// @title           天机命理 API
// @version         1.0
// @description     基于 Go + Gin + DeepSeek 的八字排盘与 AI 命理报告服务
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 缓存管理接口请输入 "Bearer <token>" (注意 Bearer 和 token 之间有空格)

func main() {
	// 1. 初始化 Logger
	// 使用 JSONHandler 可以让日志以 JSON 格式输出，方便解析
	// AddSource: true 会在日志里显示文件名和行号
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))

	// 设置为全局默认 logger
	slog.SetDefault(logger)

	slog.Info("天机系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	// 缓存后端在这里一次性选定，整个进程复用同一个实例
	store := cache.New(cache.Config{
		Backend:         conf.Cache.Backend,
		Dir:             conf.Cache.Dir,
		MaxEntries:      conf.Cache.MaxEntries,
		CleanupInterval: time.Duration(conf.Cache.CleanupIntervalMinutes) * time.Minute,
	}, logger)

	provider, err := buildProvider(conf, logger)
	if err != nil {
		log.Fatalf("模型服务初始化失败: %v", err)
	}

	if conf.Server.Port != ":8080" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	svc := service.NewReadingService(provider, store, logger, conf.Cache.TTLHours)
	readingController := controller.NewReadingController(svc)
	cacheController := controller.NewCacheController(store)

	r := gin.Default()
	api.RegisterRoutes(r, conf.JWT.Secret, readingController, cacheController)

	// 4. Server Start
	// 监听退出信号做优雅关闭，保证缓存的后台清扫定时器被停掉
	srv := &http.Server{Addr: conf.Server.Port, Handler: r}

	go func() {
		slog.Info("天机 Web Server 启动中", "port", conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("服务器启动失败", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("收到退出信号，正在关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("服务器关闭异常", "error", err)
	}
	store.Close()
}

// buildProvider 按配置组装模型服务：主力 + 备用降级。
// ai.model 为 auto 时按已配置的 Key 自动挑选，Gemini 优先。
func buildProvider(conf *config.Config, logger *slog.Logger) (llm.Provider, error) {
	var deepseek, gemini llm.Provider
	if conf.AI.DeepSeek.APIKey != "" {
		deepseek = llm.NewDeepSeekClient(conf.AI.DeepSeek.APIKey, conf.AI.DeepSeek.BaseURL,
			conf.AI.DeepSeek.Model, conf.AI.MaxTokens)
	}
	if conf.AI.Gemini.APIKey != "" {
		gemini = llm.NewGeminiClient(conf.AI.Gemini.APIKey, conf.AI.Gemini.BaseURL,
			conf.AI.Gemini.Model, conf.AI.MaxTokens)
	}

	var primary, fallback llm.Provider
	switch conf.AI.Model {
	case "deepseek":
		primary, fallback = deepseek, gemini
	case "gemini":
		primary, fallback = gemini, deepseek
	default: // auto
		if gemini != nil {
			primary, fallback = gemini, deepseek
		} else {
			primary, fallback = deepseek, nil
		}
	}
	if primary == nil {
		return nil, llm.ErrNoProvider
	}

	logger.Info("模型服务就绪", "primary", primary.Name(), "has_fallback", fallback != nil)
	return llm.NewSelector(primary, fallback, logger), nil
}
