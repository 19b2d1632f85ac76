package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job_manager_fields/cache"
	"job_manager_fields/config"
	"job_manager_fields/hook"
	"job_manager_fields/jobmanager"
	"job_manager_fields/model"
	"job_manager_fields/plugin"
	"job_manager_fields/repository"
	"job_manager_fields/service"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Application struct {
	config      *config.GlobalConfig
	db          *gorm.DB
	metaCache   *cache.MetaCache
	metaService *service.MetaService
	hooks       *hook.Registry
	form        *jobmanager.Form
	admin       *jobmanager.Admin
}

// NewApplication 创建新的应用程序实例
func NewApplication(cfg *config.GlobalConfig) *Application {
	return &Application{config: cfg}
}

// InitLogger 按配置设置日志级别和格式
func (app *Application) InitLogger() {
	level, err := log.ParseLevel(app.config.Log.Level)
	if err != nil {
		log.Warnf("无效的日志级别 %q，使用 info", app.config.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if app.config.Log.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// InitServices 初始化所有服务
func (app *Application) InitServices() error {
	log.Info("========================================")
	log.Info("   初始化应用程序服务")
	log.Info("========================================")

	db, err := service.OpenDB(app.config.DB)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	app.db = db

	// 元数据缓存可选
	var metaCache service.MetaCache
	if app.config.Redis.URL != "" {
		c, err := cache.New(app.config.Redis.URL, app.config.Redis.TTL)
		if err != nil {
			log.Warnf("Redis不可用，元数据缓存已禁用: %v", err)
		} else {
			app.metaCache = c
			metaCache = c
			log.Info("✓ Redis 元数据缓存已启用")
		}
	}

	jobRepo := repository.NewJobListingRepository(app.db)
	metaRepo := repository.NewPostMetaRepository(app.db)
	app.metaService = service.NewMetaService(metaRepo, metaCache)

	env, err := plugin.ResolveEnvironment(app.config.Plugin)
	if err != nil {
		return fmt.Errorf("插件路径解析失败: %w", err)
	}

	// 扩展点与扩展：扩展在 init 时构造
	app.hooks = hook.NewRegistry()
	plugin.Register(app.hooks, env, app.metaService)

	app.form = jobmanager.NewForm(app.hooks, jobRepo)
	app.admin = jobmanager.NewAdmin(app.hooks, app.metaService)

	log.Info("✓ 所有服务初始化完成")
	return nil
}

// Start 触发 init 动作，加载所有扩展
func (app *Application) Start() error {
	if err := app.hooks.DoInit(); err != nil {
		return fmt.Errorf("init 动作执行失败: %w", err)
	}

	for name, n := range app.hooks.Counts() {
		log.Debugf("扩展点 %s: %d 个回调", name, n)
	}

	formFields := app.form.Fields()
	log.Infof("✓ 提交表单字段: job=%d, company=%d",
		len(formFields[model.GroupJob]), len(formFields[model.GroupCompany]))
	log.Infof("✓ 后台编辑字段: %d", len(app.admin.Fields()))
	log.Info("✓ 应用程序已启动")
	return nil
}

// Stop 停止应用程序
func (app *Application) Stop() error {
	log.Info("停止应用程序...")

	if app.metaCache != nil {
		if err := app.metaCache.Close(); err != nil {
			log.Warnf("关闭Redis连接失败: %v", err)
		}
	}

	if app.db != nil {
		log.Info("关闭数据库连接...")
		if sqlDB, err := app.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	log.Info("✓ 应用程序已安全停止")
	return nil
}

// waitForShutdown 等待关闭信号
func (app *Application) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigChan
	log.Infof("接收到信号: %v，开始优雅关闭...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("✓ 应用程序优雅关闭完成")
	case <-ctx.Done():
		log.Warn("⚠️ 关闭超时，强制退出")
	}
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	app := NewApplication(cfg)
	app.InitLogger()

	if err := app.InitServices(); err != nil {
		log.Fatalf("❌ 服务初始化失败: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("❌ 应用程序启动失败: %v", err)
	}

	app.waitForShutdown()
}
