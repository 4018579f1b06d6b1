package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	v1 "vezbudget/internal/api/v1"
	"vezbudget/internal/config"
	"vezbudget/internal/service/scenario"
	memstore "vezbudget/internal/service/store"
	dbstore "vezbudget/internal/store"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	db       *dbstore.Store
	mem      *memstore.MemoryStore
	versions *scenario.Manager
	v1       *v1.Handler
}

// NewServer 创建服务器：初始化持久层、装载活动版本到内存、挂载 API
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "vezbudget.db")

	db, err := dbstore.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	mem := memstore.NewMemoryStore(cfg.Business.ReportingCurrency)
	versions := scenario.NewManager(db, mem)
	if err := versions.Bootstrap(cfg.Business.SeedDefaults, cfg.Business.BaseYear); err != nil {
		log.Fatalf("Failed to load budget data: %v", err)
	}

	s := &Server{
		router:   gin.Default(),
		db:       db,
		mem:      mem,
		versions: versions,
		v1:       v1.NewHandler(mem, db, versions, cfg.Business.BaseYear),
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：非 API 请求代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭持久层连接
func (s *Server) Close() error {
	return s.db.Close()
}

// GetStore 获取持久层存储（用于测试）
func (s *Server) GetStore() *dbstore.Store {
	return s.db
}
