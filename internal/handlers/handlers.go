package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"droneport/internal/config"
	"droneport/internal/middleware"
	"droneport/internal/models"
	"droneport/internal/queue"
	"droneport/internal/repository"
	"droneport/internal/service"
	"droneport/internal/session"
	"droneport/internal/storage"
)

type AuthService interface {
	SignUp(ctx context.Context, input service.SignUpInput) (service.AuthResult, error)
	Login(ctx context.Context, name, password string) (service.AuthResult, error)
	Logout(ctx context.Context, token string)
}

type UploadService interface {
	Upload(ctx context.Context, input service.UploadInput) (models.Upload, error)
	RecentUploads(ctx context.Context, userName string, limit int) ([]models.Upload, error)
}

type TaskService interface {
	SubmitDrone(ctx context.Context) (models.Task, error)
	Status(ctx context.Context, taskID string) (models.TaskStatus, error)
}

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	authService   AuthService
	uploadService UploadService
	taskService   TaskService
	sessions      middleware.SessionReader
	db            *pgxpool.Pool
	cache         *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, files *storage.DiskStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	sessionStore := session.NewStore(cache, cfg.Session.TTL)
	taskQueue := queue.NewRedisQueue(cache, cfg.Tasks.Stream, cfg.Tasks.StatusTTL)

	tasks := service.NewTaskService(taskQueue, log)
	auth := service.NewAuthService(userRepo, sessionStore, log)
	upload := service.NewUploadService(uploadRepo, files, tasks, cfg.Upload.MaxBytes, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		authService:   auth,
		uploadService: upload,
		taskService:   tasks,
		sessions:      sessionStore,
		db:            db,
		cache:         cache,
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.Use(middleware.Session(h.cfg.Session.CookieName, h.sessions))

	engine.GET("/", h.LoginView)
	engine.GET("/signup", h.SignupView)
	engine.POST("/signup", h.Signup)
	engine.POST("/login", h.Login)
	engine.GET("/logout", h.Logout)

	engine.POST("/upload", h.Upload)
	engine.Static("/uploads", h.cfg.Upload.Dir)

	engine.POST("/start-drone", h.StartDrone)
	engine.GET("/tasks/:id", h.TaskStatus)

	engine.GET("/healthz", h.Health)
}
