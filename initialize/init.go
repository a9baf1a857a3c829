package initialize

import (
	"fmt"
	"net/http"
	"time"

	"pubboard/app/controllers"
	"pubboard/app/db"
	jwtutil "pubboard/app/jwt"
	"pubboard/app/middleware"
	"pubboard/app/models"
	"pubboard/app/repo"
	"pubboard/app/services"
	"pubboard/app/storage"
	"pubboard/config"
	"pubboard/global"
	"pubboard/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Users  *services.UserService
	Posts  *services.PublicationService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Publication{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.Redis.Addr != "" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}

	// Services
	photos := storage.NewStore(cfg.Photos.Dir)
	userRepo := repo.NewUserRepository(gdb)
	postRepo := repo.NewPublicationRepository(gdb)
	userSvc := services.NewUserService(userRepo, photos)
	postSvc := services.NewPublicationService(postRepo)

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	userCtrl := controllers.NewUserController(userSvc, photos)
	pubCtrl := controllers.NewPublicationController(postSvc, userSvc)
	auth := &middleware.Auth{Signer: signer, Users: userSvc}
	limiter := &middleware.LoginLimiter{Rdb: global.Rdb, Attempts: cfg.Redis.LoginAttempts, Window: time.Duration(cfg.Redis.WindowSec) * time.Second}

	h := router.New(authCtrl, userCtrl, pubCtrl, auth, limiter)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Users: userSvc, Posts: postSvc}, nil
}
