package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/application/auth"
	"github.com/WojciechM98/Team-Management-System/internal/application/comment"
	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
	"github.com/WojciechM98/Team-Management-System/internal/application/task"
	"github.com/WojciechM98/Team-Management-System/internal/application/user"
	"github.com/WojciechM98/Team-Management-System/internal/config"
	infraauth "github.com/WojciechM98/Team-Management-System/internal/infrastructure/auth"
	httprouter "github.com/WojciechM98/Team-Management-System/internal/infrastructure/http"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/handlers"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/db"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/persistence/postgres"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/queue"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/security"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	queries := db.New(pool)
	userRepo := postgres.NewUserRepository(queries, pool)
	taskRepo := postgres.NewTaskRepository(queries, pool)
	commentRepo := postgres.NewCommentRepository(queries)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	}, cfg.Argon2.MaxConcurrent)

	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, nil)
	accessTTL := time.Duration(cfg.JWT.AccessExpiry) * time.Minute

	registerUC := auth.NewRegisterUser(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, accessTTL)
	changePasswordUC := auth.NewChangePassword(userRepo, hasher)
	updateUserUC := user.NewUpdateUser(userRepo)
	deleteUserUC := user.NewDeleteUser(userRepo)
	createTaskUC := task.NewCreateTask(taskRepo)
	updateTaskUC := task.NewUpdateTask(taskRepo)
	deleteTaskUC := task.NewDeleteTask(taskRepo)
	assignUserUC := task.NewAssignUser(taskRepo, userRepo, taskEnqueuer)
	unassignUserUC := task.NewUnassignUser(taskRepo)
	addCommentUC := comment.NewAddComment(taskRepo, commentRepo, taskEnqueuer)
	updateCommentUC := comment.NewUpdateComment(commentRepo)
	deleteCommentUC := comment.NewDeleteComment(commentRepo)

	var emitter ports.WebhookEmitter
	if cfg.Audit.WebhookURL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Audit.WebhookURL)
	}

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.RateLimitPerIP, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.DevMode))
	corsMiddleware := middleware.CORS(cfg.Server.CORSOrigins, nil, nil)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, changePasswordUC, emitter, log)
	usersHandler := handlers.NewUsersHandler(userRepo, updateUserUC, deleteUserUC, emitter, log)
	tasksHandler := handlers.NewTasksHandler(taskRepo, commentRepo, createTaskUC, updateTaskUC, deleteTaskUC, assignUserUC, unassignUserUC, emitter, log)
	commentsHandler := handlers.NewCommentsHandler(commentRepo, addCommentUC, updateCommentUC, deleteCommentUC, log)
	requireJWT := middleware.NewAuthValidator(issuer, userRepo).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		HealthHandler:   healthHandler,
		UsersHandler:    usersHandler,
		TasksHandler:    tasksHandler,
		CommentsHandler: commentsHandler,
		RequireJWT:      requireJWT,
		Log:             log,
		Secure:          secureMiddleware,
		CORS:            corsMiddleware,
		IPRateLimit:     ipLimit,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
