package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/config"
	"github.com/lshigami/academe/database"
	_ "github.com/lshigami/academe/docs" // Swagger docs - auto-generated
	"github.com/lshigami/academe/internal/controller"
	"github.com/lshigami/academe/internal/controller/middleware"
	"github.com/lshigami/academe/internal/logger"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/lshigami/academe/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Academe Online Course Platform API
// @version 1.0
// @description REST API for courses, lessons, enrollments, quizzes, reviews and discussions.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCategoryRepository,
			repository.NewCourseRepository,
			repository.NewLessonRepository,
			repository.NewQuizRepository,
			repository.NewQuizAttemptRepository,
			repository.NewEnrollmentRepository,
			repository.NewLessonProgressRepository,
			repository.NewReviewRepository,
			repository.NewDiscussionRepository,
			repository.NewCommentRepository,
		),

		// Services layer
		fx.Provide(
			service.NewGoogleVerifier,
			service.NewAuthService,
			service.NewCourseService,
			service.NewLessonService,
			service.NewQuizService,
			service.NewQuizBuilderService,
			service.NewQuizAttemptService,
			service.NewEnrollmentService,
			service.NewReviewService,
			service.NewDiscussionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewCourseController,
			controller.NewQuizController,
			controller.NewEnrollmentController,
			controller.NewCommunityController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	courseCtrl *controller.CourseController,
	quizCtrl *controller.QuizController,
	enrollmentCtrl *controller.EnrollmentController,
	communityCtrl *controller.CommunityController,
) {
	api := router.Group("/api")

	// Public routes
	{
		api.POST("/auth/register", authCtrl.Register)
		api.POST("/auth/login", authCtrl.Login)
		api.POST("/auth/google", authCtrl.GoogleLogin)
		api.GET("/users/:id", authCtrl.GetUser)

		api.GET("/courses", courseCtrl.ListCourses)
		api.GET("/courses/:id", middleware.OptionalAuth(cfg), courseCtrl.GetCourse)
		api.GET("/courses/:id/lessons", middleware.OptionalAuth(cfg), courseCtrl.ListCourseLessons)
		api.GET("/lessons/:id", middleware.OptionalAuth(cfg), courseCtrl.GetLesson)

		api.GET("/reviews", communityCtrl.ListReviews)
		api.GET("/discussions", communityCtrl.ListDiscussions)
		api.GET("/discussions/:id", communityCtrl.GetDiscussion)

		api.GET("/categories", courseCtrl.ListCategories)
		api.GET("/categories/:slug", courseCtrl.GetCategory)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg))
	{
		authed.GET("/auth/me", authCtrl.Me)
		authed.PUT("/auth/profile", authCtrl.UpdateProfile)
		authed.POST("/auth/change-password", authCtrl.ChangePassword)

		authed.POST("/courses", courseCtrl.CreateCourse)
		authed.PUT("/courses/:id", courseCtrl.UpdateCourse)
		authed.DELETE("/courses/:id", courseCtrl.DeleteCourse)
		authed.GET("/courses/:id/analytics", courseCtrl.Analytics)
		authed.POST("/courses/:id/lessons", courseCtrl.CreateLesson)
		authed.PUT("/lessons/:id", courseCtrl.UpdateLesson)
		authed.DELETE("/lessons/:id", courseCtrl.DeleteLesson)
		authed.POST("/categories", courseCtrl.CreateCategory)

		authed.GET("/quizzes", quizCtrl.ListQuizzes)
		authed.GET("/quizzes/:id", quizCtrl.GetQuiz)
		authed.GET("/lessons/:id/quiz", quizCtrl.GetLessonQuiz)
		authed.POST("/lessons/:id/quiz", quizCtrl.CreateQuiz)
		authed.POST("/quizzes/:id/start_attempt", quizCtrl.StartAttempt)
		authed.POST("/quizzes/:id/submit", quizCtrl.SubmitQuiz)
		authed.GET("/attempts", quizCtrl.ListAttempts)
		authed.GET("/attempts/:id", quizCtrl.GetAttempt)

		authed.POST("/enrollments", enrollmentCtrl.Enroll)
		authed.GET("/enrollments", enrollmentCtrl.ListEnrollments)
		authed.GET("/enrollments/:id", enrollmentCtrl.GetEnrollment)
		authed.POST("/enrollments/:id/complete_lesson", enrollmentCtrl.CompleteLesson)
		authed.GET("/lesson-progress", enrollmentCtrl.ListLessonProgress)

		authed.POST("/reviews", communityCtrl.CreateReview)
		authed.PUT("/reviews/:id", communityCtrl.UpdateReview)
		authed.DELETE("/reviews/:id", communityCtrl.DeleteReview)

		authed.POST("/discussions", communityCtrl.CreateDiscussion)
		authed.PUT("/discussions/:id", communityCtrl.UpdateDiscussion)
		authed.DELETE("/discussions/:id", communityCtrl.DeleteDiscussion)
		authed.POST("/comments", communityCtrl.CreateComment)
		authed.PUT("/comments/:id", communityCtrl.UpdateComment)
		authed.DELETE("/comments/:id", communityCtrl.DeleteComment)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Academe API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizAttempt{},
		&model.StudentAnswer{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Review{},
		&model.Discussion{},
		&model.Comment{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
