package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/saamb/saamb-api/docs"
	v1 "github.com/saamb/saamb-api/internal/api/handler/v1"
	"github.com/saamb/saamb-api/internal/api/middleware"
	"github.com/saamb/saamb-api/internal/config"
	"github.com/saamb/saamb-api/internal/repository"
	"github.com/saamb/saamb-api/internal/repository/dao"
	"github.com/saamb/saamb-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	groupHandler := s.initGroupHandler(db)
	userHandler := s.initUserHandler(db)
	wishHandler := s.initWishHandler(db)
	quizHandler := s.initQuizHandler(db)
	paymentHandler := s.initPaymentHandler(db)
	authenticator := s.initAuthenticator(db)
	s.MountHandlers(authenticator, authHandler, groupHandler, userHandler, wishHandler, quizHandler, paymentHandler)

	return s
}

func (s *Server) initAuthenticator(db *gorm.DB) *middleware.Authenticator {
	groups := repository.NewGroupRepository(dao.NewGroupDAO(db))
	tokens := repository.NewTokenRepository(dao.NewTokenDAO(db))

	return middleware.NewAuthenticator(s.Config.API.JWTSigningKey, groups, tokens)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	groups := repository.NewGroupRepository(dao.NewGroupDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	tokens := repository.NewTokenRepository(dao.NewTokenDAO(db))
	svc := service.NewAuthService(groups, users, tokens)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initGroupHandler(db *gorm.DB) *v1.GroupHandler {
	groups := repository.NewGroupRepository(dao.NewGroupDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewGroupService(groups, users)
	userSvc := service.NewUserService(users, groups)
	handler := v1.NewGroupHandler(svc, userSvc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	groups := repository.NewGroupRepository(dao.NewGroupDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(users, groups)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initWishHandler(db *gorm.DB) *v1.WishHandler {
	wishes := repository.NewWishRepository(dao.NewWishDAO(db), dao.NewCartDAO(db))
	svc := service.NewCartService(wishes)
	handler := v1.NewWishHandler(svc)

	return handler
}

func (s *Server) initQuizHandler(db *gorm.DB) *v1.QuizHandler {
	quizzes := repository.NewQuizRepository(dao.NewQuizDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewQuizService(quizzes, users)
	handler := v1.NewQuizHandler(svc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB) *v1.PaymentHandler {
	payments := repository.NewPaymentRepository(dao.NewPaymentInfoDAO(db))
	svc := service.NewPaymentService(payments)
	handler := v1.NewPaymentHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	groupHandler *v1.GroupHandler,
	userHandler *v1.UserHandler,
	wishHandler *v1.WishHandler,
	quizHandler *v1.QuizHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/groups/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyToken())
	{
		authed.POST("/groups/logout", authHandler.HandleLogout)
		authed.GET("/groups", groupHandler.HandleGetGroups)
		authed.GET("/groups/self", groupHandler.HandleGetSelf)
		authed.GET("/groups/users", groupHandler.HandleGetGroupUsers)
		authed.POST("/groups/cartClear", wishHandler.HandleClearCart)
		authed.PATCH("/pay", wishHandler.HandlePay)

		authed.GET("/users", userHandler.HandleGetUser)
		authed.PUT("/users", userHandler.HandleEditUser)

		authed.GET("/wishlist", wishHandler.HandleGetWishlist)
		authed.PATCH("/wishlist", wishHandler.HandlePurchase)

		authed.GET("/payment-info", paymentHandler.HandleGetPaymentInfo)

		authed.GET("/questions", quizHandler.HandleGetQuestions)
		authed.GET("/questions/next", quizHandler.HandleNextQuestion)
		authed.GET("/questions/current", quizHandler.HandleCurrentQuestion)
		authed.POST("/answer", quizHandler.HandleAnswer)
		authed.GET("/userquiz", quizHandler.HandleGetUserQuiz)
		authed.GET("/leaderboard", quizHandler.HandleLeaderboard)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyToken(), authenticator.RequireAdmin())
	{
		admin.POST("/groups", groupHandler.HandleAddGroup)
		admin.PUT("/groups", groupHandler.HandleEditGroup)
		admin.DELETE("/groups", groupHandler.HandleDeleteGroup)

		admin.POST("/users", userHandler.HandleAddUser)
		admin.DELETE("/users", userHandler.HandleDeleteUser)

		admin.POST("/wishlist", wishHandler.HandleAddWish)
		admin.PUT("/wishlist", wishHandler.HandleEditWish)
		admin.DELETE("/wishlist", wishHandler.HandleDeleteWish)

		admin.POST("/questions", quizHandler.HandleAddQuestion)
		admin.PUT("/questions", quizHandler.HandleEditQuestion)
		admin.DELETE("/questions", quizHandler.HandleDeleteQuestion)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Saamb API"
	docs.SwaggerInfo.Description = "Backend for the Saamb wedding app."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
