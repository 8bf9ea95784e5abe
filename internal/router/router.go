package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bloghub/internal/auth"
	"bloghub/internal/config"
	"bloghub/internal/handler"
	"bloghub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)
	api.GET("/posts/:id/comments", commentHandler.ListComments)
	api.GET("/comments/:id", commentHandler.GetComment)
	api.GET("/comments/:id/replies", commentHandler.ListReplies)

	// Secured routes: echo-jwt rejects bad or missing signatures before any
	// handler runs, then the guard resolves the token to a live user.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
		}),
		guard.RequireUser(),
	)

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/password", authHandler.ChangePassword)

	secured.PUT("/users/me", userHandler.UpdateMe)
	secured.DELETE("/users/me", userHandler.DeleteMe)

	secured.POST("/posts", postHandler.CreatePost)
	secured.PUT("/posts/:id", postHandler.UpdatePost)
	secured.DELETE("/posts/:id", postHandler.DeletePost)

	secured.POST("/posts/:id/comments", commentHandler.CreateComment)
	secured.PUT("/comments/:id", commentHandler.UpdateComment)
	secured.DELETE("/comments/:id", commentHandler.DeleteComment)

	secured.POST("/posts/:id/like", likeHandler.TogglePostLike)
	secured.POST("/comments/:id/like", likeHandler.ToggleCommentLike)

	// Admin routes
	admin := secured.Group("/admin", guard.RequireRole(model.RoleAdmin))
	admin.GET("/users", userHandler.ListUsers)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
