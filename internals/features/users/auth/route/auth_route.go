package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "praktikum_backend/internals/features/users/auth/controller"
	"praktikum_backend/internals/middlewares"
	authMw "praktikum_backend/internals/middlewares/auth"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	r.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	r.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	r.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
	r.Post("/refresh-token", ctrl.RefreshToken)

	// Butuh token valid
	protected := r.Group("", authMw.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
}
