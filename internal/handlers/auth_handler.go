package handlers

import (
	"errors"
	"log"
	"time"

	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the login, registration, and logout pages.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the public authentication routes. These stay
// outside the session guard.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/register", h.HandleRegister)
	router.Get("/logout", h.HandleLogout)
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// LoginForm represents the login form fields.
type LoginForm struct {
	Username   string `form:"username"`
	Password   string `form:"password"`
	RememberMe string `form:"remember-me"`
}

// HandleLogin authenticates the user and establishes a session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Error": "Invalid form submission",
		})
	}

	user, err := h.authService.Login(form.Username, form.Password)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			return c.Render("login", fiber.Map{"Error": authErr.Message})
		}
		return err
	}

	remember := form.RememberMe != ""
	if err := h.startSession(c, user, remember); err != nil {
		return err
	}
	return c.Redirect("/")
}

// HandleRegisterPage renders the registration form.
func (h *AuthHandler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{})
}

// RegisterForm represents the registration form fields.
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm-password"`
}

// HandleRegister creates the account and logs the new user straight in;
// there is no email verification step.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Error": "Invalid form submission",
		})
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return c.Render("register", fiber.Map{"Error": validationErr.Message})
		}
		return err
	}

	if err := h.startSession(c, user, false); err != nil {
		return err
	}
	return c.Redirect("/")
}

// HandleLogout clears the session cookie unconditionally and redirects to
// the login page. Safe to hit without a session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Redirect("/login")
}

// startSession issues a signed token and sets the session cookie. Without
// remember-me the cookie carries no expiry and lasts the browser session.
func (h *AuthHandler) startSession(c *fiber.Ctx, user *models.User, remember bool) error {
	token, ttl, err := h.authService.IssueToken(user, remember)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	}
	if remember {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.Cookie(cookie)
	return nil
}
