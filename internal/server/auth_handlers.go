package server

import (
	"fmt"
	"time"

	"recipebox/internal/cache"
	"recipebox/internal/models"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "recipebox-api"
	tokenAudience = "recipebox-client"
	tokenTTL      = 7 * 24 * time.Hour
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by signup and login.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "Signup request"
// @Success 201 {object} authResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.accounts.Signup(ctx, service.SignupInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return mapServiceError(c, err)
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.accounts.Login(ctx, service.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return mapServiceError(c, err)
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout
// @Summary Revoke the current token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	exp, _ := c.Locals("tokenExp").(time.Time)

	if jti != "" && s.redis != nil {
		ttl := time.Until(exp)
		if ttl <= 0 {
			ttl = tokenTTL
		}
		if err := s.redis.Set(c.UserContext(), cache.TokenBlacklistKey(jti), currentUsername(c), ttl).Err(); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// CheckUsername handles GET /api/users/check/:username
// @Summary Check whether a username is taken
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{exists=bool}
// @Router /users/check/{username} [get]
func (s *Server) CheckUsername(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	exists, err := s.accounts.UsernameExists(ctx, c.Params("username"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// generateToken creates a JWT for username.
func (s *Server) generateToken(username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so tokens can be revoked one by one.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
