package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"teamup/config"
	"teamup/models"
	"teamup/repository"
	"teamup/utils"
)

// IdentityClaims is the token shape the identity provider issues. The subject
// is the opaque user id.
type IdentityClaims struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func parseToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return &models.Identity{
		UserID:      claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		Permissions: claims.Permissions,
	}, nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

// Protected rejects requests without a valid bearer credential and stores the
// verified identity in request locals.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authorization required")
		}

		identity, err := parseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid or expired token")
		}

		c.Locals("identity", identity)
		return c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer credential is present
// and continues anonymously otherwise. Used by public endpoints that show
// extra fields to the owner.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if identity, err := parseToken(token); err == nil {
				c.Locals("identity", identity)
			}
		}
		return c.Next()
	}
}

// RequireRegistered gates endpoints on a completed registration profile. Must
// run after Protected.
func RequireRegistered(profiles repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := c.Locals("identity").(*models.Identity)

		profile, err := profiles.GetByUserID(c.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeNotRegistered, "Complete your registration first")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to check registration")
		}

		c.Locals("profile", profile)
		return c.Next()
	}
}

// Identity returns the verified identity for the request, or nil for an
// anonymous caller.
func Identity(c *fiber.Ctx) *models.Identity {
	if v, ok := c.Locals("identity").(*models.Identity); ok {
		return v
	}
	return nil
}

// Profile returns the registered profile resolved by RequireRegistered.
func Profile(c *fiber.Ctx) *models.Profile {
	if v, ok := c.Locals("profile").(*models.Profile); ok {
		return v
	}
	return nil
}
