package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"turfbook/config"
	"turfbook/models"
)

const actorKey = "actor"

// ActorMiddleware resolves the request-scoped actor the engine operates as.
// A bearer token matching the static admin token grants the admin role; a
// valid JWT carries its own role claim; anything else is an anonymous
// customer. The engine itself never reads ambient auth state - handlers pass
// the resolved actor into every call.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{Role: models.RoleCustomer}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			if config.AppConfig.AdminToken != "" && tokenString == config.AppConfig.AdminToken {
				actor = models.Actor{ID: "admin", Role: models.RoleAdmin}
			} else if parsed := parseActorToken(tokenString); parsed != nil {
				actor = *parsed
			}
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor returns the actor resolved for this request.
func GetActor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{Role: models.RoleCustomer}
}

func parseActorToken(tokenString string) *models.Actor {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	switch models.Role(role) {
	case models.RoleAdmin, models.RoleAIAgent, models.RoleCustomer:
		return &models.Actor{ID: sub, Role: models.Role(role)}
	}
	return nil
}
