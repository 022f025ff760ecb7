package middleware

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UsuarioKey = "usuario"
)

// Usuario is the current-user fact consumed from the edge proxy.
// Authentication itself happens upstream; this service only reads the
// already-verified identity headers.
type Usuario struct {
	ID  uuid.UUID
	Rol string // "administrador" | "vendedor"
}

// CurrentUser reads X-Usuario-ID / X-Usuario-Rol set by the auth proxy.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader("X-Usuario-ID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Usuario no identificado"))
			return
		}
		rol := c.GetHeader("X-Usuario-Rol")
		if rol == "" {
			rol = "vendedor"
		}
		c.Set(UsuarioKey, &Usuario{ID: id, Rol: rol})
		c.Next()
	}
}

// RequireRol rejects requests whose rol is not in the allowed list.
func RequireRol(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		u := GetUsuario(c)
		if u == nil || !allowed[u.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetUsuario returns the typed current user, or nil when CurrentUser did not
// run on this route.
func GetUsuario(c *gin.Context) *Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	u, _ := v.(*Usuario)
	return u
}
