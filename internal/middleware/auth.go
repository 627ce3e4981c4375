package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig contém a configuração do middleware de autenticação.
// Quando TokenAPIHash está definido, o token recebido é verificado
// contra o hash bcrypt; caso contrário compara com TokenAPI em tempo
// constante.
type AuthConfig struct {
	TokenAPI     string
	TokenAPIHash string
}

// BearerAuth retorna um middleware que valida o token Bearer
func BearerAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "header Authorization ausente",
			})
			return
		}

		// Extrai o token do formato "Bearer {token}"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "formato inválido, esperado: Bearer {token}",
			})
			return
		}

		if !validToken(parts[1], cfg) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "token inválido",
			})
			return
		}

		c.Next()
	}
}

func validToken(token string, cfg AuthConfig) bool {
	if cfg.TokenAPIHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.TokenAPIHash), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(cfg.TokenAPI)) == 1
}
