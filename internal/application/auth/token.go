// Package auth emite los tokens de operador que exigen las rutas de escritura.
package auth

import (
	"strings"

	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenIssuer firma tokens para operadores del catálogo.
type TokenIssuer struct {
	cfg JWTConfig
}

// NewTokenIssuer construye el emisor.
func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue firma un token para subject con el rol dado. Solo se emiten roles de escritura:
// la lectura es pública y no necesita token.
func (t *TokenIssuer) Issue(subject, role string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", domain.Invalid("El subject es requerido")
	}
	if !entity.IsWriteRole(role) {
		return "", domain.Invalid("Rol '%s' no válido (admin o editor)", role)
	}
	if t.cfg.Secret == "" {
		return "", domain.Invalid("JWT_SECRET no está configurado")
	}
	exp := t.cfg.ExpMinutes
	if exp <= 0 {
		exp = 30
	}
	return jwt.Generate(t.cfg.Secret, subject, role, t.cfg.Issuer, exp)
}
