package mysqlmanager

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/golang-jwt/jwt/v5"
)

// authenticate requires a valid bearer token on every action except
// healthz when a JWT secret is configured.
func (a *App) authenticate(next http.Handler) http.Handler {
	if a.config.AuthJWTSecret == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(a.config.ActionParam) == constants.ActionHealthz {
			next.ServeHTTP(w, r)
			return
		}

		if err := a.validateBearer(r.Header.Get("Authorization")); err != nil {
			a.logger.Warn("unauthorized request",
				"id", GetRequestID(r.Context()),
				"error", err.Error(),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="mysqlmanager"`)
			api.RespondWithStatusCode(w, r, api.Error("unauthorized: "+err.Error()), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validateBearer checks an "Authorization: Bearer <jwt>" header value.
func (a *App) validateBearer(header string) error {
	scheme, tokenString, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
		return errors.New("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimSpace(tokenString), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.AuthJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}

	if a.config.AuthJWTIssuer != "" {
		issuer, _ := token.Claims.GetIssuer()
		if issuer != a.config.AuthJWTIssuer {
			return fmt.Errorf("invalid issuer: %q", issuer)
		}
	}
	return nil
}
