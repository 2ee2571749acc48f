package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"music-contest/domain/dto"
	"music-contest/domain/model"
)

const (
	claimsKey = "user_claims"
)

// Auth decodes the pre-authenticated bearer token into UserClaims and puts
// them on the context. Identity is issued upstream; this middleware only
// verifies the signature and expiry.
func Auth(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			unauthorized(ctx, "missing bearer token")
			return
		}
		parts := strings.Split(authorization, "Bearer ")
		if len(parts) != 2 {
			unauthorized(ctx, "malformed authorization header")
			return
		}

		claims := &model.UserClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
			}
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			unauthorized(ctx, "invalid token")
			return
		}

		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

// AdminOnly gates the contest lifecycle endpoints on the admin claim.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := Claims(ctx)
		if claims == nil || !claims.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.RejectionResponse{
				Kind:   string(model.RejectNotAuthorized),
				Reason: "admin privileges required",
			})
			return
		}
		ctx.Next()
	}
}

// Claims returns the decoded caller identity, nil outside the auth group.
func Claims(ctx *gin.Context) *model.UserClaims {
	value, ok := ctx.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*model.UserClaims)
	return claims
}

func unauthorized(ctx *gin.Context, reason string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.RejectionResponse{
		Kind:   string(model.RejectNotAuthorized),
		Reason: reason,
	})
}
