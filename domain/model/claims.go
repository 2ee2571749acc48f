package model

import "github.com/golang-jwt/jwt"

// UserClaims is the pre-authenticated caller identity supplied by the command
// layer. The core does not authenticate it, it only decodes it.
type UserClaims struct {
	UserName string `json:"user_name"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.StandardClaims
}
