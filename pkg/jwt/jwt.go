package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims carries the actor identity the core consumes: id, role, branch
// scope and the warehouse-keeper flag, plus a token version for single
// session enforcement.
type Claims struct {
	UserID            uint   `json:"user_id"`
	Email             string `json:"email"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	BranchID          *uint  `json:"branch_id,omitempty"`
	IsWarehouseKeeper bool   `json:"is_warehouse_keeper"`
	TokenVersion      string `json:"token_version"`
	jwt.RegisteredClaims
}

func GetSecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-super-secret-key-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken creates a new JWT token for a user.
func GenerateToken(userID uint, email, username, role string, branchID *uint, isWarehouseKeeper bool, tokenVersion string) (string, error) {
	claims := &Claims{
		UserID:            userID,
		Email:             email,
		Username:          username,
		Role:              role,
		BranchID:          branchID,
		IsWarehouseKeeper: isWarehouseKeeper,
		TokenVersion:      tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "goldshop-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetSecretKey())
}

// ValidateToken parses and validates a JWT token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
