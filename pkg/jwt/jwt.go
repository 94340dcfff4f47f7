package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

const issuer = "tortilleria-ventas"

// Claims identifies the employee operating a register.
type Claims struct {
	EmployeeID uint   `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	BranchID   *uint  `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for an employee, valid for ttl.
func GenerateToken(secret []byte, employeeID uint, name, role string, branchID *uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		EmployeeID: employeeID,
		Name:       name,
		Role:       role,
		BranchID:   branchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token signed with secret.
func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
