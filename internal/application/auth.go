package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Claims carries the signed session payload: the registered claims plus the
// member id the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// AuthService is the identity collaborator: it signs members in and resolves
// bearer tokens back to a user id. Everything downstream treats the resolved
// id as opaque.
type AuthService struct {
	members  driven.MemberStore
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService signing tokens with secret, valid
// for tokenTTL.
func NewAuthService(members driven.MemberStore, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{members: members, secret: secret, tokenTTL: tokenTTL}
}

// SignIn verifies the email/password pair and returns a signed session token
// with its expiry. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, time.Time, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if errors.Is(err, driven.ErrMemberNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("look up member: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: member.ID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken resolves a bearer token to the member id it was issued to.
// Any parse, signature, or expiry failure is ErrUnauthenticated.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrUnauthenticated
	}

	return claims.UserID, nil
}

// Register creates a member account with a bcrypt-hashed password and
// returns it. Used by the admin surface and by seeding.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*model.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := model.Member{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.members.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	return &member, nil
}
