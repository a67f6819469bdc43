package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/validation"
)

const (
	msgInvalidCredentials = "Credenciais inválidas"
	msgTokenMissing       = "Authentication token not provided."
	msgTokenInvalid       = "Invalid token."
)

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (string, error)
	IssueToken(userID uuid.UUID) (string, *AccessClaims, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	Logout(ctx context.Context) error
	GetAccessTTL() time.Duration
}

// LoginInput identifies the user by username or email.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessClaims carries the user id both as "id" and as the standard subject.
type AccessClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	denylist     TokenDenylist
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	denylist TokenDenylist,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		denylist:     denylist,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	// Stored identifiers went through the same sanitization at signup.
	username := validation.Sanitize(in.Username)
	email := validation.Sanitize(in.Email)
	password := strings.TrimSpace(in.Password)
	if (username == "" && email == "") || password == "" {
		return "", apierr.Unauthorized(msgInvalidCredentials)
	}
	user, err := as.userRepo.GetByLogin(dbctx.New(ctx), username, email)
	if err != nil {
		as.log.Error("Login lookup failed", "error", err)
		return "", apierr.Internal(err)
	}
	if user == nil {
		return "", apierr.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierr.Unauthorized(msgInvalidCredentials)
	}
	token, _, err := as.IssueToken(user.ID)
	if err != nil {
		as.log.Error("Token signing failed", "error", err, "user_id", user.ID)
		return "", apierr.Internal(err)
	}
	as.log.Info("User logged in", "user_id", user.ID)
	return token, nil
}

func (as *authService) IssueToken(userID uuid.UUID) (string, *AccessClaims, error) {
	now := as.now()
	claims := &AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// SetContextFromToken verifies tokenString and attaches the caller identity.
// Missing tokens are Unauthorized; bad, expired or revoked ones are Forbidden.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(msgTokenMissing)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		as.log.Debug("Token rejected", "error", err)
		return ctx, apierr.Forbidden(msgTokenInvalid)
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Forbidden(msgTokenInvalid)
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return ctx, apierr.Forbidden(msgTokenInvalid)
	}
	if claims.ID != "" && as.denylist != nil {
		revoked, err := as.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			as.log.Error("Token denylist lookup failed", "error", err)
			return ctx, apierr.Internal(err)
		}
		if revoked {
			return ctx, apierr.Forbidden(msgTokenInvalid)
		}
	}
	rd := &ctxutil.RequestData{
		UserID:      userID,
		Subject:     subject,
		TokenString: tokenString,
		TokenID:     claims.ID,
	}
	if claims.ExpiresAt != nil {
		rd.ExpiresAt = claims.ExpiresAt.Time
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		as.log.Warn("No request data found in context")
		return apierr.Unauthorized(msgTokenMissing)
	}
	if rd.TokenID == "" {
		return apierr.BadRequest("Token cannot be revoked.")
	}
	if as.denylist == nil {
		return apierr.Internal(errors.New("token denylist not configured"))
	}
	expiresAt := rd.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = as.now().Add(as.accessTTL)
	}
	if err := as.denylist.Revoke(ctx, rd.TokenID, rd.UserID, expiresAt); err != nil {
		as.log.Error("Token revocation failed", "error", err, "user_id", rd.UserID)
		return apierr.Internal(err)
	}
	as.log.Info("User logged out", "user_id", rd.UserID)
	return nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
