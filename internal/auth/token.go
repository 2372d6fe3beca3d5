package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// TokenService issues and verifies signed session tokens. Validity is
// purely time- and signature-based; nothing is stored server-side.
type TokenService struct {
	secret []byte
	expiry time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenService builds a service signing with the shared secret and
// the configured expiry in days.
func NewTokenService(secret string, expiryDays int, logger *zap.Logger) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
		logger: logger,
		now:    time.Now,
	}
}

// Claims describes the session token payload.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token asserting the user's identity and role.
func (ts *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ts.expiry)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the asserted identity.
// The precise rejection reason is distinguished in the log only; clients
// see the generic expired/invalid messages.
func (ts *TokenService) Verify(tokenStr string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			ts.logWarn("expired", err)
			return nil, util.NewUnauthorized("Token has expired.")
		case errors.Is(err, jwt.ErrTokenMalformed):
			ts.logWarn("malformed", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			ts.logWarn("invalid signature", err)
		default:
			ts.logWarn("invalid", err)
		}
		return nil, util.NewUnauthorized("Invalid token.")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		ts.logWarn("invalid claims", nil)
		return nil, util.NewUnauthorized("Invalid token.")
	}
	if claims.UserID == "" {
		ts.logWarn("missing user_id claim", nil)
		return nil, util.NewUnauthorized("Invalid token payload.")
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (ts *TokenService) logWarn(reason string, err error) {
	if ts.logger == nil {
		return
	}
	ts.logger.Warn("token rejected", zap.String("reason", reason), zap.Error(err))
}
