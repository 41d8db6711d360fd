package integration

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hourline.app/server/internal/model"
)

const (
	stateIssuer = "hourline"
	StateTTL    = 10 * time.Minute
)

var ErrInvalidState = errors.New("invalid or expired oauth state")

// StateClaims bind an OAuth round trip to the workspace and user that started it.
type StateClaims struct {
	WorkspaceID int64          `json:"wid,string"`
	UserID      int64          `json:"uid,string"`
	Provider    model.Provider `json:"prv"`
	jwt.RegisteredClaims
}

// StateSigner issues and verifies the HS256 `state` parameter of provider redirects.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{
		secret: []byte(secret),
		ttl:    StateTTL,
		now:    time.Now,
	}
}

func (s *StateSigner) Sign(workspaceID, userID int64, provider model.Provider) (string, error) {
	now := s.now()
	claims := StateClaims{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Provider:    provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    stateIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, expiry and that the state was issued for provider.
func (s *StateSigner) Verify(state string, provider model.Provider) (*StateClaims, error) {
	claims := &StateClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if claims.Provider != provider {
		return nil, fmt.Errorf("%w: issued for %s", ErrInvalidState, claims.Provider)
	}
	return claims, nil
}
