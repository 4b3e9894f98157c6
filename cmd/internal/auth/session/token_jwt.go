package session

import (
	"errors"
	"time"

	"chonggak/cmd/member"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the identity envelope carried by an access token.
type AccessClaims struct {
	JTI       string
	SubjectID string
	Role      member.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// RemainingLifetime returns max(0, ExpiresAt-now). It is the TTL used when
// blacklisting the token at logout, so an already-expired token yields zero
// and never enters the blacklist.
func (c AccessClaims) RemainingLifetime(now time.Time) time.Duration {
	if r := c.ExpiresAt.Sub(now); r > 0 {
		return r
	}
	return 0
}

// AccessTokenCodec issues and verifies short-lived access tokens.
//
// Verification is stateless: validity is signature + expiry only. Blacklist
// checks are layered on top by the Service.
type AccessTokenCodec interface {
	Issue(subjectID string, role member.Role, now time.Time) (token string, claims AccessClaims, err error)
	Verify(token string, now time.Time) (AccessClaims, error)

	// VerifyIgnoringExpiry still rejects bad signatures and malformed
	// structure, but admits expired tokens so their remaining lifetime can be
	// computed at logout.
	VerifyIgnoringExpiry(token string, now time.Time) (AccessClaims, error)
}

type hmacCodec struct {
	issuer string
	ttl    time.Duration
	leeway time.Duration
	key    []byte
}

// NewHMACCodec builds an AccessTokenCodec signing HS256 JWTs with the
// configured secret. Claims: jti (random UUID), sub, role, iss, iat, exp.
func NewHMACCodec(cfg Config) (AccessTokenCodec, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, ErrConfig
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, ErrConfig
	}

	return &hmacCodec{
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTokenTTL,
		leeway: cfg.ClockSkew,
		key:    []byte(cfg.JWTSecret),
	}, nil
}

// jwtClaims is the wire shape: registered claims plus the role private claim.
type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *hmacCodec) Issue(subjectID string, role member.Role, now time.Time) (string, AccessClaims, error) {
	jti := uuid.NewString()
	exp := now.Add(c.ttl)

	wire := jwtClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subjectID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.key)
	if err != nil {
		return "", AccessClaims{}, err
	}

	return signed, AccessClaims{
		JTI:       jti,
		SubjectID: subjectID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: exp,
		Issuer:    c.issuer,
	}, nil
}

func (c *hmacCodec) Verify(token string, now time.Time) (AccessClaims, error) {
	return c.parse(token, now, false)
}

func (c *hmacCodec) VerifyIgnoringExpiry(token string, now time.Time) (AccessClaims, error) {
	return c.parse(token, now, true)
}

func (c *hmacCodec) parse(token string, now time.Time, ignoreExpiry bool) (AccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ignoreExpiry {
		// Signature is still verified; registered-claim validation (exp, iss)
		// is skipped and re-checked manually below where it still applies.
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts,
			jwt.WithTimeFunc(func() time.Time { return now }),
			jwt.WithIssuer(c.issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(c.leeway),
		)
	}

	var wire jwtClaims
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, &wire, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AccessClaims{}, ErrExpiredToken
		}
		return AccessClaims{}, ErrInvalidToken
	}

	return c.claimsFromWire(wire)
}

func (c *hmacCodec) claimsFromWire(wire jwtClaims) (AccessClaims, error) {
	if wire.ID == "" || wire.Subject == "" {
		return AccessClaims{}, ErrInvalidToken
	}
	if wire.Issuer != c.issuer {
		return AccessClaims{}, ErrInvalidToken
	}
	if wire.ExpiresAt == nil {
		return AccessClaims{}, ErrInvalidToken
	}

	// Closed role enumeration: an unrecognized role is invalid, not defaulted.
	role, err := member.ParseRole(wire.Role)
	if err != nil {
		return AccessClaims{}, ErrInvalidToken
	}

	claims := AccessClaims{
		JTI:       wire.ID,
		SubjectID: wire.Subject,
		Role:      role,
		ExpiresAt: wire.ExpiresAt.Time,
		Issuer:    wire.Issuer,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	return claims, nil
}
