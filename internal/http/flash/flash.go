// Package flash carries one-shot notifications across a redirect.
//
// Messages are explicit {Severity, Text} values. Between the redirect and
// the next render they travel in a short-lived cookie holding an HS256
// signed token, so a client cannot forge or alter them. The cookie is
// cleared as soon as it is read.
package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "flash"

	// a flash only has to survive one redirect
	cookieTTL = 2 * time.Minute
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

type claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Store signs and verifies the flash cookie with the session secret.
type Store struct {
	secret []byte
	secure bool
}

func NewStore(secret string, secure bool) *Store {
	return &Store{
		secret: []byte(secret),
		secure: secure,
	}
}

// Add appends a message to the flash cookie. Messages already pending on
// this response are preserved.
func (s *Store) Add(ctx *gin.Context, severity Severity, text string) {
	msgs := append(s.pending(ctx), Message{Severity: severity, Text: text})

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cookieTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)

	if err != nil {
		// a flash is best-effort; losing one must not fail the request
		return
	}

	ctx.Set(ctxPendingKey, msgs)

	s.setCookie(ctx, signed, int(cookieTTL.Seconds()))
}

// Take returns the messages left by the previous request and clears the
// cookie. A missing, expired or tampered cookie yields no messages.
func (s *Store) Take(ctx *gin.Context) []Message {
	raw, err := ctx.Cookie(cookieName)

	if err != nil || raw == "" {
		return nil
	}

	s.setCookie(ctx, "", -1)

	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil || !parsed.Valid {
		return nil
	}

	c, ok := parsed.Claims.(*claims)

	if !ok {
		return nil
	}

	return c.Messages
}

const ctxPendingKey = "flash_pending"

func (s *Store) pending(ctx *gin.Context) []Message {
	v, ok := ctx.Get(ctxPendingKey)

	if !ok {
		return nil
	}

	msgs, ok := v.([]Message)

	if !ok {
		return nil
	}

	return msgs
}

func (s *Store) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		cookieName,
		value,
		maxAge,
		"/",
		"",
		s.secure,
		true, // HttpOnly.
	)
}
