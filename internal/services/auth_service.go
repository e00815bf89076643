package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"assetVerse/internal/models"
)

// TokenVerifier is the identity gate: it turns a raw bearer credential into a
// verified principal email.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (string, error)
}

// FirebaseVerifier validates Firebase ID tokens against the issuing project
// and extracts the email claim.
type FirebaseVerifier struct {
	Client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{Client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (string, error) {
	token, err := v.Client.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return "", models.ErrInvalidToken
	}
	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		return "", models.ErrInvalidToken
	}
	return email, nil
}

// LocalVerifier validates HS256 tokens minted by utils.Manager. Used in
// development and tests where no Firebase project is available.
type LocalVerifier struct {
	Manager interface {
		Parse(accessToken string) (string, error)
	}
}

func (v *LocalVerifier) Verify(_ context.Context, rawToken string) (string, error) {
	email, err := v.Manager.Parse(rawToken)
	if err != nil {
		return "", models.ErrInvalidToken
	}
	return email, nil
}

// CachedVerifier fronts another verifier with a short-lived redis cache so a
// client hammering the API with the same token does not re-verify it on every
// request. Keyed by token hash, never by the token itself.
type CachedVerifier struct {
	Next  TokenVerifier
	Redis *redis.Client
	TTL   time.Duration
}

func (v *CachedVerifier) Verify(ctx context.Context, rawToken string) (string, error) {
	sum := sha256.Sum256([]byte(rawToken))
	key := "auth:token:" + hex.EncodeToString(sum[:])

	// Cache trouble is not an auth failure; any miss or error falls through
	// to the real verifier.
	if cached, err := v.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
		return cached, nil
	}

	email, err := v.Next.Verify(ctx, rawToken)
	if err != nil {
		return "", err
	}

	ttl := v.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	_ = v.Redis.Set(ctx, key, email, ttl).Err()
	return email, nil
}
