package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/platform/httpclient"
	"animal-shelter/internal/ports/auth"
)

var (
	ErrUnauthorized = errors.New("identity: token rejected")
	ErrUpstream     = errors.New("identity: upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Verifier resuelve un bearer token contra el proveedor de identidad.
type Verifier struct {
	client *httpclient.Client
}

func New(cfg config.AuthConfig) (*Verifier, error) {
	c, err := httpclient.New(cfg.IdentityURL, cfg.Timeout, map[string]string{
		"X-Api-Key": strings.TrimSpace(cfg.IdentityAPIKey),
	})
	if err != nil {
		return nil, err
	}
	return &Verifier{client: c}, nil
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out verifyResponse
	err := v.client.Do(ctx, http.MethodPost, verifyPath,
		map[string]string{"Authorization": "Bearer " + token},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, ErrUnauthorized
		default:
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Name:   strings.TrimSpace(out.Name),
		Role:   strings.ToUpper(strings.TrimSpace(out.Role)),
	}, nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)
