package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/soelshaikh/feedback-portal/backend/pkg/middleware"
)

// Verifier checks Keycloak-issued tokens for the dashboard client and,
// optionally, that the subject holds a realm role.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	role     string
}

// NewVerifier discovers the provider at issuer. An empty role accepts any
// authenticated user of clientID.
func NewVerifier(ctx context.Context, issuer, clientID, role string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		role:     role,
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	if v.role != "" {
		if err := requireRole(idToken, v.role); err != nil {
			return nil, err
		}
	}
	return idToken, nil
}

type realmClaims struct {
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

func requireRole(tok middleware.Token, role string) error {
	var rc realmClaims
	if err := tok.Claims(&rc); err != nil {
		return fmt.Errorf("read roles: %w", err)
	}
	for _, r := range rc.RealmAccess.Roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("missing role %q", role)
}
