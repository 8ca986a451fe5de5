package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenProvider abstracts cloud token acquisition for PostgreSQL
// authentication. The token is sent as the connection password.
type TokenProvider interface {
	// GetToken acquires a token and reports when it expires.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. Must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope Azure AD issues PostgreSQL tokens for.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// useTokenPassword makes every new pool connection authenticate with a fresh
// token from provider.
func useTokenPassword(poolConfig *pgxpool.Config, provider TokenProvider) {
	poolConfig.BeforeConnect = func(ctx context.Context, cc *pgx.ConnConfig) error {
		token, _, err := provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire token from %s: %w", provider, err)
		}
		cc.Password = token
		return nil
	}
}
