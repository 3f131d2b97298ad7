package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgsecrets "github.com/lumapay/paypal-adapter/pkg/secrets"
)

// Resolver fetches the PayPal credential set from a secrets backend and
// caches it so process startup and secret rotation are the only fetch paths.
type Resolver struct {
	logger     *zap.Logger
	provider   pkgsecrets.Provider
	cache      *pkgsecrets.Cache[pkgsecrets.Credentials]
	secretName string
}

// NewResolver constructs a cached credential resolver for the named secret.
func NewResolver(
	logger *zap.Logger,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[pkgsecrets.Credentials],
	secretName string,
) *Resolver {
	return &Resolver{
		logger:     logger,
		provider:   provider,
		cache:      cache,
		secretName: secretName,
	}
}

// Resolve returns the credential set, from cache when fresh.
func (r *Resolver) Resolve(ctx context.Context) (pkgsecrets.Credentials, error) {
	if creds, ok := r.cache.Get(r.secretName); ok {
		return creds, nil
	}

	raw, err := r.provider.GetSecret(ctx, r.secretName)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.Error(err),
			zap.String("secret", r.secretName))
		return pkgsecrets.Credentials{}, err
	}

	creds, err := parseCredentials(raw)
	if err != nil {
		return pkgsecrets.Credentials{}, err
	}

	r.cache.Put(r.secretName, creds)
	return creds, nil
}

// Bust evicts the cached credential set, forcing a refetch on next Resolve.
func (r *Resolver) Bust() {
	r.cache.Bust(r.secretName)
}

// parseCredentials extracts a Credentials value from the raw secret map.
func parseCredentials(m map[string]string) (pkgsecrets.Credentials, error) {
	creds := pkgsecrets.Credentials{
		ClientID:     m["client_id"],
		ClientSecret: m["client_secret"],
		WebhookID:    m["webhook_id"],
	}
	if creds.ClientID == "" {
		return pkgsecrets.Credentials{}, fmt.Errorf("missing 'client_id' in secret")
	}
	if creds.ClientSecret == "" {
		return pkgsecrets.Credentials{}, fmt.Errorf("missing 'client_secret' in secret")
	}
	return creds, nil
}
