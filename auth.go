package foundry

import (
	"context"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const userAgent = "foundry-samples-go/0.1.0"

// Auth handles header generation.
type Auth struct {
	cfg        Config
	credential azcore.TokenCredential
}

func newAuth(cfg Config) (Auth, error) {
	auth := Auth{cfg: cfg, credential: cfg.Credential}
	if auth.credential != nil || cfg.APIKey != "" {
		return auth, nil
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return Auth{}, &CredentialError{Scope: cfg.Scope, Err: err}
	}
	auth.credential = cred
	return auth, nil
}

// Headers returns default headers including auth. A bearer token is
// requested from the credential for every call; the credential owns any
// token caching.
func (a Auth) Headers(ctx context.Context) (http.Header, error) {
	h := http.Header{}
	h.Set("User-Agent", userAgent)
	if a.cfg.APIKey != "" {
		h.Set("api-key", a.cfg.APIKey)
		return h, nil
	}
	if a.credential == nil {
		return nil, &CredentialError{Scope: a.cfg.Scope, Err: errNoCredential}
	}
	token, err := a.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{a.cfg.Scope}})
	if err != nil {
		return nil, &CredentialError{Scope: a.cfg.Scope, Err: err}
	}
	// Strip "Bearer " prefix if a credential hands it back pre-formatted
	value := token.Token
	if strings.HasPrefix(strings.ToLower(value), "bearer ") {
		value = strings.TrimSpace(value[7:])
	}
	h.Set("Authorization", "Bearer "+value)
	return h, nil
}
