package azure

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// ErrNotFound is returned when an external service reports that the requested
// document, thread, or resource does not exist.
var ErrNotFound = errors.New("resource not found")

// NewCredential builds the ambient Azure credential chain (env vars, managed
// identity, az cli) shared by every client in this package.
func NewCredential() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

// tokenSource caches an AAD access token for a single scope and refreshes it
// shortly before expiry.
type tokenSource struct {
	cred  azcore.TokenCredential
	scope string

	mu    sync.Mutex
	token azcore.AccessToken
}

func newTokenSource(cred azcore.TokenCredential, scope string) *tokenSource {
	return &tokenSource{cred: cred, scope: scope}
}

func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token.Token != "" && time.Until(ts.token.ExpiresOn) > 2*time.Minute {
		return ts.token.Token, nil
	}
	tok, err := ts.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{ts.scope}})
	if err != nil {
		return "", err
	}
	ts.token = tok
	return tok.Token, nil
}
