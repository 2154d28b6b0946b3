// Package credentials resolves the inference API token once at startup.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Source names where a token came from.
type Source string

const (
	SourceNone        Source = "none"
	SourceEnvironment Source = "env"
	SourceParamStore  Source = "ssm"
)

// TokenGetter is satisfied by *paramstore.Client.
type TokenGetter interface {
	GetToken(ctx context.Context, name string) (string, error)
}

// Token is an immutable resolved credential. An empty Value is valid and
// means no credential is configured.
type Token struct {
	Value  string
	Source Source
}

// Present reports whether a credential was found.
func (t Token) Present() bool {
	return t.Value != ""
}

// Resolve returns the environment token when set, otherwise reads the named
// SSM parameter. A missing credential is not an error; a failed SSM read is,
// and callers are expected to continue without a token.
func Resolve(ctx context.Context, envToken, paramName string, params TokenGetter) (Token, error) {
	if v := strings.TrimSpace(envToken); v != "" {
		return Token{Value: v, Source: SourceEnvironment}, nil
	}
	paramName = strings.TrimSpace(paramName)
	if paramName == "" {
		return Token{Source: SourceNone}, nil
	}
	if params == nil {
		return Token{Source: SourceNone}, errors.New("credentials: parameter store client is nil")
	}
	v, err := params.GetToken(ctx, paramName)
	if err != nil {
		return Token{Source: SourceNone}, fmt.Errorf("credentials: load %q: %w", paramName, err)
	}
	return Token{Value: v, Source: SourceParamStore}, nil
}
