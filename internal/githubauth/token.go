package githubauth

import (
	"errors"
	"os"
	"strings"
)

// Environment variable names used by GitHub authentication helpers.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

const missingTokenErrorMessageConstant = "github token not found; set GITHUB_TOKEN or provide a token source"

// ErrTokenMissing reports that no GitHub credential could be resolved.
var ErrTokenMissing = errors.New(missingTokenErrorMessageConstant)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolveToken returns the first non-empty GitHub authentication token observed
// in the provided environment map or the process environment.
func ResolveToken(environment map[string]string) (string, bool) {
	for _, key := range tokenPreference {
		if value, ok := lookup(environment, key); ok {
			return value, true
		}
	}
	for _, key := range tokenPreference {
		if value, ok := os.LookupEnv(key); ok {
			value = strings.TrimSpace(value)
			if len(value) > 0 {
				return value, true
			}
		}
	}
	return "", false
}

// RequireToken resolves a token or surfaces ErrTokenMissing as a typed
// precondition failure. Callers invoke it before issuing any request.
func RequireToken(environment map[string]string) (string, error) {
	tokenValue, tokenFound := ResolveToken(environment)
	if !tokenFound {
		return "", ErrTokenMissing
	}
	return tokenValue, nil
}

func lookup(environment map[string]string, key string) (string, bool) {
	if environment == nil {
		return "", false
	}
	value, exists := environment[key]
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}
