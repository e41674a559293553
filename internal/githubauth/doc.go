// Package githubauth resolves GitHub API credentials from the environment
// before any network activity begins.
package githubauth
