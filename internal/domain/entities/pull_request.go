package entities

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	personalAccessTokenPrefix = "ghp_"
	serviceAccountUsername    = "x-access-token"
)

// ErrNoPullRequest is returned when the triggering event carries no pull request.
var ErrNoPullRequest = errors.New("the workflow was not triggered by a pull request")

// PullRequestContext identifies the pull request under analysis. It is built
// once from the workflow environment and passed explicitly to every step.
type PullRequestContext struct {
	Repository Repository
	ServerURL  string
	APIURL     string
	Number     int
	HeadSHA    string
	BaseSHA    string
	BaseRef    string
}

// Owner returns the login owning the repository.
func (it PullRequestContext) Owner() string {
	return it.Repository.Organization
}

// Name returns the repository name.
func (it PullRequestContext) Name() string {
	return it.Repository.Name
}

// GitURL returns the clone URL with token embedded. The repository remote URL
// from the event payload is used when known, otherwise the URL is built from
// the server URL. Personal access tokens are passed as the username; any other
// token uses the x-access-token account.
func (it PullRequestContext) GitURL(token string) (string, error) {
	var cloneURL *url.URL
	if it.Repository.RemoteURL != "" {
		parsed, err := url.Parse(it.Repository.RemoteURL)
		if err != nil {
			return "", fmt.Errorf("invalid remote URL %q: %w", it.Repository.RemoteURL, err)
		}
		cloneURL = parsed
	} else {
		serverURL, err := url.Parse(it.ServerURL)
		if err != nil {
			return "", fmt.Errorf("invalid server URL %q: %w", it.ServerURL, err)
		}
		cloneURL = serverURL.JoinPath(it.Owner(), it.Name())
	}

	switch {
	case token == "":
	case strings.HasPrefix(token, personalAccessTokenPrefix):
		cloneURL.User = url.User(token)
	default:
		cloneURL.User = url.UserPassword(serviceAccountUsername, token)
	}

	return cloneURL.String(), nil
}
