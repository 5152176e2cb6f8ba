package github

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

var pullRequestEvents = map[string]bool{
	"pull_request":        true,
	"pull_request_target": true,
}

// LoadPullRequestContext reads the event payload the runner wrote to
// GITHUB_EVENT_PATH. Events other than pull requests yield entities.ErrNoPullRequest.
func LoadPullRequestContext(env entities.ActionsEnvironment) (*entities.PullRequestContext, error) {
	if !pullRequestEvents[env.EventName] {
		return nil, fmt.Errorf("%w (event %q)", entities.ErrNoPullRequest, env.EventName)
	}

	owner, name, found := strings.Cut(env.Repository, "/")
	if !found || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid GITHUB_REPOSITORY %q", env.Repository)
	}

	data, err := os.ReadFile(env.EventPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event gh.PullRequestEvent
	if unmarshalErr := json.Unmarshal(data, &event); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", unmarshalErr)
	}

	pull := event.GetPullRequest()
	if pull == nil {
		return nil, entities.ErrNoPullRequest
	}

	number := event.GetNumber()
	if number == 0 {
		number = pull.GetNumber()
	}

	return &entities.PullRequestContext{
		Repository: entities.Repository{
			Name:         name,
			Organization: owner,
			RemoteURL:    event.GetRepo().GetCloneURL(),
		},
		ServerURL: env.ServerURL,
		APIURL:    env.APIURL,
		Number:    number,
		HeadSHA:   pull.GetHead().GetSHA(),
		BaseSHA:   pull.GetBase().GetSHA(),
		BaseRef:   pull.GetBase().GetRef(),
	}, nil
}
