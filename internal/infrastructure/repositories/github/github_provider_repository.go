package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

const (
	defaultAPIURL   = "https://api.github.com"
	perPage         = 100
	statusCompleted = "completed"
)

// ProviderRepository implements repositories.ProviderRepository for GitHub.
type ProviderRepository struct {
	client *gh.Client
}

// NewProviderRepository creates a GitHub provider authenticated with token.
// An apiURL other than the public API (GitHub Enterprise, tests) replaces the
// client base URL.
func NewProviderRepository(token, apiURL string) (repositories.ProviderRepository, error) {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultAPIURL {
		baseURL, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return &ProviderRepository{client: client}, nil
}

func (p *ProviderRepository) FindCheckRun(
	ctx context.Context,
	pr entities.PullRequestContext,
	name string,
) (*entities.CheckRun, error) {
	opts := &gh.ListCheckRunsOptions{
		CheckName:   gh.String(name),
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		result, resp, err := p.client.Checks.ListCheckRunsForRef(ctx, pr.Owner(), pr.Name(), pr.HeadSHA, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list check runs: %w", err)
		}

		for _, run := range result.CheckRuns {
			if run.GetName() == name {
				return toCheckRun(run), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return nil, nil
}

func (p *ProviderRepository) CreateCheckRun(
	ctx context.Context,
	pr entities.PullRequestContext,
	input entities.CheckRunInput,
) (*entities.CheckRun, error) {
	run, _, err := p.client.Checks.CreateCheckRun(ctx, pr.Owner(), pr.Name(), gh.CreateCheckRunOptions{
		Name:       input.Name,
		HeadSHA:    input.HeadSHA,
		Status:     gh.String(statusCompleted),
		Conclusion: gh.String(input.Conclusion),
		Output:     toCheckRunOutput(input.Output),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create check run: %w", err)
	}
	return toCheckRun(run), nil
}

func (p *ProviderRepository) UpdateCheckRun(
	ctx context.Context,
	pr entities.PullRequestContext,
	id int64,
	input entities.CheckRunInput,
) (*entities.CheckRun, error) {
	run, _, err := p.client.Checks.UpdateCheckRun(ctx, pr.Owner(), pr.Name(), id, gh.UpdateCheckRunOptions{
		Name:       input.Name,
		Conclusion: gh.String(input.Conclusion),
		Output:     toCheckRunOutput(input.Output),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update check run %d: %w", id, err)
	}
	return toCheckRun(run), nil
}

func (p *ProviderRepository) ListComments(
	ctx context.Context,
	pr entities.PullRequestContext,
) ([]entities.Comment, error) {
	var comments []entities.Comment
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		page, resp, err := p.client.Issues.ListComments(ctx, pr.Owner(), pr.Name(), pr.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}

		for _, comment := range page {
			comments = append(comments, entities.Comment{ID: comment.GetID(), Body: comment.GetBody()})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

func (p *ProviderRepository) CreateComment(ctx context.Context, pr entities.PullRequestContext, body string) error {
	_, _, err := p.client.Issues.CreateComment(ctx, pr.Owner(), pr.Name(), pr.Number, &gh.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (p *ProviderRepository) UpdateComment(
	ctx context.Context,
	pr entities.PullRequestContext,
	id int64,
	body string,
) error {
	_, _, err := p.client.Issues.EditComment(ctx, pr.Owner(), pr.Name(), id, &gh.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	return nil
}

func (p *ProviderRepository) DeleteComment(ctx context.Context, pr entities.PullRequestContext, id int64) error {
	if _, err := p.client.Issues.DeleteComment(ctx, pr.Owner(), pr.Name(), id); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}

func (p *ProviderRepository) GetPullRequestBody(ctx context.Context, pr entities.PullRequestContext) (string, error) {
	pull, _, err := p.client.PullRequests.Get(ctx, pr.Owner(), pr.Name(), pr.Number)
	if err != nil {
		return "", fmt.Errorf("failed to get pull request #%d: %w", pr.Number, err)
	}
	return pull.GetBody(), nil
}

func (p *ProviderRepository) UpdatePullRequestBody(
	ctx context.Context,
	pr entities.PullRequestContext,
	body string,
) error {
	_, _, err := p.client.PullRequests.Edit(ctx, pr.Owner(), pr.Name(), pr.Number, &gh.PullRequest{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to update pull request #%d: %w", pr.Number, err)
	}
	return nil
}

func (p *ProviderRepository) ListLabels(ctx context.Context, pr entities.PullRequestContext) ([]string, error) {
	var names []string
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		labels, resp, err := p.client.Issues.ListLabelsByIssue(ctx, pr.Owner(), pr.Name(), pr.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}

		for _, label := range labels {
			names = append(names, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

func (p *ProviderRepository) AddLabel(ctx context.Context, pr entities.PullRequestContext, name string) error {
	if _, _, err := p.client.Issues.AddLabelsToIssue(ctx, pr.Owner(), pr.Name(), pr.Number, []string{name}); err != nil {
		return fmt.Errorf("failed to add label %q: %w", name, err)
	}
	return nil
}

// RemoveLabel removes name from the pull request. A label that is already
// gone is not an error.
func (p *ProviderRepository) RemoveLabel(ctx context.Context, pr entities.PullRequestContext, name string) error {
	resp, err := p.client.Issues.RemoveLabelForIssue(ctx, pr.Owner(), pr.Name(), pr.Number, name)
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && resp != nil && resp.StatusCode == http.StatusNotFound {
			logger.Debugf("Label %q was already removed", name)
			return nil
		}
		return fmt.Errorf("failed to remove label %q: %w", name, err)
	}
	return nil
}

func toCheckRun(run *gh.CheckRun) *entities.CheckRun {
	return &entities.CheckRun{
		ID:      run.GetID(),
		Name:    run.GetName(),
		HTMLURL: run.GetHTMLURL(),
	}
}

func toCheckRunOutput(output entities.ChecksOutput) *gh.CheckRunOutput {
	return &gh.CheckRunOutput{
		Title:   gh.String(output.Title),
		Summary: gh.String(output.Summary),
		Text:    output.Text,
	}
}
