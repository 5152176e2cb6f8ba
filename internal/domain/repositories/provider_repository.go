package repositories

import (
	"context"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
)

// ProviderRepository abstracts the Git hosting provider (GitHub) calls made
// while reporting a diff on a pull request.
type ProviderRepository interface {
	// FindCheckRun returns the check run named name on the head commit, or nil.
	FindCheckRun(ctx context.Context, pr entities.PullRequestContext, name string) (*entities.CheckRun, error)
	CreateCheckRun(
		ctx context.Context, pr entities.PullRequestContext, input entities.CheckRunInput,
	) (*entities.CheckRun, error)
	UpdateCheckRun(
		ctx context.Context, pr entities.PullRequestContext, id int64, input entities.CheckRunInput,
	) (*entities.CheckRun, error)

	// ListComments returns every comment of the pull request, all pages included.
	ListComments(ctx context.Context, pr entities.PullRequestContext) ([]entities.Comment, error)
	CreateComment(ctx context.Context, pr entities.PullRequestContext, body string) error
	UpdateComment(ctx context.Context, pr entities.PullRequestContext, id int64, body string) error
	DeleteComment(ctx context.Context, pr entities.PullRequestContext, id int64) error

	GetPullRequestBody(ctx context.Context, pr entities.PullRequestContext) (string, error)
	UpdatePullRequestBody(ctx context.Context, pr entities.PullRequestContext, body string) error

	// ListLabels returns the names of every label on the pull request.
	ListLabels(ctx context.Context, pr entities.PullRequestContext) ([]string, error)
	AddLabel(ctx context.Context, pr entities.PullRequestContext, name string) error
	RemoveLabel(ctx context.Context, pr entities.PullRequestContext, name string) error
}
