package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// Report publishes diff results on the pull request.
type Report interface {
	Execute(
		ctx context.Context,
		provider repositories.ProviderRepository,
		pr entities.PullRequestContext,
		results []entities.DiffResult,
		opts ReportOptions,
	) (string, error)
}

// ReportOptions toggles the optional publishers. The check run is always published.
type ReportOptions struct {
	PostPRComment bool
	UpdatePRBody  bool
	AssignLabel   bool
	LabelName     string
}

// ReportCommand keeps the check run, tagged comment, PR body block and label
// in sync with the latest results. Every publisher is idempotent.
type ReportCommand struct{}

// NewReportCommand creates a new ReportCommand.
func NewReportCommand() *ReportCommand {
	return &ReportCommand{}
}

// Execute publishes the check run first, then the enabled publishers, and
// returns the check run URL.
func (it *ReportCommand) Execute(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	results []entities.DiffResult,
	opts ReportOptions,
) (string, error) {
	checksURL, err := it.ReportAsChecks(ctx, provider, pr, results)
	if err != nil {
		return "", err
	}

	if opts.PostPRComment {
		if commentErr := it.ReportAsComment(ctx, provider, pr, checksURL, results); commentErr != nil {
			return checksURL, commentErr
		}
	}
	if opts.UpdatePRBody {
		if bodyErr := it.ReportAsBody(ctx, provider, pr, checksURL, results); bodyErr != nil {
			return checksURL, bodyErr
		}
	}
	if opts.AssignLabel {
		if labelErr := it.ReportAsLabel(ctx, provider, pr, results, opts.LabelName); labelErr != nil {
			return checksURL, labelErr
		}
	}

	return checksURL, nil
}

// ReportAsChecks updates the named check run on the head commit, creating it
// when absent, and returns its URL.
func (it *ReportCommand) ReportAsChecks(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	results []entities.DiffResult,
) (string, error) {
	input := entities.CheckRunInput{
		Name:       entities.ChecksName,
		HeadSHA:    pr.HeadSHA,
		Conclusion: entities.Conclusion(results),
		Output:     entities.NewChecksOutput(results),
	}

	existing, err := provider.FindCheckRun(ctx, pr, entities.ChecksName)
	if err != nil {
		return "", fmt.Errorf("failed to report as checks: %w", err)
	}

	if existing != nil {
		logger.Infof("Updating check run %d (%s)", existing.ID, input.Conclusion)
		if _, updateErr := provider.UpdateCheckRun(ctx, pr, existing.ID, input); updateErr != nil {
			return "", fmt.Errorf("failed to report as checks: %w", updateErr)
		}
		return existing.HTMLURL, nil
	}

	logger.Infof("Creating check run (%s)", input.Conclusion)
	created, err := provider.CreateCheckRun(ctx, pr, input)
	if err != nil {
		return "", fmt.Errorf("failed to report as checks: %w", err)
	}
	return created.HTMLURL, nil
}

// ReportAsComment keeps a single tagged comment while differences exist.
func (it *ReportCommand) ReportAsComment(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	checksURL string,
	results []entities.DiffResult,
) error {
	comments, err := provider.ListComments(ctx, pr)
	if err != nil {
		return fmt.Errorf("failed to report as comment: %w", err)
	}
	tagged := findTaggedComment(comments)

	if len(results) == 0 {
		if tagged == nil {
			return nil
		}
		logger.Infof("Deleting comment %d", tagged.ID)
		if deleteErr := provider.DeleteComment(ctx, pr, tagged.ID); deleteErr != nil {
			return fmt.Errorf("failed to report as comment: %w", deleteErr)
		}
		return nil
	}

	body := entities.CommentBody(checksURL)
	if tagged != nil {
		logger.Infof("Updating comment %d", tagged.ID)
		err = provider.UpdateComment(ctx, pr, tagged.ID, body)
	} else {
		logger.Info("Creating comment")
		err = provider.CreateComment(ctx, pr, body)
	}
	if err != nil {
		return fmt.Errorf("failed to report as comment: %w", err)
	}
	return nil
}

// ReportAsBody adds, replaces or strips the tagged block of the PR body. The
// body is only written back when it changed.
func (it *ReportCommand) ReportAsBody(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	checksURL string,
	results []entities.DiffResult,
) error {
	original, err := provider.GetPullRequestBody(ctx, pr)
	if err != nil {
		return fmt.Errorf("failed to report as PR body: %w", err)
	}

	updated := entities.ApplyPullRequestBody(original, len(results) > 0, checksURL)
	if updated == original {
		logger.Debug("PR body is up to date")
		return nil
	}

	logger.Infof("Updating body of pull request #%d", pr.Number)
	if updateErr := provider.UpdatePullRequestBody(ctx, pr, updated); updateErr != nil {
		return fmt.Errorf("failed to report as PR body: %w", updateErr)
	}
	return nil
}

// ReportAsLabel adds labelName while differences exist and removes it otherwise.
func (it *ReportCommand) ReportAsLabel(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pr entities.PullRequestContext,
	results []entities.DiffResult,
	labelName string,
) error {
	labels, err := provider.ListLabels(ctx, pr)
	if err != nil {
		return fmt.Errorf("failed to report as label: %w", err)
	}
	exists := slices.Contains(labels, labelName)

	switch {
	case len(results) > 0 && !exists:
		logger.Infof("Adding label %q", labelName)
		err = provider.AddLabel(ctx, pr, labelName)
	case len(results) == 0 && exists:
		logger.Infof("Removing label %q", labelName)
		err = provider.RemoveLabel(ctx, pr, labelName)
	}
	if err != nil {
		return fmt.Errorf("failed to report as label: %w", err)
	}
	return nil
}

func findTaggedComment(comments []entities.Comment) *entities.Comment {
	for i := range comments {
		if strings.Contains(comments[i].Body, entities.ReportTag) {
			return &comments[i]
		}
	}
	return nil
}
