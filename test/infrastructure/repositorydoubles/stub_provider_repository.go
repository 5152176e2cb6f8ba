//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/depdiff/internal/domain/entities"
	"github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository over
// in-memory pull request state and records every write.
type SpyProviderRepository struct {
	// --- check runs ---
	CheckRuns         []entities.CheckRun
	CheckRunURL       string
	FindCheckRunErr   error
	CreateCheckRunErr error
	CreatedCheckRuns  []entities.CheckRunInput
	UpdatedCheckRuns  map[int64]entities.CheckRunInput

	// --- comments ---
	Comments        []entities.Comment
	ListCommentsErr error
	CreatedComments []string
	UpdatedComments map[int64]string
	DeletedComments []int64

	// --- pull request body ---
	Body       string
	GetBodyErr error
	BodyWrites []string

	// --- labels ---
	Labels        []string
	ListLabelsErr error
	AddedLabels   []string
	RemovedLabels []string

	nextID int64
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) FindCheckRun(
	_ context.Context, _ entities.PullRequestContext, name string,
) (*entities.CheckRun, error) {
	if p.FindCheckRunErr != nil {
		return nil, p.FindCheckRunErr
	}
	for i := range p.CheckRuns {
		if p.CheckRuns[i].Name == name {
			run := p.CheckRuns[i]
			return &run, nil
		}
	}
	return nil, nil
}

func (p *SpyProviderRepository) CreateCheckRun(
	_ context.Context, _ entities.PullRequestContext, input entities.CheckRunInput,
) (*entities.CheckRun, error) {
	if p.CreateCheckRunErr != nil {
		return nil, p.CreateCheckRunErr
	}
	p.CreatedCheckRuns = append(p.CreatedCheckRuns, input)
	p.nextID++
	run := entities.CheckRun{
		ID:      1000 + p.nextID,
		Name:    input.Name,
		HTMLURL: p.checkRunURL(1000 + p.nextID),
	}
	p.CheckRuns = append(p.CheckRuns, run)
	return &run, nil
}

func (p *SpyProviderRepository) UpdateCheckRun(
	_ context.Context, _ entities.PullRequestContext, id int64, input entities.CheckRunInput,
) (*entities.CheckRun, error) {
	if p.UpdatedCheckRuns == nil {
		p.UpdatedCheckRuns = make(map[int64]entities.CheckRunInput)
	}
	p.UpdatedCheckRuns[id] = input
	for _, run := range p.CheckRuns {
		if run.ID == id {
			return &run, nil
		}
	}
	return nil, fmt.Errorf("check run %d not found", id)
}

func (p *SpyProviderRepository) checkRunURL(id int64) string {
	if p.CheckRunURL != "" {
		return p.CheckRunURL
	}
	return fmt.Sprintf("https://github.com/octo/app/runs/%d", id)
}

func (p *SpyProviderRepository) ListComments(
	_ context.Context, _ entities.PullRequestContext,
) ([]entities.Comment, error) {
	return p.Comments, p.ListCommentsErr
}

func (p *SpyProviderRepository) CreateComment(_ context.Context, _ entities.PullRequestContext, body string) error {
	p.CreatedComments = append(p.CreatedComments, body)
	p.nextID++
	p.Comments = append(p.Comments, entities.Comment{ID: p.nextID, Body: body})
	return nil
}

func (p *SpyProviderRepository) UpdateComment(
	_ context.Context, _ entities.PullRequestContext, id int64, body string,
) error {
	if p.UpdatedComments == nil {
		p.UpdatedComments = make(map[int64]string)
	}
	p.UpdatedComments[id] = body
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			p.Comments[i].Body = body
		}
	}
	return nil
}

func (p *SpyProviderRepository) DeleteComment(_ context.Context, _ entities.PullRequestContext, id int64) error {
	p.DeletedComments = append(p.DeletedComments, id)
	kept := p.Comments[:0]
	for _, comment := range p.Comments {
		if comment.ID != id {
			kept = append(kept, comment)
		}
	}
	p.Comments = kept
	return nil
}

func (p *SpyProviderRepository) GetPullRequestBody(_ context.Context, _ entities.PullRequestContext) (string, error) {
	return p.Body, p.GetBodyErr
}

func (p *SpyProviderRepository) UpdatePullRequestBody(
	_ context.Context, _ entities.PullRequestContext, body string,
) error {
	p.BodyWrites = append(p.BodyWrites, body)
	p.Body = body
	return nil
}

func (p *SpyProviderRepository) ListLabels(_ context.Context, _ entities.PullRequestContext) ([]string, error) {
	return p.Labels, p.ListLabelsErr
}

func (p *SpyProviderRepository) AddLabel(_ context.Context, _ entities.PullRequestContext, name string) error {
	p.AddedLabels = append(p.AddedLabels, name)
	p.Labels = append(p.Labels, name)
	return nil
}

func (p *SpyProviderRepository) RemoveLabel(_ context.Context, _ entities.PullRequestContext, name string) error {
	p.RemovedLabels = append(p.RemovedLabels, name)
	kept := p.Labels[:0]
	for _, label := range p.Labels {
		if label != name {
			kept = append(kept, label)
		}
	}
	p.Labels = kept
	return nil
}
