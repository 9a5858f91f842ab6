// Package github wraps the slice of the GitHub REST API the labeler
// consumes: the changed-file list and label set of one pull request.
package github

import (
	"context"
	"strings"

	gogithub "github.com/google/go-github/v55/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/arthur-debert/prlabel/pkg/errors"
	"github.com/arthur-debert/prlabel/pkg/logging"
)

// Client is the API surface the orchestrator needs. Kept to an interface
// so tests can substitute a fake.
type Client interface {
	// ListChangedFiles returns the paths changed by the pull request.
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)
	// ListLabels returns the labels currently on the pull request.
	ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error)
	// ReplaceLabels sets the pull request's labels to exactly the given set.
	ReplaceLabels(ctx context.Context, owner, repo string, number int, labels []string) error
}

type apiClient struct {
	gh     *gogithub.Client
	logger zerolog.Logger
}

// NewClient builds a Client authenticated with the given access token.
func NewClient(ctx context.Context, token string) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &apiClient{
		gh:     gogithub.NewClient(oauth2.NewClient(ctx, ts)),
		logger: logging.GetLogger("github"),
	}
}

func (c *apiClient) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var files []string
	opts := &gogithub.ListOptions{PerPage: 100}

	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAPI,
				"listing changed files for %s/%s#%d", owner, repo, number)
		}
		for _, f := range page {
			files = append(files, f.GetFilename())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug().Int("count", len(files)).Msg("Fetched changed files")
	return files, nil
}

func (c *apiClient) ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var labels []string
	opts := &gogithub.ListOptions{PerPage: 100}

	for {
		page, resp, err := c.gh.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAPI,
				"listing labels for %s/%s#%d", owner, repo, number)
		}
		for _, l := range page {
			labels = append(labels, l.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug().Strs("labels", labels).Msg("Fetched current labels")
	return labels, nil
}

func (c *apiClient) ReplaceLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, _, err := c.gh.Issues.ReplaceLabelsForIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return errors.Wrapf(err, errors.ErrAPI,
			"replacing labels for %s/%s#%d", owner, repo, number)
	}
	c.logger.Info().Strs("labels", labels).Msg("Labels updated")
	return nil
}

// SplitRepository splits the "owner/name" form of GITHUB_REPOSITORY.
func SplitRepository(repository string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", errors.Newf(errors.ErrEventInvalid,
			"malformed repository %q, want owner/name", repository)
	}
	return owner, repo, nil
}
