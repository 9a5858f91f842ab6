// Package labeler orchestrates one labeling run: fetch the pull request's
// changed paths and current labels, evaluate the configured rules, and
// reconcile the label set.
package labeler

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/prlabel/pkg/github"
	"github.com/arthur-debert/prlabel/pkg/logging"
	"github.com/arthur-debert/prlabel/pkg/rules"
)

// Labeler applies compiled rules to one pull request.
type Labeler struct {
	client github.Client
	rules  *rules.CompiledRules
	debug  bool
	logger zerolog.Logger
}

// New builds a Labeler. With debug set, Sync computes and logs the label
// diff but issues no mutating API call.
func New(client github.Client, compiled *rules.CompiledRules, debug bool) *Labeler {
	return &Labeler{
		client: client,
		rules:  compiled,
		debug:  debug,
		logger: logging.GetLogger("labeler"),
	}
}

// Sync reconciles the pull request's labels with the rule evaluation.
//
// Labels mentioned anywhere in the configuration are fully recomputed on
// every run; labels outside the configuration are left untouched. All
// reads and the full desired set are complete before the single mutating
// call, so a failure anywhere earlier changes nothing, and the replace
// itself is idempotent and safe to retry.
func (l *Labeler) Sync(ctx context.Context, owner, repo string, number int) error {
	paths, err := l.client.ListChangedFiles(ctx, owner, repo, number)
	if err != nil {
		return err
	}
	current, err := l.client.ListLabels(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	result := l.rules.Evaluate(paths)
	desired := desiredLabels(current, l.rules.ManagedLabels(), result)
	added, removed := diffLabels(current, desired)

	l.logger.Info().
		Int("pr", number).
		Int("changedFiles", len(paths)).
		Strs("add", added).
		Strs("remove", removed).
		Msg("Computed label diff")

	if l.debug {
		l.logger.Warn().Msg("Debug mode: labels not applied")
		return nil
	}
	if len(added) == 0 && len(removed) == 0 {
		l.logger.Info().Msg("Labels already up to date")
		return nil
	}

	return l.client.ReplaceLabels(ctx, owner, repo, number, desired)
}

// desiredLabels is (current minus managed) union evaluated-true, in a
// stable order. Current labels keep their original spelling; evaluated
// labels are already lower case.
func desiredLabels(current, managed []string, result rules.Result) []string {
	managedSet := make(map[string]bool, len(managed))
	for _, m := range managed {
		managedSet[m] = true
	}

	var desired []string
	for _, c := range current {
		if !managedSet[strings.ToLower(c)] {
			desired = append(desired, c)
		}
	}
	for label, apply := range result {
		if apply {
			desired = append(desired, label)
		}
	}

	sort.Strings(desired)
	return desired
}

// diffLabels reports the case-folded additions and removals between the
// current and desired sets.
func diffLabels(current, desired []string) (added, removed []string) {
	currentSet := foldedSet(current)
	desiredSet := foldedSet(desired)

	for label := range desiredSet {
		if !currentSet[label] {
			added = append(added, label)
		}
	}
	for label := range currentSet {
		if !desiredSet[label] {
			removed = append(removed, label)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func foldedSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[strings.ToLower(l)] = true
	}
	return set
}
