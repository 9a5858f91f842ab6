package github

import (
	"encoding/json"
	"os"

	"github.com/arthur-debert/prlabel/pkg/errors"
)

// Event is the subset of the pull_request workflow payload the labeler
// needs.
type Event struct {
	Number      int `json:"number"`
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// LoadEvent reads the workflow event payload, normally the file named by
// GITHUB_EVENT_PATH.
func LoadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEventInvalid, "reading event payload %s", path)
	}
	return ParseEvent(data)
}

// ParseEvent decodes an event payload and checks it names a pull request.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, errors.Wrap(err, errors.ErrEventInvalid, "decoding event payload")
	}
	if ev.PRNumber() <= 0 {
		return nil, errors.New(errors.ErrEventInvalid, "event payload has no pull request number")
	}
	return &ev, nil
}

// PRNumber returns the pull request number, preferring the top-level
// field the pull_request event carries.
func (e *Event) PRNumber() int {
	if e.Number > 0 {
		return e.Number
	}
	return e.PullRequest.Number
}
