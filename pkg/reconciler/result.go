package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/glossync/pkg/egeria"
)

// Action is something the engine did to one element or link.
type Action string

// Actions recorded in a Result.
const (
	// ActionCreated: a copy was created on either side.
	ActionCreated Action = "created"
	// ActionUpdated: an Atlas copy was updated from its Egeria original.
	ActionUpdated Action = "updated"
	// ActionRefreshed: an Egeria copy was refreshed from its Atlas original.
	ActionRefreshed Action = "refreshed"
	// ActionDeleted: an Atlas copy whose Egeria original disappeared was deleted.
	ActionDeleted Action = "deleted"
	// ActionRepaired: a correlation or ownership marker was re-established or stripped.
	ActionRepaired Action = "repaired"
	// ActionLinked: a parent or categorization link was set.
	ActionLinked Action = "linked"
	// ActionUnlinked: a parent or categorization link was cleared.
	ActionUnlinked Action = "unlinked"
	// ActionSkipped: the element could not be processed this cycle.
	ActionSkipped Action = "skipped"
	// ActionDeferred: a link target does not exist yet; retried next cycle.
	ActionDeferred Action = "deferred"
)

// Counts tallies actions for one element kind.
type Counts struct {
	Created   int `json:"created" yaml:"created"`
	Updated   int `json:"updated" yaml:"updated"`
	Refreshed int `json:"refreshed" yaml:"refreshed"`
	Deleted   int `json:"deleted" yaml:"deleted"`
	Repaired  int `json:"repaired" yaml:"repaired"`
	Linked    int `json:"linked" yaml:"linked"`
	Unlinked  int `json:"unlinked" yaml:"unlinked"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Deferred  int `json:"deferred" yaml:"deferred"`
}

// Writes returns the number of write actions.
func (c Counts) Writes() int {
	return c.Created + c.Updated + c.Refreshed + c.Deleted + c.Repaired + c.Linked + c.Unlinked
}

func (c *Counts) add(a Action) {
	switch a {
	case ActionCreated:
		c.Created++
	case ActionUpdated:
		c.Updated++
	case ActionRefreshed:
		c.Refreshed++
	case ActionDeleted:
		c.Deleted++
	case ActionRepaired:
		c.Repaired++
	case ActionLinked:
		c.Linked++
	case ActionUnlinked:
		c.Unlinked++
	case ActionSkipped:
		c.Skipped++
	case ActionDeferred:
		c.Deferred++
	}
}

// Result represents the outcome of a refresh cycle.
type Result struct {
	Glossaries Counts `json:"glossaries" yaml:"glossaries"`
	Categories Counts `json:"categories" yaml:"categories"`
	Terms      Counts `json:"terms" yaml:"terms"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the refresh.
type ResultMetadata struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Scope     Scope         `json:"scope" yaml:"scope"`
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Warnings: []string{},
		Metadata: ResultMetadata{StartTime: time.Now()},
	}
}

// Writes returns the number of writes made on either side.
func (r *Result) Writes() int {
	return r.Glossaries.Writes() + r.Categories.Writes() + r.Terms.Writes()
}

// Counts returns the counts for an element kind.
func (r *Result) Counts(kind egeria.ElementKind) Counts {
	if c := r.counts(kind); c != nil {
		return *c
	}
	return Counts{}
}

func (r *Result) counts(kind egeria.ElementKind) *Counts {
	switch kind {
	case egeria.KindGlossary:
		return &r.Glossaries
	case egeria.KindCategory:
		return &r.Categories
	case egeria.KindTerm:
		return &r.Terms
	}
	return nil
}

func (r *Result) add(kind egeria.ElementKind, a Action) {
	if c := r.counts(kind); c != nil {
		c.add(a)
	}
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if r.Writes() == 0 {
		return "Refresh completed. Everything already in sync."
	}
	return fmt.Sprintf("Refresh completed with %d writes (glossaries %d, categories %d, terms %d).",
		r.Writes(), r.Glossaries.Writes(), r.Categories.Writes(), r.Terms.Writes())
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
