package notification

import (
	"strings"

	"agency-notify/internal/pkg/errs"
)

const MaxContentLength = 2000

// Category is the closed set of notification sources.
type Category string

const (
	CategoryEmployer Category = "employer"
	CategoryDemand   Category = "demand"
	CategoryWorker   Category = "worker"
	CategoryAgent    Category = "agent"
	CategorySystem   Category = "system"
)

// categoryLabels maps each category to its human-readable UI label.
// Kept as data rather than a branching chain; CategorySystem is the default
// for anything unmapped.
var categoryLabels = map[Category]string{
	CategoryEmployer: "Employer",
	CategoryDemand:   "Demand",
	CategoryWorker:   "Worker",
	CategoryAgent:    "Agent",
	CategorySystem:   "System",
}

// CoerceCategory maps raw input onto the closed set. Absent or unrecognized
// values become CategorySystem; coercion never fails.
func CoerceCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := categoryLabels[c]; ok {
		return c
	}
	return CategorySystem
}

func (c Category) String() string { return string(c) }

// Label returns the UI display label, defaulting to "System".
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategorySystem]
}

type Content struct {
	text string
}

func NewContent(s string) (Content, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Content{}, errs.ErrContentRequired
	}
	if len(t) > MaxContentLength {
		return Content{}, errs.ErrContentTooLong
	}
	return Content{text: t}, nil
}

// ReconstructContent rebuilds content from storage without validation.
func ReconstructContent(s string) Content {
	return Content{text: s}
}

func (c Content) String() string { return c.text }
