// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xdgmenu/xdgmenu/pkg/desktopentry"
)

const (
	// PredicateCategory matches applications carrying a category.
	PredicateCategory PredicateKind = "Category"
	// PredicateFilename matches an application by identifier.
	PredicateFilename PredicateKind = "Filename"
	// PredicateAll matches every application.
	PredicateAll PredicateKind = "All"
)

// ErrInvalidPredicateKind is returned when a PredicateKind value is not recognized.
var ErrInvalidPredicateKind = errors.New("invalid predicate kind")

type (
	// Condition is a boolean expression over one application record. The
	// implementations are And, Or, Not and Predicate.
	Condition interface {
		fmt.Stringer
		condition()
	}

	// And is true when it has children and all of them are true.
	And struct{ Children []Condition }

	// Or is true when any child is true.
	Or struct{ Children []Condition }

	// Not is true when it has children and none of them is true.
	Not struct{ Children []Condition }

	// PredicateKind selects what a Predicate tests.
	PredicateKind string

	// Predicate is a leaf test.
	Predicate struct {
		Kind  PredicateKind
		Value string
	}
)

func (And) condition()       {}
func (Or) condition()        {}
func (Not) condition()       {}
func (Predicate) condition() {}

// Evaluate reports whether app satisfies c. A nil condition is false.
// Empty And, Or and Not are all false.
func Evaluate(c Condition, app *desktopentry.Entry) bool {
	switch c := c.(type) {
	case And:
		if len(c.Children) == 0 {
			return false
		}
		for _, child := range c.Children {
			if !Evaluate(child, app) {
				return false
			}
		}
		return true
	case Or:
		return anyMatch(c.Children, app)
	case Not:
		if len(c.Children) == 0 {
			return false
		}
		return !anyMatch(c.Children, app)
	case Predicate:
		switch c.Kind {
		case PredicateCategory:
			return app.HasCategory(c.Value)
		case PredicateFilename:
			return app.ID == c.Value
		case PredicateAll:
			return true
		}
	}
	return false
}

func anyMatch(children []Condition, app *desktopentry.Entry) bool {
	for _, child := range children {
		if Evaluate(child, app) {
			return true
		}
	}
	return false
}

// Summary renders c for dumps; nil renders as "none".
func Summary(c Condition) string {
	if c == nil {
		return "none"
	}
	return c.String()
}

func (c And) String() string { return "And(" + joinConditions(c.Children) + ")" }
func (c Or) String() string  { return "Or(" + joinConditions(c.Children) + ")" }
func (c Not) String() string { return "Not(" + joinConditions(c.Children) + ")" }

func (p Predicate) String() string {
	if p.Kind == PredicateAll {
		return "All"
	}
	return string(p.Kind) + "=" + p.Value
}

func joinConditions(cs []Condition) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// IsValid returns whether the PredicateKind is recognized.
func (k PredicateKind) IsValid() (bool, []error) {
	switch k {
	case PredicateCategory, PredicateFilename, PredicateAll:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidPredicateKind, k)}
	}
}
