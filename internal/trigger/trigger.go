// Package trigger contains the event sources that ask for the next page: a
// manual "load more" control and an automatic viewport sentinel. Both go
// through the same Pager and neither duplicates the controller's logic.
package trigger

import (
	"fmt"
	"strings"

	"github.com/mmcdole/pixa/internal/paging"
)

// Kind names a trigger variant
type Kind string

const (
	KindManual Kind = "manual"
	KindAuto   Kind = "auto"
)

// ParseKind parses a configured trigger name
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindManual, "":
		return KindManual, nil
	case KindAuto:
		return KindAuto, nil
	default:
		return "", fmt.Errorf("unknown trigger %q (want manual or auto)", s)
	}
}

// Pager is the part of paging.Controller a trigger drives
type Pager interface {
	State() paging.State
	Next() (*paging.Fetch, bool)
}

// Trigger is the behaviour shared by both variants
type Trigger interface {
	Kind() Kind

	// Enabled reports whether the trigger would currently request a page
	Enabled() bool

	// Settle tells the trigger a fetch it handed out has resolved
	Settle(o paging.Outcome)

	// Reset forgets per-search state when a new search starts
	Reset()
}

// New returns the trigger variant for kind
func New(kind Kind, pager Pager) Trigger {
	if kind == KindAuto {
		return NewAuto(pager)
	}
	return NewManual(pager)
}
