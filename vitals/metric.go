package vitals

import (
	"fmt"
	"strings"
)

// Kind names one of the five recorded vitals.
type Kind string

const (
	LCP  Kind = "LCP"
	CLS  Kind = "CLS"
	TTFB Kind = "TTFB"
	FCP  Kind = "FCP"
	INP  Kind = "INP"
)

// Kinds returns every vital kind in subscription order.
func Kinds() []Kind {
	return []Kind{LCP, CLS, TTFB, FCP, INP}
}

// ParseKind parses a vital name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Rating is the qualitative assessment attached to a report.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

// NavigationType describes how the page was reached.
type NavigationType string

const (
	NavigationNavigate         NavigationType = "navigate"
	NavigationReload           NavigationType = "reload"
	NavigationBackForward      NavigationType = "back-forward"
	NavigationBackForwardCache NavigationType = "back-forward-cache"
	NavigationPrerender        NavigationType = "prerender"
	NavigationRestore          NavigationType = "restore"
)

// Metric is one vital report. A vital may be reported zero or more times
// per page load; Delta is the change since the previous report of the same
// vital and ID is stable for the page load.
type Metric struct {
	Name           Kind
	Value          float64
	ID             string
	Delta          float64
	Rating         Rating
	NavigationType NavigationType
}
