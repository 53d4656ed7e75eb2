package page

import (
	"fmt"
	"net/url"
)

// Page describes the document the telemetry pipeline runs in.
type Page struct {
	// UserAgent is the navigator user-agent string. Required.
	UserAgent string

	// Location is the location at startup.
	Location Location

	// Navigator holds optional client hints.
	Navigator Navigator
}

// Navigator holds the user-agent client hints a browser exposes through
// navigator.userAgentData and navigator.language.
type Navigator struct {
	Platform string
	Brands   []string
	// Mobile is nil when the browser exposes no userAgentData.
	Mobile   *bool
	Language string
}

// Location mirrors window.location. Search keeps its leading "?" and Hash
// its leading "#", exactly as a browser reports them.
type Location struct {
	Href     string
	Origin   string
	Pathname string
	Search   string
	Hash     string
}

// ParseLocation splits an absolute URL into its location components.
func ParseLocation(href string) (Location, error) {
	if href == "" {
		return Location{}, ErrEmptyHref
	}
	u, err := url.Parse(href)
	if err != nil {
		return Location{}, fmt.Errorf("page: parse href: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Location{}, fmt.Errorf("%w: %q", ErrRelativeHref, href)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	loc := Location{
		Href:     u.String(),
		Origin:   u.Scheme + "://" + u.Host,
		Pathname: u.EscapedPath(),
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.EscapedFragment()
	}
	return loc, nil
}

// Locator reports the current page location.
type Locator interface {
	Location() Location
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() Location

// Location implements Locator.
func (f LocatorFunc) Location() Location { return f() }
