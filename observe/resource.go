package observe

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jonwraymond/pagetel/page"
)

// DeploymentEnvironmentNameKey is the resource key carrying the build mode.
const DeploymentEnvironmentNameKey = attribute.Key("deployment.environment.name")

// Identity is the stable description of the running application.
type Identity struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	UserAgent      string
}

// Validate reports the first missing identity field.
func (id Identity) Validate() error {
	switch {
	case strings.TrimSpace(id.ServiceName) == "":
		return ErrMissingServiceName
	case strings.TrimSpace(id.ServiceVersion) == "":
		return ErrMissingServiceVersion
	case strings.TrimSpace(id.Environment) == "":
		return ErrMissingEnvironment
	case strings.TrimSpace(id.UserAgent) == "":
		return ErrMissingUserAgent
	}
	return nil
}

// NewResource builds the resource descriptor shared by all providers.
//
// Layers are merged in order: SDK defaults, then identity, then each
// detector's output. Later layers win on key conflicts. A fresh
// service.instance.id is generated per call.
func NewResource(ctx context.Context, id Identity, detectors ...resource.Detector) (*resource.Resource, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	identity := resource.NewSchemaless(
		semconv.ServiceName(id.ServiceName),
		semconv.ServiceVersion(id.ServiceVersion),
		semconv.ServiceInstanceID(uuid.NewString()),
		DeploymentEnvironmentNameKey.String(id.Environment),
		semconv.UserAgentOriginal(id.UserAgent),
	)

	res, err := resource.Merge(resource.Default(), identity)
	if err != nil {
		return nil, fmt.Errorf("failed to merge identity: %w", err)
	}

	for _, d := range detectors {
		if d == nil {
			continue
		}
		detected, err := d.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to detect resource: %w", err)
		}
		res, err = resource.Merge(res, detected)
		if err != nil {
			return nil, fmt.Errorf("failed to merge detected resource: %w", err)
		}
	}

	return res, nil
}

// BrowserDetector returns a detector for the browser.* attributes derived
// from the navigator hints and the user agent string.
func BrowserDetector(nav page.Navigator, userAgent string) resource.Detector {
	return browserDetector{nav: nav, userAgent: userAgent}
}

type browserDetector struct {
	nav       page.Navigator
	userAgent string
}

// Detect implements resource.Detector. Empty hints are omitted.
func (d browserDetector) Detect(context.Context) (*resource.Resource, error) {
	var attrs []attribute.KeyValue
	if len(d.nav.Brands) > 0 {
		attrs = append(attrs, semconv.BrowserBrands(d.nav.Brands...))
	}
	if d.nav.Platform != "" {
		attrs = append(attrs, semconv.BrowserPlatform(d.nav.Platform))
	}
	if d.nav.Mobile != nil {
		attrs = append(attrs, semconv.BrowserMobile(*d.nav.Mobile))
	}
	if d.nav.Language != "" {
		attrs = append(attrs, semconv.BrowserLanguage(d.nav.Language))
	}
	if d.userAgent != "" {
		attrs = append(attrs, semconv.UserAgentOriginal(d.userAgent))
	}
	return resource.NewSchemaless(attrs...), nil
}
