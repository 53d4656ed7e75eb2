package secret

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

const refPrefix = "secretref:"

var (
	placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	inlineRefPattern   = regexp.MustCompile(`secretref:([^:\s]+):(\S+)`)
)

// Resolver expands placeholders and resolves references.
type Resolver struct {
	lookup    LookupFunc
	providers map[string]Provider
}

// NewResolver returns a resolver expanding placeholders from lookup and
// resolving references through providers. A nil lookup reads the process
// environment.
func NewResolver(lookup LookupFunc, providers ...Provider) *Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	r := &Resolver{lookup: lookup, providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Default returns a resolver with the env and file providers, both reading
// from lookup.
func Default(lookup LookupFunc) *Resolver {
	return NewResolver(lookup, EnvProvider{Lookup: lookup}, FileProvider{})
}

// ParseRef splits a full reference of the form secretref:<provider>:<ref>.
func ParseRef(value string) (provider, ref string, ok bool) {
	if !strings.HasPrefix(value, refPrefix) {
		return "", "", false
	}
	provider, ref, ok = strings.Cut(strings.TrimPrefix(value, refPrefix), ":")
	if !ok || provider == "" || ref == "" {
		return "", "", false
	}
	return provider, ref, true
}

// Resolve expands value and replaces every reference in it.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	expanded, err := r.expand(value)
	if err != nil {
		return "", err
	}

	if provider, ref, ok := ParseRef(expanded); ok {
		return r.resolveRef(ctx, provider, ref)
	}

	matches := inlineRefPattern.FindAllStringSubmatchIndex(expanded, -1)
	out := expanded
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		v, err := r.resolveRef(ctx, out[m[2]:m[3]], out[m[4]:m[5]])
		if err != nil {
			return "", err
		}
		out = out[:m[0]] + v + out[m[1]:]
	}
	return out, nil
}

func (r *Resolver) resolveRef(ctx context.Context, provider, ref string) (string, error) {
	p, ok := r.providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	v, err := p.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%w: %s:%s", ErrEmpty, provider, ref)
	}
	return v, nil
}

// expand replaces ${VAR} placeholders. Every missing variable is named in
// the error.
func (r *Resolver) expand(s string) (string, error) {
	const dollar = "\x00PAGETEL_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollar)

	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[2 : len(match)-1]
		v, ok := r.lookup(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(slices.Compact(missing), ", "))
	}
	return strings.ReplaceAll(out, dollar, "$"), nil
}
