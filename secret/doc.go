// Package secret resolves secret references in configuration values, so a
// collector API key never has to be written into a build or a shell history.
//
// A value may be a full reference or carry references inline:
//
//	secretref:file:/run/secrets/otlp_api_key
//	secretref:env:CI_OTLP_KEY
//
// ${VAR} placeholders are expanded first, strictly: a missing variable is an
// error. $$ yields a literal $.
//
// Resolved values never appear in errors.
package secret
