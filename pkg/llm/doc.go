// Package llm builds ports.Generator implementations from configuration and
// decorates them with response caching.
package llm
