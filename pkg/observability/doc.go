/*
Package observability provides tools for monitoring the task router.

It turns router lifecycle hooks into Prometheus metrics and structured log
lines, and bootstraps the OpenTelemetry tracer provider used for route spans.
*/
package observability
