// Package export converts form definitions to and from portable documents:
// JSON and YAML for round trips, and an OpenAPI schema describing the
// submission payload.
package export
