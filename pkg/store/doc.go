// Package store persists saved forms. A BlobStore supplies string-keyed
// byte storage (in memory or on an afero filesystem) and a Repository keeps
// the saved form collection as one JSON array under a single key.
package store
