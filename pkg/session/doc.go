// Package session holds the editing state of the form builder: the form
// under construction, the field id counter and the live preview values.
//
// A Session applies field edits, drives validation and derived field
// recomputation as preview values change, and saves, loads and deletes forms
// through a store.Repository. Session is not safe for concurrent use.
package session
