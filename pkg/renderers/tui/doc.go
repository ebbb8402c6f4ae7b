// Package tui fills in a built form from the terminal. Prompts are issued
// through a PromptDriver (survey by default) and every answer flows through
// the session, so validation messages and derived values match the preview.
package tui
