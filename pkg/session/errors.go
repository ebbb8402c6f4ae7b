package session

import "errors"

var (
	// ErrEmptyName is returned by Save when the trimmed name is empty.
	ErrEmptyName = errors.New(MessageEmptyName)
	// ErrUnknownField is returned when an operation names a field id that is
	// not part of the current form.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrUnknownFieldType is returned by AddField for types outside the palette.
	ErrUnknownFieldType = errors.New("session: unknown field type")
	// ErrReadOnlyField is returned when a value is assigned to a derived field.
	ErrReadOnlyField = errors.New("session: derived fields are read-only")
)
