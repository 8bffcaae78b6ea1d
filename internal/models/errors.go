package models

import "errors"

var (
	// ErrNoBackup is returned by RestoreOriginal when CreateBackup was not called.
	ErrNoBackup = errors.New("no backup to restore")
	// ErrIndexOutOfRange is returned when a list position does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownComponent is returned for names that are not a record type.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnknownYearType is returned for year types other than calendar, water or irrigation.
	ErrUnknownYearType = errors.New("unknown year type")
)
