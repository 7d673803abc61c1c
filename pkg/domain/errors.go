package domain

import "errors"

// ErrInvalidSymbol is returned when a word contains a letter outside the alphabet.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrUnknownFormat is returned when a format name is not recognised.
var ErrUnknownFormat = errors.New("unknown format")
