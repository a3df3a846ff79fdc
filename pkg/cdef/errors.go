package cdef

import "errors"

var (
	// Configuration errors 🗂️
	ErrConfiguration = errors.New("❌ invalid configuration")

	// Probe errors 🔍
	ErrUnavailableHeader = errors.New("❌ header unavailable")
	ErrProbe             = errors.New("❌ probe failed")

	// Check errors 📋
	ErrStale = errors.New("❌ generated files are out of date")
)
