// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// MinProgressBarWidth is the minimum width for a usable seek slider.
	MinProgressBarWidth = 5

	// PopupOverhead is the vertical space a popup dialog uses around its
	// content: border, title, footer and the blank lines between them.
	PopupOverhead = 8

	// FooterHeight is the space reserved for the short help line.
	FooterHeight = 1
)
