// Package ui holds the terminal color themes shared by the CLI reporters and
// the dashboard, and honors NO_COLOR.
package ui
