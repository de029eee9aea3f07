// Package util holds small standalone helpers: colored diagnostic
// strings, shared by callers that print directly to a terminal rather
// than through the log package, and the error kinds with their
// DescribeError formatter (errors.go).
package util

import "github.com/fatih/color"

// Red, Cyan and Yellow wrap a string in the given terminal color,
// used the way daemon/client diagnostics compose multi-color
// messages, e.g. Red("...") + Cyan("...") + Red("...").
func Red(s string) string {
	return color.New(color.FgRed).SprintFunc()(s)
}

func Cyan(s string) string {
	return color.New(color.FgCyan).SprintFunc()(s)
}

func Yellow(s string) string {
	return color.New(color.FgYellow).SprintFunc()(s)
}

func Green(s string) string {
	return color.New(color.FgGreen).SprintFunc()(s)
}
