// Package slug normalizes metadata values into file-system friendly
// path components and expands %{token} path templates with them.
package slug
