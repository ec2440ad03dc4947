// Package application coordinates registry operations for the terminal UI and
// the demo command. Each operation is traced, logged and announced on a change
// broker; list projections are served from a revision-keyed cache.
package application
