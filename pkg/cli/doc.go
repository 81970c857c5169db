// Package cli implements malt's argument and option resolution layer.
//
// It reconciles two views of the same invocation: the raw argument
// vector captured at process start, and the frozen option table produced
// once structured parsing finishes. Flag queries work in both states and
// must agree once parsing completes.
package cli
