//go:build !debug

package engine

// debugBuild enables developer key bindings; build with -tags debug.
const debugBuild = false
