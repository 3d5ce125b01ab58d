// Package pipeline orchestrates a full build run: download the installer,
// unpack it, unpack the application archive inside it, and produce a patched
// copy of the application sources.
//
// A run is strictly sequential and writes everything under one build
// directory keyed by version. Failed runs leave their partial directory on
// disk; the next run for the same version starts by wiping it, so reruns are
// always clean-slate. Concurrent runs against the same output root and
// version are not supported.
package pipeline
