// Package extract unpacks the two archive formats the patcher meets:
// the downloaded installer container and the app.asar resource archive
// found inside it.
//
// Neither format has a single reliable tool across platforms, so each
// archive kind gets an ordered fallback chain: external tools are tried
// first under their common names, and a built-in decoder runs last.
// The first candidate that succeeds wins; if the whole chain fails the
// caller gets a diagnostic naming every attempted candidate together
// with platform-specific install guidance.
package extract
