// Package config loads the optional ymmod.lua settings file.
//
// Settings are declarative Lua executed in a sandboxed VM with a platform
// table injected, so a settings file can vary values per operating system
// without being able to touch the filesystem or run commands. A missing
// settings file yields the defaults.
package config
