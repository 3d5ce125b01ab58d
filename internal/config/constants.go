package config

// Lua schema field names and globals
const (
	luaGlobalYmmod       = "ymmod"
	luaFieldOutput       = "output"
	luaFieldAutoDevtools = "auto_devtools"
	luaFieldUserAgent    = "user_agent"
	luaFieldChannel      = "channel"
)
