package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectPlatformTable exposes the detected host to a settings file as a
// read-only global named "platform". Settings files branch on it to pick
// per-OS values, for example a different output directory on Windows or
// a distro-specific user agent.
func InjectPlatformTable(L *lua.LState, info *Info) error {
	tbl := L.NewTable()
	L.SetField(tbl, "os", lua.LString(info.OS))
	L.SetField(tbl, "arch", lua.LString(info.Arch))
	L.SetField(tbl, "is_linux", lua.LBool(info.IsLinux()))
	L.SetField(tbl, "is_macos", lua.LBool(info.IsMacOS()))
	L.SetField(tbl, "is_windows", lua.LBool(info.IsWindows()))

	if info.IsLinux() && info.Platform != "" {
		distro := L.NewTable()
		L.SetField(distro, "id", lua.LString(info.Platform))
		L.SetField(distro, "family", lua.LString(info.Family))
		L.SetField(distro, "version", lua.LString(info.Version))
		L.SetField(tbl, "distro", distro)
	} else {
		L.SetField(tbl, "distro", lua.LNil)
	}

	L.SetGlobal("platform", readOnly(L, tbl))
	return nil
}

// readOnly wraps a table in an empty proxy whose metatable redirects
// reads to the original and rejects every write, including writes to
// existing keys.
func readOnly(L *lua.LState, tbl *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", tbl)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
