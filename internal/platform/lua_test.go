package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func newLuaState(t *testing.T, info *Info) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}
	return L
}

func evalLua(t *testing.T, L *lua.LState, code string) lua.LValue {
	t.Helper()
	if err := L.DoString(code); err != nil {
		t.Fatalf("DoString(%q) error = %v", code, err)
	}
	v := L.Get(-1)
	L.Pop(1)
	return v
}

func TestInjectPlatformTable(t *testing.T) {
	linux := &Info{OS: "linux", Arch: "amd64", ArchRaw: "amd64",
		Platform: "ubuntu", Family: FamilyDebian, Version: "24.04"}
	macos := &Info{OS: "darwin", Arch: "arm64", ArchRaw: "arm64"}
	windows := &Info{OS: "windows", Arch: "amd64", ArchRaw: "amd64"}

	tests := []struct {
		name string
		info *Info
		code string
		want lua.LValue
	}{
		{"linux os", linux, `return platform.os`, lua.LString("linux")},
		{"linux arch", linux, `return platform.arch`, lua.LString("amd64")},
		{"linux is_linux", linux, `return platform.is_linux`, lua.LTrue},
		{"linux is_windows", linux, `return platform.is_windows`, lua.LFalse},
		{"linux distro id", linux, `return platform.distro.id`, lua.LString("ubuntu")},
		{"linux distro family", linux, `return platform.distro.family`, lua.LString("debian")},
		{"linux distro version", linux, `return platform.distro.version`, lua.LString("24.04")},
		{"macos is_macos", macos, `return platform.is_macos`, lua.LTrue},
		{"macos is_linux", macos, `return platform.is_linux`, lua.LFalse},
		{"macos distro nil", macos, `return platform.distro`, lua.LNil},
		{"windows is_windows", windows, `return platform.is_windows`, lua.LTrue},
		{"windows distro nil", windows, `return platform.distro`, lua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalLua(t, newLuaState(t, tt.info), tt.code)
			if got.Type() != tt.want.Type() || got.String() != tt.want.String() {
				t.Errorf("%s = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTableNoDistro(t *testing.T) {
	// Linux without distribution details, as after a failed gopsutil
	// lookup.
	L := newLuaState(t, &Info{OS: "linux", Arch: "amd64", ArchRaw: "amd64"})
	if got := evalLua(t, L, `return platform.distro`); got != lua.LNil {
		t.Errorf("distro = %v, want nil", got)
	}
	if got := evalLua(t, L, `return platform.is_linux`); got != lua.LTrue {
		t.Errorf("is_linux = %v, want true", got)
	}
}

func TestPlatformTableReadOnly(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"overwrite existing key", `platform.os = "windows"`},
		{"add new key", `platform.channel = "beta"`},
		{"flip boolean", `platform.is_linux = false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newLuaState(t, &Info{OS: "linux", Arch: "amd64"})
			if err := L.DoString(tt.code); err == nil {
				t.Error("expected error writing to platform table but got none")
			}
		})
	}
}

func TestPlatformTableInSettingsFile(t *testing.T) {
	L := newLuaState(t, &Info{
		OS: "linux", Arch: "amd64", ArchRaw: "amd64",
		Platform: "ubuntu", Family: FamilyDebian, Version: "24.04",
	})

	// The shape a real ymmod.lua takes: per-OS output directory and a
	// distro-tagged user agent.
	got := evalLua(t, L, `
		local output = platform.is_windows and "builds" or ".versions"
		local agent = "YandexMusicMod"
		if platform.distro and platform.distro.family == "debian" then
			agent = agent .. " (" .. platform.distro.id .. ")"
		end
		return output .. "|" .. agent
	`)
	if want := ".versions|YandexMusicMod (ubuntu)"; got.String() != want {
		t.Errorf("settings expression = %q, want %q", got, want)
	}
}
