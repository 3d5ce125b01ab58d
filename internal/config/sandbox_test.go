package config

import (
	"context"
	"testing"
)

func TestSandboxBlocksUnsafeGlobals(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"os.execute", `ymmod = { output = tostring(os.execute("true")) }`},
		{"io.open", `ymmod = { output = tostring(io.open("/etc/passwd")) }`},
		{"require", `require("socket"); ymmod = {}`},
		{"dofile", `dofile("other.lua"); ymmod = {}`},
		{"loadstring", `loadstring("return 1")(); ymmod = {}`},
		{"debug", `debug.getinfo(1); ymmod = {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).ParseString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("expected sandbox violation to error but got none")
			}
		})
	}
}

func TestSandboxKeepsSafeLibraries(t *testing.T) {
	code := `
ymmod = {
  output = string.format("%s-%d", "builds", math.floor(2.9)),
  channel = table.concat({"sta", "ble"}),
}
`
	settings, err := NewParser(nil).ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if settings.Output != "builds-2" {
		t.Errorf("Output = %q, want builds-2", settings.Output)
	}
	if settings.Channel != "stable" {
		t.Errorf("Channel = %q, want stable", settings.Channel)
	}
}
