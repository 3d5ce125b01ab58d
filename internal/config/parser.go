package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jhon-crow/ymmod/internal/platform"
)

// Parser represents a Lua settings parser with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new settings parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseFile parses a Lua settings file from disk. A missing file is not an
// error; it yields the defaults.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	settings, err := p.ParseString(ctx, string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// ParseString parses Lua settings from a string.
// This is useful for testing and in-memory settings generation.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Settings, error) {
	L := newSandboxedVM()
	defer L.Close()

	// Detect platform and inject platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractSettings(L)
}

// ParseError represents a settings parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractSettings extracts settings from a Lua state.
// It expects a global "ymmod" table with the settings fields.
func extractSettings(L *lua.LState) (*Settings, error) {
	ymmodTable := L.GetGlobal(luaGlobalYmmod)
	if ymmodTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'ymmod' table",
			Detail:  fmt.Sprintf("expected table, got %s", ymmodTable.Type()),
		}
	}

	settings := DefaultSettings()
	table := ymmodTable.(*lua.LTable)

	if outputVal := table.RawGetString(luaFieldOutput); outputVal.Type() == lua.LTString {
		settings.Output = outputVal.String()
	}

	if devtoolsVal := table.RawGetString(luaFieldAutoDevtools); devtoolsVal.Type() == lua.LTBool {
		settings.AutoDevtools = bool(devtoolsVal.(lua.LBool))
	}

	if uaVal := table.RawGetString(luaFieldUserAgent); uaVal.Type() == lua.LTString {
		settings.UserAgent = uaVal.String()
	}

	if channelVal := table.RawGetString(luaFieldChannel); channelVal.Type() == lua.LTString {
		settings.Channel = channelVal.String()
	}

	if err := settings.Validate(); err != nil {
		return nil, &ParseError{
			Message: "settings validation failed",
			Detail:  err.Error(),
		}
	}

	return settings, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		// Extract the most relevant part of the error
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
