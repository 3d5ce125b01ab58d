package patch

import (
	"encoding/json"
	"fmt"
)

// The block lists below are immutable configuration data owned by the rule
// set. They feed the generated snippets in DefaultRules, so a future rule
// set variant can carry its own lists without touching process state.
var (
	// BlockedAnalyticsURLs are analytics and telemetry endpoints the
	// patched main process cancels at the session level.
	BlockedAnalyticsURLs = []string{
		"https://yandex.ru/clck/*",
		"https://mc.yandex.ru/*",
		"https://api.music.yandex.net/dynamic-pages/trigger/*",
		"https://log.strm.yandex.ru/*",
		"https://api.acquisition-gwe.plus.yandex.net/*",
		"https://api.events.plus.yandex.net/*",
		"https://events.plus.yandex.net/*",
		"https://plus.yandex.net/*",
		"https://yandex.ru/ads/*",
		"https://strm.yandex.ru/ping",
	}

	// BannedHeaders are stripped from every API request.
	BannedHeaders = []string{"x-yandex-music-device", "x-request-id"}

	// BannedDependencies are removed from the package metadata; the signer
	// package breaks outside the official distribution.
	BannedDependencies = []string{"@yandex-chats/signer"}
)

const (
	modName   = "YandexMusicMod"
	modAuthor = "YandexMusicBetaModeFastLP [github.com/Jhon-Crow/YandexMusicBetaModeFastLP]"
	modAppID  = "ru.yandex.desktop.music.mod"
)

// settingsReaderJS is prologue code prepended to scripts that need access to
// the mod settings file before any application code runs.
const settingsReaderJS = `
const fs = require("fs");
const path = require("path");
const electron = require("electron");
const appFolder = electron.app.getPath("userData");
const settingsFilePath = path.join(appFolder, "mod_settings.json");
let enableSystemToolbar = false;
try {
  enableSystemToolbar = JSON.parse(fs.readFileSync(settingsFilePath, "utf8"))["devtools/systemToolbar"];
} catch (e) {}
`

// analyticsBlockerJS renders the session-level request blocker from the URL
// and header lists.
func analyticsBlockerJS() string {
	urls, _ := json.Marshal(BlockedAnalyticsURLs)
	headers, _ := json.Marshal(BannedHeaders)

	return fmt.Sprintf(`
const { session } = require("electron");
session.defaultSession.webRequest.onBeforeRequest(
  {
    urls: %s,
  },
  (details, callback) => {
    callback({ cancel: true });
  },
);

session.defaultSession.webRequest.onBeforeSendHeaders(
  {
    urls: ["https://api.music.yandex.net/*"],
  },
  (details, callback) => {
    const bannedHeaders = %s;
    bannedHeaders.forEach((header) => {
      details.requestHeaders[header] = undefined;
    });
    callback({ requestHeaders: details.requestHeaders });
  },
);
`, urls, headers)
}

// Options tune the rule table for one run.
type Options struct {
	// AutoDevtools opens the devtools as soon as the main window exists.
	AutoDevtools bool
}

// DefaultRules returns the fixed patch table, in application order. Targets
// are unique: every file is owned by exactly one rule.
func DefaultRules(opts Options) []Rule {
	return []Rule{
		packageJSONRule(),
		configJSRule(),
		systemMenuRule(),
		createWindowRule(opts.AutoDevtools),
		mainJSRule(),
		preloadRule(),
		{
			Target: "app/media/splash_screen",
			Kind:   KindDirectoryRemoval,
		},
	}
}

// HTMLRules returns the tree-rewrite pass that wires the generated renderer
// assets into every HTML document. It runs as its own pipeline stage, after
// the assets exist.
func HTMLRules() []Rule {
	return []Rule{
		{
			Target: "app",
			Kind:   KindTreeRewrite,
			Tree: &TreePatch{
				Ext: ".html",
				Replacement: Replacement{
					Old: "<head>",
					New: `<head><script src="/yandexMusicMod/renderer.js"></script>
        <link rel="stylesheet" href="/yandexMusicMod/renderer.css">`,
				},
			},
		},
	}
}

func packageJSONRule() Rule {
	ops := make([]JSONOp, 0, 24)
	for _, dep := range BannedDependencies {
		ops = append(ops,
			JSONOp{Op: OpRemove, Path: []string{"dependencies", dep}},
			JSONOp{Op: OpRemove, Path: []string{"devDependencies", dep}},
		)
	}

	ops = append(ops,
		// Effectively disable refresh and update polling.
		JSONOp{Op: OpSetIfParent, Path: []string{"common", "REFRESH_EVENT_TRIGGER_TIME_MS"}, Value: 999999999},
		JSONOp{Op: OpSetIfParent, Path: []string{"common", "UPDATE_POLL_INTERVAL_MS"}, Value: 999999999},
		JSONOp{Op: OpSetIfParent, Path: []string{"common", "SUPPORT_URL"}, Value: "<empty>"},

		JSONOp{Op: OpSet, Path: []string{"name"}, Value: modName},
		JSONOp{Op: OpSet, Path: []string{"author"}, Value: modAuthor},

		JSONOp{Op: OpSetIfParent, Path: []string{"meta", "PRODUCT_NAME"}, Value: "Yandex Music Mod"},
		JSONOp{Op: OpSetIfParent, Path: []string{"meta", "PRODUCT_NAME_LOCALIZED"}, Value: "Yandex Music Mod"},
		JSONOp{Op: OpSetIfParent, Path: []string{"meta", "APP_ID"}, Value: modAppID},
		JSONOp{Op: OpSetIfParent, Path: []string{"meta", "COPYRIGHT"}, Value: modAuthor},
		JSONOp{Op: OpSetIfParent, Path: []string{"meta", "TRADEMARK"}, Value: modAuthor},

		JSONOp{Op: OpSetIfParent, Path: []string{"appConfig", "enableDevTools"}, Value: true},
		JSONOp{Op: OpSetIfParent, Path: []string{"appConfig", "enableAutoUpdate"}, Value: false},
		JSONOp{Op: OpSetIfParent, Path: []string{"appConfig", "enableUpdateByProbability"}, Value: false},
		JSONOp{Op: OpSetIfParent, Path: []string{"appConfig", "systemDefaultLanguage"}, Value: "ru"},

		JSONOp{Op: OpSet, Path: []string{"build"}, Value: map[string]any{
			"appId":       modAppID,
			"productName": "Яндекс Музыка",
			"win":         map[string]any{"icon": "assets/icon.ico"},
			"mac":         map[string]any{"icon": "assets/icon.ico"},
			"linux":       map[string]any{"icon": "assets/icon.png"},
			"extraResources": []any{map[string]any{
				"from":   "assets/",
				"to":     "assets/",
				"filter": []any{"**/*"},
			}},
		}},
	)

	return Rule{Target: "package.json", Kind: KindJSONMutation, JSON: ops}
}

func configJSRule() Rule {
	return Rule{
		Target: "main/config.js",
		Kind:   KindTextReplace,
		Text: &TextPatch{
			Replacements: []Replacement{
				{Old: "enableDevTools: false", New: "enableDevTools: true"},
				{Old: "enableDevTools:false", New: "enableDevTools: true"},
				{Old: "enableAutoUpdate: true", New: "enableAutoUpdate: false"},
				{Old: "enableAutoUpdate:true", New: "enableAutoUpdate: false"},
			},
		},
	}
}

func systemMenuRule() Rule {
	return Rule{
		Target: "main/lib/systemMenu.js",
		Kind:   KindTextReplace,
		Text: &TextPatch{
			Prologue: settingsReaderJS,
			Replacements: []Replacement{
				// The system toolbar follows the mod setting instead of
				// being macOS-only.
				{
					Old: "deviceInfo_js_1.devicePlatform === platform_js_1.Platform.MACOS",
					New: "enableSystemToolbar",
				},
			},
		},
	}
}

func createWindowRule(autoDevtools bool) Rule {
	replacements := []Replacement{
		{Old: "config_js_1.config.app.enableDevTools", New: "true"},
		{Old: "titleBarStyle: 'hidden'", New: "titleBarStyle: !enableSystemToolbar && 'hidden'"},
		{Old: "titleBarStyle:'hidden'", New: "titleBarStyle: !enableSystemToolbar && 'hidden'"},
		{Old: "minWidth: 768", New: "minWidth: 360"},
		{Old: "minHeight: 650", New: "minHeight: 550"},
		{Old: "show: false", New: "show: true"},
	}
	if autoDevtools {
		replacements = append(replacements, Replacement{
			Old: "return window",
			New: "window.webContents.openDevTools();\nreturn window",
		})
	}

	return Rule{
		Target: "main/lib/createWindow.js",
		Kind:   KindTextReplace,
		Text: &TextPatch{
			Prologue:     settingsReaderJS,
			Replacements: replacements,
		},
	}
}

func mainJSRule() Rule {
	return Rule{
		Target: "main/index.js",
		Kind:   KindTextAppend,
		Text: &TextPatch{
			Replacements: []Replacement{
				{Old: "createWindow)();", New: "createWindow)();" + analyticsBlockerJS()},
			},
			Separator: "\n\n// YandexMusicMod main.js\n",
			Block:     modMainJS,
		},
	}
}

func preloadRule() Rule {
	return Rule{
		Target: "main/lib/preload.js",
		Kind:   KindTextAppend,
		Text: &TextPatch{
			Separator: "\n\n// YandexMusicMod preload.js\n",
			Block:     modPreloadJS,
		},
	}
}
