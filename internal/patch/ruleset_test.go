package patch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRuleTargetsUnique(t *testing.T) {
	seen := make(map[string]bool)
	all := append(DefaultRules(Options{AutoDevtools: true}), HTMLRules()...)
	for _, rule := range all {
		if seen[rule.Target] {
			t.Errorf("target %q owned by more than one rule", rule.Target)
		}
		seen[rule.Target] = true
	}
}

func TestPackageJSONRule(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{
  "name": "YandexMusic",
  "dependencies": {"@yandex-chats/signer": "1.0.0", "electron": "28.0.0"},
  "devDependencies": {"@yandex-chats/signer": "1.0.0"},
  "common": {"REFRESH_EVENT_TRIGGER_TIME_MS": 60000, "OTHER": 1},
  "appConfig": {"enableDevTools": false, "enableAutoUpdate": true}
}`,
	})

	if _, err := NewEngine().Apply(root, []Rule{packageJSONRule()}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(readTree(t, root, "package.json")), &doc); err != nil {
		t.Fatalf("output not valid json: %v", err)
	}

	deps := doc["dependencies"].(map[string]any)
	if _, ok := deps["@yandex-chats/signer"]; ok {
		t.Error("banned dependency survived")
	}
	if _, ok := deps["electron"]; !ok {
		t.Error("unrelated dependency was removed")
	}
	if devDeps := doc["devDependencies"].(map[string]any); len(devDeps) != 0 {
		t.Errorf("devDependencies = %v, want empty", devDeps)
	}

	if doc["name"] != "YandexMusicMod" {
		t.Errorf("name = %v", doc["name"])
	}
	common := doc["common"].(map[string]any)
	if common["REFRESH_EVENT_TRIGGER_TIME_MS"] != float64(999999999) {
		t.Errorf("REFRESH_EVENT_TRIGGER_TIME_MS = %v", common["REFRESH_EVENT_TRIGGER_TIME_MS"])
	}
	if common["OTHER"] != float64(1) {
		t.Error("unrelated common key was touched")
	}
	// common exists, so the conditional set lands even for a new key.
	if common["SUPPORT_URL"] != "<empty>" {
		t.Errorf("SUPPORT_URL = %v, want <empty>", common["SUPPORT_URL"])
	}
	if _, ok := doc["meta"]; ok {
		t.Error("meta section created on a manifest that lacks one")
	}

	appConfig := doc["appConfig"].(map[string]any)
	if appConfig["enableDevTools"] != true || appConfig["enableAutoUpdate"] != false {
		t.Errorf("appConfig = %v", appConfig)
	}

	build := doc["build"].(map[string]any)
	if build["appId"] != "ru.yandex.desktop.music.mod" {
		t.Errorf("build.appId = %v", build["appId"])
	}
}

func TestDefaultRulesAutoDevtools(t *testing.T) {
	hasDevtools := func(rules []Rule) bool {
		for _, rule := range rules {
			if rule.Target != "main/lib/createWindow.js" {
				continue
			}
			for _, r := range rule.Text.Replacements {
				if strings.Contains(r.New, "openDevTools") {
					return true
				}
			}
		}
		return false
	}

	if hasDevtools(DefaultRules(Options{})) {
		t.Error("devtools replacement present without the option")
	}
	if !hasDevtools(DefaultRules(Options{AutoDevtools: true})) {
		t.Error("devtools replacement missing with the option")
	}
}

func TestAnalyticsBlockerCoversLists(t *testing.T) {
	js := analyticsBlockerJS()
	for _, url := range BlockedAnalyticsURLs {
		if !strings.Contains(js, url) {
			t.Errorf("blocker does not mention %s", url)
		}
	}
	for _, header := range BannedHeaders {
		if !strings.Contains(js, header) {
			t.Errorf("blocker does not mention header %s", header)
		}
	}
}

func TestWriteAssetsAndHTMLRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/index.html":       "<html><head></head></html>",
		"app/pages/modal.html": "<html><head><meta charset=\"utf-8\"></head></html>",
	})

	if err := WriteAssets(root); err != nil {
		t.Fatalf("WriteAssets() error = %v", err)
	}
	for name := range GeneratedAssets() {
		path := filepath.Join(root, filepath.FromSlash(AssetDir), name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("asset %s not written: %v", name, err)
		}
	}

	engine := NewEngine()
	// The rewrite pass must be safe to run twice.
	for i := 0; i < 2; i++ {
		if _, err := engine.Apply(root, HTMLRules()); err != nil {
			t.Fatalf("Apply() #%d error = %v", i+1, err)
		}
	}

	for _, rel := range []string{"app/index.html", "app/pages/modal.html"} {
		content := readTree(t, root, rel)
		if got := strings.Count(content, "/yandexMusicMod/renderer.js"); got != 1 {
			t.Errorf("%s script injections = %d, want 1", rel, got)
		}
		if got := strings.Count(content, "/yandexMusicMod/renderer.css"); got != 1 {
			t.Errorf("%s stylesheet injections = %d, want 1", rel, got)
		}
	}
}

func TestDefaultRulesEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":             `{"name": "YandexMusic"}`,
		"main/config.js":           "exports.config = { enableDevTools: false, enableAutoUpdate: true };",
		"main/lib/systemMenu.js":   "if (deviceInfo_js_1.devicePlatform === platform_js_1.Platform.MACOS) { build(); }",
		"main/lib/createWindow.js": "const window = new BrowserWindow({ show: false, minWidth: 768, minHeight: 650 });\nreturn window;",
		"main/index.js":            "(0, createWindow_js_1.createWindow)();",
		"main/lib/preload.js":      "// preload",
		"app/media/splash_screen/a.gif": "gif",
	})

	outcomes, err := NewEngine().Apply(root, DefaultRules(Options{}))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	for _, outcome := range outcomes {
		if outcome.Status != StatusApplied {
			t.Errorf("%s: status = %s, want %s", outcome.Target, outcome.Status, StatusApplied)
		}
	}

	if got := readTree(t, root, "main/config.js"); !strings.Contains(got, "enableDevTools: true") {
		t.Errorf("config.js not patched: %q", got)
	}
	if got := readTree(t, root, "main/lib/systemMenu.js"); !strings.Contains(got, "enableSystemToolbar") ||
		!strings.HasPrefix(got, settingsReaderJS) {
		t.Error("systemMenu.js missing toolbar rewrite or settings prologue")
	}
	if got := readTree(t, root, "main/index.js"); !strings.Contains(got, "session.defaultSession.webRequest") ||
		!strings.Contains(got, "// YandexMusicMod main.js") {
		t.Error("index.js missing analytics blocker or appended block")
	}
	if got := readTree(t, root, "main/lib/preload.js"); !strings.Contains(got, "contextBridge") {
		t.Error("preload.js missing appended bridge")
	}
	if _, err := os.Stat(filepath.Join(root, "app", "media", "splash_screen")); !os.IsNotExist(err) {
		t.Error("splash screen directory still present")
	}
}
