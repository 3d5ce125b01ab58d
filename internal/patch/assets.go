package patch

import (
	"fmt"
	"os"
	"path/filepath"
)

// AssetDir is where the generated renderer assets land inside the working
// tree. HTML documents reference it by absolute app path.
const AssetDir = "app/yandexMusicMod"

// GeneratedAssets returns the extra files the pipeline materializes into
// AssetDir. They are opaque blobs copied verbatim.
func GeneratedAssets() map[string]string {
	return map[string]string{
		"renderer.js":  modRendererJS,
		"renderer.css": modRendererCSS,
	}
}

// WriteAssets materializes the generated assets under root.
func WriteAssets(root string) error {
	dir := filepath.Join(root, filepath.FromSlash(AssetDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}
	for name, content := range GeneratedAssets() {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("write asset %s: %w", name, err)
		}
	}
	return nil
}

// modMainJS is appended to the application's main process entry script.
// It owns the mod settings file and the IPC surface the renderer talks to.
const modMainJS = `
const electron = require("electron");
const fs = require("fs");
const path = require("path");
const process = require("process");

const appFolder = electron.app.getPath("userData");
const settingsFilePath = path.join(appFolder, "mod_settings.json");
const defaultDownloadPath = path.join(appFolder, "Downloads");

// Create settings directory
fs.mkdir(appFolder, { recursive: true }, (err) => {
  if (err) return console.error(err);
  console.log("mod_settings directory created successfully!");
});

// Create default download directory
fs.mkdir(defaultDownloadPath, { recursive: true }, (err) => {
  if (err) return console.error(err);
  console.log("Default download directory created successfully!");
});

// Initialize settings file
if (!fs.existsSync(settingsFilePath)) {
  const initialSettings = {
    downloadFolderPath: defaultDownloadPath,
  };
  fs.writeFileSync(settingsFilePath, JSON.stringify(initialSettings, null, 2));
} else {
  try {
    const settings = JSON.parse(fs.readFileSync(settingsFilePath, "utf8"));
    if (!settings.downloadFolderPath) {
      settings.downloadFolderPath = defaultDownloadPath;
      fs.writeFileSync(settingsFilePath, JSON.stringify(settings, null, 2));
    }
  } catch (e) {
    const initialSettings = {
      downloadFolderPath: defaultDownloadPath,
    };
    fs.writeFileSync(settingsFilePath, JSON.stringify(initialSettings, null, 2));
  }
}

// IPC handlers for settings
electron.ipcMain.handle("yandexMusicMod.getStorageValue", (_ev, key) => {
  const settings = fs.readFileSync(settingsFilePath, "utf8") || "{}";
  const parsed = JSON.parse(settings);
  return parsed[key] !== undefined ? parsed[key] : null;
});

electron.ipcMain.on("yandexMusicMod.setStorageValue", (_ev, key, value) => {
  const settings = JSON.parse(fs.readFileSync(settingsFilePath, "utf8"));
  settings[key] = value;
  fs.writeFileSync(settingsFilePath, JSON.stringify(settings, null, 2));

  electron.BrowserWindow.getAllWindows().forEach((window) =>
    window.webContents.send("yandexMusicMod.storageValueUpdated", key, value),
  );
});

// Folder selection dialog
electron.ipcMain.handle("yandexMusicMod.selectDownloadFolder", async (_ev) => {
  const result = await electron.dialog.showOpenDialog({
    properties: ["openDirectory"],
    title: "Select download folder",
  });

  if (result.canceled || !result.filePaths.length) {
    return { success: false, path: null };
  }

  return { success: true, path: result.filePaths[0] };
});

// Open folder
electron.ipcMain.handle("yandexMusicMod.openFolder", async (_ev, folderPath) => {
  try {
    require("child_process").exec(` + "`" + `start "" "${folderPath}"` + "`" + `);
    return { success: true };
  } catch (error) {
    console.error("Failed to open folder:", error);
    return { success: false, error: error.message };
  }
});

// Open download directory
electron.ipcMain.on("yandexMusicMod.openDownloadDirectory", (_ev) => {
  let saveFolder;
  try {
    const settings = JSON.parse(fs.readFileSync(settingsFilePath, "utf8"));
    saveFolder = settings.downloadFolderPath || process.env.USERPROFILE + "\\YandexMod Download";
  } catch (e) {
    saveFolder = process.env.USERPROFILE + "\\YandexMod Download";
  }
  require("child_process").exec('start "" "' + saveFolder + '"');
});

console.log("YandexMusicMod main.js loaded successfully!");
`

// modPreloadJS is appended to the preload script; it bridges the IPC surface
// into the renderer world.
const modPreloadJS = `
const { contextBridge, ipcRenderer } = require("electron");

// Expose mod API to the renderer process
contextBridge.exposeInMainWorld("yandexMusicMod", {
  getStorageValue: (key) => ipcRenderer.invoke("yandexMusicMod.getStorageValue", key),
  setStorageValue: (key, value) => ipcRenderer.send("yandexMusicMod.setStorageValue", key, value),
  onStorageValueUpdated: (callback) => {
    ipcRenderer.on("yandexMusicMod.storageValueUpdated", (event, key, value) => {
      callback(key, value);
    });
  },
  selectDownloadFolder: () => ipcRenderer.invoke("yandexMusicMod.selectDownloadFolder"),
  openFolder: (folderPath) => ipcRenderer.invoke("yandexMusicMod.openFolder", folderPath),
  openDownloadDirectory: () => ipcRenderer.send("yandexMusicMod.openDownloadDirectory"),
});

console.log("YandexMusicMod preload.js loaded successfully!");
`

// modRendererJS is materialized into AssetDir and referenced from every HTML
// document.
const modRendererJS = `
(function() {
  console.log("YandexMusicMod renderer.js loaded!");

  // Wait for the page to load
  window.addEventListener("load", function() {
    console.log("YandexMusicMod: Page loaded");

    // Add mod indicator
    const modIndicator = document.createElement("div");
    modIndicator.style.cssText = "position:fixed;bottom:10px;right:10px;padding:5px 10px;background:rgba(0,0,0,0.7);color:#fff;border-radius:5px;font-size:12px;z-index:9999;";
    modIndicator.textContent = "YandexMusicMod";
    document.body.appendChild(modIndicator);

    // Hide indicator after 5 seconds
    setTimeout(() => {
      modIndicator.style.opacity = "0";
      modIndicator.style.transition = "opacity 0.5s";
      setTimeout(() => modIndicator.remove(), 500);
    }, 5000);
  });
})();
`

// modRendererCSS is materialized into AssetDir next to the renderer script.
const modRendererCSS = `
/* YandexMusicMod custom styles */

/* Hide upgrade banners */
.upgrade-banner,
.plus-promo,
.subscription-promo {
  display: none !important;
}

/* Custom scrollbar */
::-webkit-scrollbar {
  width: 8px;
}

::-webkit-scrollbar-track {
  background: rgba(0, 0, 0, 0.1);
}

::-webkit-scrollbar-thumb {
  background: rgba(255, 255, 255, 0.3);
  border-radius: 4px;
}

::-webkit-scrollbar-thumb:hover {
  background: rgba(255, 255, 255, 0.5);
}
`
