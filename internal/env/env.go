package env

import (
	"os"
	"path/filepath"
)

// 构建时通过 -ldflags "-X dfx-site/internal/env.Version=..." 写入
var Version string = "dev"

// (default: %USERPROFILE%/.dfx-site on Windows, $HOME/.dfx-site on Linux)
var SiteDir string = GetSiteDir()

/**
 * Get dfx-site home directory path
 * @returns {string} Returns the directory searched for config.yaml after the working directory
 */
func GetSiteDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".dfx-site")
}
