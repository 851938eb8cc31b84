package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppName names the config and data directories.
const AppName = "wordmatch"

// wordListPatterns are the file names a words directory is recognized by.
var wordListPatterns = []string{
	"*.txt", "*.words", "*.json",
	"*.txt.sz", "*.txt.zst", "*.txt.lz4",
	"*.json.sz", "*.json.zst", "*.json.lz4",
}

// PathResolver locates the words directory and config files relative to
// the running binary.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a path resolver for the current executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// candidates lists the places a words directory may live, most specific first.
func (pr *PathResolver) candidates(userSpecifiedPath string) []string {
	var paths []string
	if filepath.IsAbs(userSpecifiedPath) {
		paths = append(paths, userSpecifiedPath)
	} else if userSpecifiedPath != "" {
		if cwd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(cwd, userSpecifiedPath))
		}
		paths = append(paths, pr.ResolveRelativePath(userSpecifiedPath))
	}
	return append(paths,
		filepath.Join(pr.executableDir, "words"),
		filepath.Join(filepath.Dir(pr.executableDir), "words"),
		filepath.Join(pr.configDir, "words"),
	)
}

// GetWordsDir resolves the directory holding word lists. When no candidate
// contains any, the first candidate is returned so callers can report it.
func (pr *PathResolver) GetWordsDir(userSpecifiedPath string) string {
	paths := pr.candidates(userSpecifiedPath)
	for _, path := range paths {
		if HasWordLists(path) {
			log.Debugf("Found words directory: %s", path)
			return path
		}
		log.Debugf("Words directory candidate not valid: %s", path)
	}
	return paths[0]
}

// HasWordLists reports whether dir contains at least one word list file.
func HasWordLists(dir string) bool {
	if !IsDir(dir) {
		return false
	}
	for _, pattern := range wordListPatterns {
		if matches, err := filepath.Glob(filepath.Join(dir, pattern)); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// ResolveRelativePath resolves a path relative to the executable directory
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}

// GetRuntimeInfo returns debug information about the runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
