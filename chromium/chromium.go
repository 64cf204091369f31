// Package chromium locates a Chrome/Chromium binary and builds the allocator
// options used to launch it.
package chromium

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"webshotter/config"
)

// ErrExecutableNotFound is returned when no Chrome binary could be located.
var ErrExecutableNotFound = errors.New("chromium: no Chrome executable found")

// FindExecutable locates the Chrome binary, honoring CHROME_PATH first.
func FindExecutable() (string, error) {
	if envPath := os.Getenv("CHROME_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", errors.Wrapf(err, "chromium: CHROME_PATH %q", envPath)
		}
		return envPath, nil
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "windows":
		candidates = []string{
			filepath.Join(os.Getenv("ProgramFiles"), "Google/Chrome/Application/chrome.exe"),
			filepath.Join(os.Getenv("ProgramFiles(x86)"), "Google/Chrome/Application/chrome.exe"),
			filepath.Join(os.Getenv("LocalAppData"), "Google/Chrome/Application/chrome.exe"),
		}
	default:
		candidates = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	return "", ErrExecutableNotFound
}

// AllocatorOptions translates the launch configuration into chromedp exec
// allocator options.
func AllocatorOptions(cfg *config.Config) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption(nil), chromedp.DefaultExecAllocatorOptions[:]...)

	opts = append(opts,
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
	)
	if cfg.DisableAutomation {
		opts = append(opts, chromedp.Flag("disable-blink-features", "AutomationControlled"))
	}
	if cfg.DisableSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ExecutablePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecutablePath))
	}

	return opts
}
