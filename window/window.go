// Package window opens the application UI as a desktop-style browser window.
package window

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Open launches a Chromium-family browser in app mode pointed at url, so the
// local server presents as a plain desktop window. Falls back to the default
// browser when no compatible browser can be driven.
func Open(url string) error {
	if err := openAppWindow(url); err != nil {
		return openDefaultBrowser(url)
	}
	return nil
}

func openAppWindow(url string) error {
	// Leakless(false): the leakless helper binary trips security software.
	controlURL, err := launcher.New().
		Headless(false).
		Leakless(false).
		Set("app", url).
		Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser window: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser window: %w", err)
	}
	return nil
}

func openDefaultBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
