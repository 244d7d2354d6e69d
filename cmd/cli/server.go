package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	serverBinary       = "ytdl-gateway"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

// healthURL returns the gateway's /health URL, which lives at the root of
// the configured base URL's host
func healthURL() (string, error) {
	u, err := url.Parse(cfg.Client.ServerURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", cfg.Client.ServerURL, err)
	}
	u.Path = "/health"
	u.RawQuery = ""
	return u.String(), nil
}

// isLocalServer reports whether the configured gateway runs on this machine
func isLocalServer() bool {
	u, err := url.Parse(cfg.Client.ServerURL)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// isServerRunning checks if the gateway is responding to health checks
func isServerRunning() bool {
	target, err := healthURL()
	if err != nil {
		return false
	}
	httpClient := &http.Client{Timeout: 1 * time.Second}
	resp, err := httpClient.Get(target)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// findServerBinary locates the gateway binary
func findServerBinary() (string, error) {
	// 1. Same directory as the CLI binary
	if execPath, err := os.Executable(); err == nil {
		serverPath := filepath.Join(filepath.Dir(execPath), serverBinary)
		if _, err := os.Stat(serverPath); err == nil {
			return serverPath, nil
		}
	}

	// 2. PATH
	if serverPath, err := exec.LookPath(serverBinary); err == nil {
		return serverPath, nil
	}

	// 3. Common locations
	home, _ := os.UserHomeDir()
	commonPaths := []string{
		filepath.Join("/usr/local/bin", serverBinary),
		filepath.Join("/usr/bin", serverBinary),
		filepath.Join(home, "go", "bin", serverBinary),
		filepath.Join(home, ".local", "bin", serverBinary),
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found", serverBinary)
}

// startServerBackground starts the gateway as a detached background process
func startServerBackground() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	var args []string
	if configPath != "" {
		args = append(args, "-config", configPath)
	}
	cmd := exec.Command(serverPath, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	// Detach from the terminal's process group
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start gateway: %w", err)
	}
	log.Debug("Started gateway", zap.String("path", serverPath), zap.Int("pid", cmd.Process.Pid))

	go func() {
		cmd.Wait()
	}()

	return nil
}

// waitForServerReady polls the gateway until it is ready or the timeout passes
func waitForServerReady() error {
	deadline := time.Now().Add(serverStartTimeout)

	for time.Now().Before(deadline) {
		if isServerRunning() {
			return nil
		}
		time.Sleep(serverPollInterval)
	}

	return fmt.Errorf("gateway did not start within %v", serverStartTimeout)
}

// ensureServerRunning starts a local gateway if none is running. Remote
// gateways are never started.
func ensureServerRunning() error {
	if isServerRunning() || !isLocalServer() {
		return nil
	}

	fmt.Fprintln(os.Stderr, "Gateway not running, starting...")

	if err := startServerBackground(); err != nil {
		return fmt.Errorf("failed to start gateway: %w", err)
	}

	if err := waitForServerReady(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Gateway started")
	return nil
}
