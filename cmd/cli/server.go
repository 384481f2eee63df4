package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	serverBinary       = "mediascraper-server"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

// serverReady reports whether the server answers /ready, which also
// covers the card history being open
func serverReady() bool {
	client := &http.Client{Timeout: time.Second}
	resp, err := client.Get(serverURL + "/ready")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// serverCandidates lists where the server binary may live, in lookup order
func serverCandidates() []string {
	var candidates []string
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), serverBinary))
	}
	if path, err := exec.LookPath(serverBinary); err == nil {
		candidates = append(candidates, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, "go", "bin", serverBinary),
			filepath.Join(home, ".local", "bin", serverBinary))
	}
	return append(candidates, filepath.Join("/usr/local/bin", serverBinary))
}

func findServerBinary() (string, error) {
	for _, path := range serverCandidates() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s binary not found", serverBinary)
}

// startServer launches the server detached from this process
func startServer() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	args := []string{}
	if configFile != "" {
		args = append(args, "-config", configFile)
	}
	cmd := exec.Command(serverPath, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", serverBinary, err)
	}
	return cmd.Process.Release()
}

func waitForServer() error {
	ticker := time.NewTicker(serverPollInterval)
	defer ticker.Stop()
	timeout := time.After(serverStartTimeout)

	for !serverReady() {
		select {
		case <-ticker.C:
		case <-timeout:
			return fmt.Errorf("server did not become ready within %v", serverStartTimeout)
		}
	}
	return nil
}

// ensureServerRunning starts a local server unless one already answers
func ensureServerRunning() error {
	if serverReady() {
		return nil
	}

	fmt.Fprintln(os.Stderr, "Server not running, starting...")
	if err := startServer(); err != nil {
		return err
	}
	if err := waitForServer(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Server started")
	return nil
}
