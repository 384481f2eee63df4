package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/yourusername/mediascraper-go/api/handlers"
	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/render"
)

var (
	serverURL   string
	sessionFlag string
	noAutoStart bool
	configFile  string
	rootCmd     = &cobra.Command{
		Use:   "mediascraper",
		Short: "MediaScraper CLI - Fetch post details and media from TikTok, Instagram and Facebook",
		Long:  `A command-line client for the MediaScraper server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "Session ID (default: the last one used by this CLI)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file passed to an auto-started server")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(logsCmd)
}

// ensureServer checks if server is running and starts it if needed (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

var submitCmd = &cobra.Command{
	Use:   "submit [url]",
	Short: "Scrape a post URL and print its cards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		payload := map[string]string{
			"url":        args[0],
			"session_id": currentSession(),
		}
		data, _ := json.Marshal(payload)

		client := &http.Client{Timeout: 5 * time.Minute}
		resp, err := client.Post(serverURL+"/api/v1/submit?wait=true", "application/json", bytes.NewBuffer(data))
		if err != nil {
			fail("%v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fail("%s", string(body))
		}

		var snap domain.SessionSnapshot
		if err := json.Unmarshal(body, &snap); err != nil {
			fail("invalid response: %v", err)
		}
		if err := saveSession(snap.SessionID); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remember session: %v\n", err)
		}

		printSnapshot(os.Stdout, snap)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the session's status line and cards",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		id := currentSession()
		if id == "" {
			fail("no session yet, run 'mediascraper submit' first")
		}

		resp, err := http.Get(serverURL + "/api/v1/sessions/" + id)
		if err != nil {
			fail("%v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fail("%s", string(body))
		}

		var snap domain.SessionSnapshot
		if err := json.Unmarshal(body, &snap); err != nil {
			fail("invalid response: %v", err)
		}
		printSnapshot(os.Stdout, snap)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a media URL linked from the session's cards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		output, _ := cmd.Flags().GetString("output")

		client := &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		req, err := http.NewRequest(http.MethodGet, serverURL+render.DownloadHref(args[0]), nil)
		if err != nil {
			fail("%v", err)
		}
		if id := currentSession(); id != "" {
			req.AddCookie(&http.Cookie{Name: handlers.SessionCookie, Value: id})
		}

		resp, err := client.Do(req)
		if err != nil {
			fail("%v", err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusForbidden:
			fail("%s is not linked from any card of this session", args[0])
		default:
			fail("download failed (status %d)", resp.StatusCode)
		}

		if output == "" {
			output = downloadFilename(resp.Header.Get("Content-Disposition"), args[0])
		}
		f, err := os.Create(output)
		if err != nil {
			fail("%v", err)
		}
		defer f.Close()

		n, err := io.Copy(f, resp.Body)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Saved %s (%d bytes)\n", output, n)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [payload.json]",
	Short: "Render a saved backend response offline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		relay, _ := cmd.Flags().GetString("relay")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fail("%v", err)
		}
		if !gjson.ValidBytes(data) {
			fail("%s is not valid JSON", args[0])
		}

		// Accept either the whole response envelope or just its data.
		payload := gjson.ParseBytes(data)
		if inner := payload.Get("data"); inner.IsObject() {
			payload = inner
		}

		platform := domain.Platform(payload.Get("platform").String())
		profile, ok := render.ProfileFor(platform)
		if !ok {
			fail("no renderer for platform %q", platform)
		}

		stack := render.NewStack()
		if err := render.NewContentManager(profile, render.NewRelay(relay), stack).Render(payload); err != nil {
			fail("%v", err)
		}
		printCards(os.Stdout, stack.Cards())
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs [category]",
	Short: "View server logs (submit, download, error)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		jsonOutput, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")
		query, _ := cmd.Flags().GetString("query")

		endpoint := serverURL + "/api/v1/logs/" + url.PathEscape(args[0])
		params := url.Values{"limit": {fmt.Sprint(limit)}}
		if query != "" {
			endpoint += "/search"
			params.Set("q", query)
		}

		resp, err := http.Get(endpoint + "?" + params.Encode())
		if err != nil {
			fail("%v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fail("%s", string(body))
		}

		if jsonOutput {
			var out bytes.Buffer
			if err := json.Indent(&out, body, "", "  "); err != nil {
				fail("%v", err)
			}
			fmt.Println(out.String())
			return
		}
		printLogEntries(os.Stdout, gjson.GetBytes(body, "entries"))
	},
}

func init() {
	downloadCmd.Flags().StringP("output", "o", "", "Output file (default: name sent by the server)")
	renderCmd.Flags().String("relay", "https://api.cors.lol", "Relay used for media URLs")
	logsCmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	logsCmd.Flags().IntP("limit", "n", 100, "Maximum entries to show")
	logsCmd.Flags().StringP("query", "q", "", "Only show entries containing this text")
}

// sessionFile remembers the session between CLI invocations
func sessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mediascraper", "cli-session")
}

func currentSession() string {
	if sessionFlag != "" {
		return sessionFlag
	}
	path := sessionFile()
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveSession(id string) error {
	path := sessionFile()
	if path == "" || id == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(id+"\n"), 0600)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
