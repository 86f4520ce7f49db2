// Package update implements dtop's self-update command: check GitHub's
// latest release against the running binary's version, and replace the
// binary in place. Grounded on internal/cli/update.go's GitHub-releases
// check + on-disk cache pattern; version comparison stays on stdlib
// strings/strconv (the pack imports no semver library anywhere, so this one
// comparison is the exception to "always reach for a pack dependency" —
// see DESIGN.md).
package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"dtop/internal/errors"
)

const (
	releasesURL   = "https://api.github.com/repos/dtop-project/dtop/releases/latest"
	checkTimeout  = 3 * time.Second
	downloadTimeout = 2 * time.Minute
	cacheTTL      = 24 * time.Hour
)

// Updater checks for and applies dtop releases. A collaborator interface so
// the CLI layer never depends on net/http directly.
type Updater interface {
	// Check returns the latest available version, or "" if the running
	// binary is already current (or the check could not complete).
	Check(currentVersion string) (string, error)
	// Apply downloads the release for the current GOOS/GOARCH and replaces
	// the running executable.
	Apply(version string) error
}

// GitHubUpdater is the default Updater, backed by GitHub's releases API.
type GitHubUpdater struct {
	HTTPClient *http.Client
}

// NewGitHubUpdater builds a GitHubUpdater with sane request timeouts.
func NewGitHubUpdater() *GitHubUpdater {
	return &GitHubUpdater{HTTPClient: &http.Client{Timeout: checkTimeout}}
}

type githubRelease struct {
	TagName string         `json:"tag_name"`
	Assets  []githubAsset  `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type checkCache struct {
	LatestVersion string    `json:"latest_version"`
	CheckedAt     time.Time `json:"checked_at"`
}

// Check compares currentVersion against the cached (or freshly fetched)
// latest GitHub release tag, returning the latest version string if it is
// newer.
func (u *GitHubUpdater) Check(currentVersion string) (string, error) {
	if os.Getenv("DTOP_NO_UPDATE_CHECK") == "1" {
		return "", nil
	}

	if cache, err := readCache(); err == nil && time.Since(cache.CheckedAt) < cacheTTL {
		if IsNewer(currentVersion, cache.LatestVersion) {
			return cache.LatestVersion, nil
		}
		return "", nil
	}

	release, err := u.fetchLatest()
	if err != nil {
		return "", err
	}
	_ = writeCache(checkCache{LatestVersion: release.TagName, CheckedAt: time.Now()})

	if IsNewer(currentVersion, release.TagName) {
		return release.TagName, nil
	}
	return "", nil
}

// Apply downloads the release asset matching this binary's GOOS/GOARCH and
// atomically replaces the currently running executable.
func (u *GitHubUpdater) Apply(version string) error {
	release, err := u.fetchRelease(version)
	if err != nil {
		return err
	}

	assetName := fmt.Sprintf("dtop_%s_%s_%s", strings.TrimPrefix(version, "v"), runtime.GOOS, runtime.GOARCH)
	var assetURL string
	for _, a := range release.Assets {
		if strings.HasPrefix(a.Name, assetName) {
			assetURL = a.BrowserDownloadURL
			break
		}
	}
	if assetURL == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("No release asset found for %s/%s", runtime.GOOS, runtime.GOARCH),
			"Download the binary manually from the release page")
	}

	execPath, err := os.Executable()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot determine running binary path", "")
	}

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Get(assetURL)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport, "Failed to download update", "Check your network connection")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrTransport,
			fmt.Sprintf("Update download returned status %d", resp.StatusCode), "")
	}

	tmp, err := os.CreateTemp(filepath.Dir(execPath), "dtop-update-*")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot create temp file for update", "")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrTransport, "Failed to write downloaded binary", "")
	}
	if err := tmp.Chmod(0o755); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to set executable permission on update", "")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to finalize downloaded binary", "")
	}

	if err := os.Rename(tmp.Name(), execPath); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to replace running binary", "Check write permission on "+execPath)
	}
	return nil
}

func (u *GitHubUpdater) fetchLatest() (*githubRelease, error) {
	return u.fetch(releasesURL)
}

func (u *GitHubUpdater) fetchRelease(version string) (*githubRelease, error) {
	return u.fetch(strings.Replace(releasesURL, "/latest", "/tags/"+version, 1))
}

func (u *GitHubUpdater) fetch(url string) (*githubRelease, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "dtop-cli")

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport, "Failed to reach GitHub releases API", "Check your network connection")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrTransport, fmt.Sprintf("GitHub API returned %d", resp.StatusCode), "")
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProtocol, "Malformed response from GitHub releases API", "")
	}
	return &release, nil
}

// IsNewer reports whether latest is a strictly newer version than current.
// Compares dotted numeric components after stripping a leading "v"; falls
// back to string comparison for anything that doesn't parse as numeric,
// so pre-release/build-metadata suffixes never crash the comparison.
func IsNewer(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")
	if current == "" || current == "dev" {
		return false
	}
	if current == latest {
		return false
	}

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < len(cur) || i < len(lat); i++ {
		var c, l int
		if i < len(cur) {
			c, _ = strconv.Atoi(cur[i])
		}
		if i < len(lat) {
			l, _ = strconv.Atoi(lat[i])
		}
		if c != l {
			return l > c
		}
	}
	return latest > current
}

func cachePath() (string, error) {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "dtop", "update-check.json"), nil
}

func readCache() (checkCache, error) {
	var c checkCache
	path, err := cachePath()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	err = json.Unmarshal(data, &c)
	return c, err
}

func writeCache(c checkCache) error {
	path, err := cachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
