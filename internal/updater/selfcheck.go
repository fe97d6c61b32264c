package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultRepo is the GitHub repository checked for new vomgr releases.
const DefaultRepo = "vexyart/vexy-overnight"

const (
	releaseCacheTTL = 24 * time.Hour
	releaseTimeout  = 5 * time.Second
)

// SelfCheckOptions tune the release lookup.
type SelfCheckOptions struct {
	Repo     string
	NoCache  bool
	CacheTTL time.Duration
	Timeout  time.Duration
	Now      func() time.Time
}

// SelfCheckResult describes the outcome of a release check.
type SelfCheckResult struct {
	Current         string
	Latest          string
	UpdateAvailable bool
	CurrentUnknown  bool
	Source          string
	Error           string
}

// releaseCache is the on-disk record of the last successful lookup.
type releaseCache struct {
	Tag       string    `json:"tag"`
	FetchedAt time.Time `json:"fetched_at"`
}

// releaseChecker resolves the latest release tag, cache first.
type releaseChecker struct {
	repo    string
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	noCache bool
}

// SelfCheck compares the running version against the latest GitHub release,
// consulting a 24h cache before hitting the network.
func SelfCheck(current string, opts SelfCheckOptions) SelfCheckResult {
	c := releaseChecker{
		repo:    opts.Repo,
		ttl:     opts.CacheTTL,
		timeout: opts.Timeout,
		now:     opts.Now,
		noCache: opts.NoCache,
	}
	if c.repo == "" {
		c.repo = DefaultRepo
	}
	if c.ttl == 0 {
		c.ttl = releaseCacheTTL
	}
	if c.timeout == 0 {
		c.timeout = releaseTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}

	res := SelfCheckResult{
		Current:        current,
		CurrentUnknown: isUnknownVersion(current),
	}
	latest, source, err := c.latest()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Latest = latest
	res.Source = source

	if res.CurrentUnknown {
		return res
	}
	cmp, ok := compareSemver(current, latest)
	if !ok {
		res.Error = "cannot compare versions"
		return res
	}
	res.UpdateAvailable = cmp < 0
	return res
}

// latest returns the newest release tag and where it came from.
func (c releaseChecker) latest() (tag, source string, err error) {
	if !c.noCache {
		if cached, ok := c.readCache(); ok {
			return cached.Tag, "cache", nil
		}
	}
	tag, err = c.fetch()
	if err != nil {
		return "", "", err
	}
	c.writeCache(releaseCache{Tag: tag, FetchedAt: c.now()})
	return tag, "network", nil
}

func (c releaseChecker) readCache() (releaseCache, bool) {
	path, err := releaseCachePath()
	if err != nil {
		return releaseCache{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return releaseCache{}, false
	}
	var cached releaseCache
	if json.Unmarshal(data, &cached) != nil || cached.Tag == "" {
		return releaseCache{}, false
	}
	if cached.FetchedAt.IsZero() || c.now().Sub(cached.FetchedAt) > c.ttl {
		return releaseCache{}, false
	}
	return cached, true
}

func (c releaseChecker) writeCache(cached releaseCache) {
	path, err := releaseCachePath()
	if err != nil {
		return
	}
	if os.MkdirAll(filepath.Dir(path), 0o755) != nil {
		return
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

func releaseCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "vomgr", "release.json"), nil
}

// fetch asks the GitHub API for the latest release tag.
func (c releaseChecker) fetch() (string, error) {
	url := "https://api.github.com/repos/" + c.repo + "/releases/latest"
	client := &http.Client{Timeout: c.timeout}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}
	if release.TagName == "" {
		return "", fmt.Errorf("no tag_name in release for %s", c.repo)
	}
	return release.TagName, nil
}

func isUnknownVersion(version string) bool {
	v := strings.TrimSpace(strings.ToLower(version))
	return v == "" || v == "dev"
}

// compareSemver orders two version strings by their numeric
// major.minor.patch parts. Missing parts count as zero and pre-release
// suffixes are ignored.
func compareSemver(a, b string) (int, bool) {
	av, ok := parseSemver(a)
	if !ok {
		return 0, false
	}
	bv, ok := parseSemver(b)
	if !ok {
		return 0, false
	}
	for i := range av {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1, true
			}
			return 1, true
		}
	}
	return 0, true
}

func parseSemver(version string) ([3]int, bool) {
	var out [3]int
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if idx := strings.IndexByte(v, '-'); idx >= 0 {
		v = v[:idx]
	}
	parts := strings.Split(v, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return out, false
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
