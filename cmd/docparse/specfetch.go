package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/grove-platform/docparse/rstdirective"
)

// defaultSpecURL points at the canonical directive-spec table this CLI
// knows how to load; overridable with --spec-url for a local fork.
const defaultSpecURL = "https://raw.githubusercontent.com/mongodb/snooty-parser/refs/heads/main/snooty/rstspec.toml"

const specCacheTTL = 24 * time.Hour
const specCacheDirName = ".docparse"
const specCacheFileName = "rstspec-cache.json"

// specCache is the on-disk cache shape for a fetched SpecTable, mirroring
// the teacher's RstspecCache JSON envelope around a TOML-sourced payload.
type specCache struct {
	Timestamp   time.Time                           `json:"timestamp"`
	Composables []rstdirective.Composable           `json:"composables"`
	Tabs        map[string][]rstdirective.TabOption `json:"tabs"`
}

func specCachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, specCacheDirName, specCacheFileName), nil
}

func loadSpecCache() (*rstdirective.SpecTable, error) {
	path, err := specCachePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache specCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to parse spec cache: %w", err)
	}
	if time.Since(cache.Timestamp) > specCacheTTL {
		return nil, fmt.Errorf("spec cache expired")
	}
	return &rstdirective.SpecTable{Composables: cache.Composables, Tabs: cache.Tabs}, nil
}

func saveSpecCache(table *rstdirective.SpecTable) error {
	path, err := specCachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(specCache{
		Timestamp:   time.Now(),
		Composables: table.Composables,
		Tabs:        table.Tabs,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal spec cache: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func fetchSpecFromURL(url string) (*rstdirective.SpecTable, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	var table rstdirective.SpecTable
	if err := toml.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return &table, nil
}

// resolveSpecTable loads a directive spec table from a local path
// (when given), else a cached or freshly fetched remote copy, falling
// back to an expired cache for offline use exactly as the teacher's
// FetchRstspec does.
func resolveSpecTable(path, url string) (*rstdirective.SpecTable, error) {
	if path != "" {
		return rstdirective.LoadSpecTable(path)
	}
	if url == "" {
		url = defaultSpecURL
	}

	if table, err := loadSpecCache(); err == nil {
		return table, nil
	}

	table, fetchErr := fetchSpecFromURL(url)
	if fetchErr != nil {
		if cachePath, err := specCachePath(); err == nil {
			if data, err := os.ReadFile(cachePath); err == nil {
				var cache specCache
				if err := json.Unmarshal(data, &cache); err == nil {
					fmt.Fprintf(os.Stderr, "warning: could not fetch %s (%v), using expired cache\n", url, fetchErr)
					return &rstdirective.SpecTable{Composables: cache.Composables, Tabs: cache.Tabs}, nil
				}
			}
		}
		return nil, fetchErr
	}

	if err := saveSpecCache(table); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save spec cache: %v\n", err)
	}
	return table, nil
}
