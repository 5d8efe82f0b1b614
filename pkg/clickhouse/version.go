package clickhouse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// VersionInfo is a parsed ClickHouse server version.
type VersionInfo struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

// String returns the version as major.minor.patch.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsAtLeast checks if this version is at least major.minor.
func (v VersionInfo) IsAtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// SupportsQueryParameters reports whether the server binds {name:Type} placeholders
// sent over the native protocol, which arrived in 22.8.
func (v VersionInfo) SupportsQueryParameters() bool {
	return v.IsAtLeast(22, 8)
}

// GetVersion retrieves and parses the server version.
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	var raw string
	if err := c.conn.QueryRow(ctx, "SELECT version()").Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to query ClickHouse version")
	}

	version, err := parseVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse ClickHouse version: %s", raw)
	}
	return version, nil
}

// parseVersion accepts the formats returned by version(), e.g. 24.3.2.23,
// 22.8.2.11-testing and 21.10.3.9 (official build).
func parseVersion(raw string) (*VersionInfo, error) {
	cleaned := strings.TrimSpace(raw)
	if i := strings.IndexAny(cleaned, " -"); i != -1 {
		cleaned = cleaned[:i]
	}

	matches := versionPattern.FindStringSubmatch(cleaned)
	if matches == nil {
		return nil, errors.Errorf("invalid version format: %q", raw)
	}

	parts := [3]int{}
	for i := range parts {
		if matches[i+1] == "" {
			continue
		}

		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version component %q", matches[i+1])
		}
		parts[i] = n
	}

	return &VersionInfo{Major: parts[0], Minor: parts[1], Patch: parts[2], Raw: raw}, nil
}
