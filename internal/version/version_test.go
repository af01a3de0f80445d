package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	Version, Commit, Date = "dev", "unknown", "unknown"
	assert.Equal(t, "dev", String())

	Version, Commit, Date = "1.2.0", "abc123", "2026-01-02"
	assert.Equal(t, "1.2.0 (commit abc123, built 2026-01-02)", String())
}
