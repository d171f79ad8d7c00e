package ch

import (
	"os"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"lookalike/internal/core/version"
)

// BuildClientInfo tags every query this process sends so system.query_log
// shows which binary and role issued it. role is "api" or "cli".
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	host, _ := os.Hostname()

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: bi.Service, Version: strings.TrimSpace(tag)},
		{Name: "role", Version: strings.TrimSpace(role)},
		{Name: "build", Version: bi.Version + "+" + version.Short(bi.Commit)},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}}
}
