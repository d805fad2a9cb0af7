package version

import (
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X roguecore/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// Номер сборки - дни от первого коммита движка.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildID    int
	BuildDate  string
	Commit     string
	Branch     string
	Calculated bool
	Error      string
}

func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info returns structured version information.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String - полная строка для лога при старте.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("roguecore dev build (%s)", info.Error)
	}
	return fmt.Sprintf(
		"roguecore build %d (%s) commit[%s] branch[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
	)
}

// Short - компактная метка для строки статуса вьюера.
func Short() string {
	info := Info()
	if !info.Calculated {
		return "dev"
	}
	if len(info.Commit) > 7 {
		return fmt.Sprintf("b%d-%s", info.BuildID, info.Commit[:7])
	}
	return fmt.Sprintf("b%d", info.BuildID)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
