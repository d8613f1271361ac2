package version

import (
	"fmt"
	"time"
)

// Name - имя продукта в логах и /version
const Name = "delve"

// Заполняются при сборке через -ldflags "-X delve/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день, от которого считается номер сборки
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version
type VersionInfo struct {
	Name       string `json:"name"`
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// BuildIDFor - номер сборки: число дней от эпохи до даты сборки
func BuildIDFor(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}

	// Обе даты в UTC, поэтому часы делятся на 24 без сюрпризов DST
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info возвращает метаданные текущей сборки. Безопасно вызывать в любой момент.
func Info() VersionInfo {
	info := VersionInfo{
		Name:      Name,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := BuildIDFor(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для лога при старте
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("%s build unknown (%s)", Name, info.Error)
	}
	return fmt.Sprintf(
		"%s build %d (%s) commit[%s] branch[%s] ci[%s]",
		Name,
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
