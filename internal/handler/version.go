package handler

import (
	"net/http"
	"os"
	"runtime"
)

// VersionInfo describes the running build and the upgrade catalog it serves
type VersionInfo struct {
	Version        string `json:"version"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	GoVersion      string `json:"go_version"`
	BuildTime      string `json:"build_time,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
}

// set with -ldflags "-X .../internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// HandleVersion returns build information and the loaded catalog version
// @Summary Build version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(catalogVersion string) http.HandlerFunc {
	info := VersionInfo{
		Version:        buildVersion(),
		CatalogVersion: catalogVersion,
		GoVersion:      runtime.Version(),
		BuildTime:      BuildTime,
		GitCommit:      GitCommit,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// ldflags win over VERSION from the environment
func buildVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
