package handler

import (
	"net/http"
	"os"
	"runtime"

	"github.com/osse101/casevault/internal/domain"
)

// VersionInfo describes the running build and the catalog it serves
type VersionInfo struct {
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	BuildTime  string `json:"build_time,omitempty"`
	GitCommit  string `json:"git_commit,omitempty"`
	Items      int    `json:"catalog_items"`
	Containers int    `json:"catalog_containers"`
}

// Set with -ldflags "-X github.com/osse101/casevault/internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// CatalogStats is the part of the catalog /version reports on
type CatalogStats interface {
	Len() int
	Containers() []*domain.CatalogItem
}

// HandleVersion reports the build and the size of the loaded catalog
func HandleVersion(cat CatalogStats) http.HandlerFunc {
	info := VersionInfo{
		Version:    buildVersion(),
		GoVersion:  runtime.Version(),
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		Items:      cat.Len(),
		Containers: len(cat.Containers()),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersion prefers the linked version, then VERSION from the environment
func buildVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
