package version

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Info is the build metadata written by cmd/bumpversion and served at
// /version.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GitBranch string `json:"git_branch,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
}

const DefaultFile = "version.json"

// Load reads the version file; a missing file yields a dev placeholder
// rather than an error so local runs work without the bump tooling.
func Load(path string) Info {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{Version: "0.0.0-dev"}
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{Version: "0.0.0-dev"}
	}
	return info
}

func Handler(info Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
