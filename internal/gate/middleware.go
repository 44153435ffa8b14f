package gate

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"travelnest_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// PageHandler handles every request no API route claimed. It applies
// Decide, then serves the SPA shell from webDir when one is configured.
func PageHandler(webDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Decide(c.Request.URL.Path, httpkit.GetClaims(c))
		if d.Action == Redirect {
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
			return
		}

		if d.Class == ClassAPI || d.Class == ClassAPIAuth {
			c.AbortWithStatusJSON(http.StatusNotFound, httpkit.ErrorResponse{Message: "Not found"})
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}

		if webDir == "" {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		if asset, ok := resolveAsset(webDir, c.Request.URL.Path); ok {
			c.File(asset)
			return
		}
		c.File(filepath.Join(webDir, "index.html"))
	}
}

// resolveAsset maps a URL path to an existing regular file under root.
func resolveAsset(root, urlPath string) (string, bool) {
	clean := filepath.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(root, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
