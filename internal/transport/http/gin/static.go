package httpgin

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the presentation bundle for any path no API route
// claimed. "/" falls back to index.html; anything missing is a plain 404.
func StaticHandler(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
			return
		}

		// Rooted clean keeps lookups inside publicDir.
		p := path.Clean("/" + c.Request.URL.Path)
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
			return
		}

		if p == "/" {
			p = "/index.html"
		}

		fp := filepath.Join(publicDir, filepath.FromSlash(p))
		if st, err := os.Stat(fp); err != nil || st.IsDir() {
			c.String(http.StatusNotFound, "not found")
			return
		}

		c.File(fp)
	}
}
