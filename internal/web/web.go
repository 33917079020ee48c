// Package web carries the embedded catalog UI. The page is a static asset
// rendered in the browser; it talks to the same server's /products API.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html static
var assets embed.FS

// Index serves the catalog page.
func Index(c *gin.Context) {
	page, err := assets.ReadFile("index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Static returns the filesystem holding the page's scripts and styles.
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
