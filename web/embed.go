// Package web embeds the browser assets served alongside the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFiles embed.FS

func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // unreachable with a sane embed
	}
	return sub
}
