package view

import (
	"embed"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// StaticHandler は埋め込み静的ファイルを配信するハンドラーを返す。
// /static/ 配下のパスでマウントする想定。
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
