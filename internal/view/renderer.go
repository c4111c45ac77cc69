// Package view はHTMLテンプレートの描画を提供する。
// テンプレートはバイナリに埋め込み、起動時に全てパースする。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ページテンプレートの一覧。layout.htmlと組み合わせてパースする。
var pageNames = []string{
	"home",
	"login",
	"register",
	"profile",
	"profile_edit",
	"todo_list",
	"todo_edit",
	"diet_list",
	"diet_edit",
	"fitness_list",
	"fitness_edit",
	"sleep_list",
	"sleep_edit",
	"calendar_list",
	"calendar_edit",
	"pomodoro",
}

// Data は全ページ共通の描画データ。
type Data struct {
	User      *model.User    // 未ログイン時はnil
	Flash     *flash.Message // 表示するフラッシュメッセージ。なければnil
	CSRFToken string         // フォームの隠しフィールドに埋め込む
	Content   any            // ページ固有のデータ
}

// Renderer は事前パース済みテンプレートを保持する。
type Renderer struct {
	templates map[string]*template.Template
}

// New は全テンプレートをパースしてRendererを生成する。
// テンプレートの構文エラーは起動時に検出される。
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render は指定ページをレイアウト付きで描画する。
func (r *Renderer) Render(w io.Writer, page string, data Data) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", page, err)
	}
	return nil
}
