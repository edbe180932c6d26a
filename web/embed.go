package web

import (
	"embed"
	"html/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templates embed.FS

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// naturaltime 相对时间，如 "3 minutes ago"
		"naturaltime": humanize.Time,
	}
}

// LoadTemplates 解析全部页面模板，模板名为文件名（如 "timeline.html"）
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templates, "templates/*.html")
}
