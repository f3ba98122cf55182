package web

import (
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ycfang/twmarketwatch"
)

// pageTemplate is the shared page shell, Traditional-Chinese, styled with the
// Bootstrap CDN so the static site needs no asset pipeline.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-TW">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.1.3/dist/css/bootstrap.min.css" rel="stylesheet">
<style>
main table { width: 100%; }
main table td, main table th { padding: .4rem .6rem; border-bottom: 1px solid #dee2e6; }
</style>
</head>
<body>
<nav class="navbar navbar-dark bg-primary">
<div class="container"><span class="navbar-brand"><strong>台股觀測指標 TWMarketWatch</strong></span>
<a class="nav-link text-white" href="data.json">API數據</a></div>
</nav>
<main class="container mt-4">
{{.Content}}
</main>
<footer class="bg-light text-center text-muted py-3 mt-5">
<div class="container"><p>&copy; 2025 TWMarketWatch</p></div>
</footer>
</body>
</html>
`))

// WriteSite generates the static site under dir: index.html with the rendered
// report and data.json with the machine-readable figures.
func WriteSite(dir string, rep *marketwatch.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &marketwatch.FileAccessError{Path: dir, Err: err}
	}

	page, err := reportPage(rep)
	if err != nil {
		return err
	}
	index := filepath.Join(dir, "index.html")
	if err := os.WriteFile(index, page, 0o644); err != nil {
		return &marketwatch.FileAccessError{Path: index, Err: err}
	}

	blob, err := json.MarshalIndent(newAPIData(rep), "", "  ")
	if err != nil {
		return err
	}
	data := filepath.Join(dir, "data.json")
	if err := os.WriteFile(data, blob, 0o644); err != nil {
		return &marketwatch.FileAccessError{Path: data, Err: err}
	}
	return nil
}
