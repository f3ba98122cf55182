// Package web serves the assembled report over HTTP and generates the static
// site published to GitHub Pages.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/renderer"
)

// md converts report markdown to HTML. Tables are the whole point of the
// report, so the GFM extension is required.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// apiRow is the JSON shape of one report row.
type apiRow struct {
	Measure  string   `json:"measure"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
	Date     string   `json:"date,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

// apiSummary is the JSON shape of one category summary.
type apiSummary struct {
	Category     string  `json:"category"`
	Label        string  `json:"label"`
	MeasureCount int     `json:"measure_count"`
	ScoreSum     float64 `json:"score_sum"`
}

type apiData struct {
	AsOf      string       `json:"as_of"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Rows      []apiRow     `json:"rows"`
	Summaries []apiSummary `json:"summaries"`
}

func newAPIData(rep *marketwatch.Report) apiData {
	data := apiData{
		AsOf: rep.AsOf.String(),
		From: rep.Range.From.String(),
		To:   rep.Range.To.String(),
	}
	for _, row := range rep.Rows {
		r := apiRow{
			Measure:  row.MeasureID,
			Name:     row.Name,
			Category: row.Category.String(),
			Unit:     row.Unit,
		}
		if row.HasValue {
			v := row.LatestValue
			r.Date, r.Value = row.LatestDate.String(), &v
		}
		if row.HasScore {
			s := row.LatestScore
			r.Score = &s
		}
		data.Rows = append(data.Rows, r)
	}
	for _, s := range rep.Summaries {
		data.Summaries = append(data.Summaries, apiSummary{
			Category:     s.Category.String(),
			Label:        s.Category.Label(),
			MeasureCount: s.MeasureCount,
			ScoreSum:     s.ScoreSum,
		})
	}
	return data
}

// NewRouter builds the report viewer routes on a fresh gin engine.
func NewRouter(rep *marketwatch.Report) (*gin.Engine, error) {
	page, err := reportPage(rep)
	if err != nil {
		return nil, err
	}
	data := newAPIData(rep)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	r.GET("/api/data", func(c *gin.Context) {
		c.JSON(http.StatusOK, data)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, nil
}

// Serve runs the viewer until the listener fails.
func Serve(addr string, rep *marketwatch.Report) error {
	router, err := NewRouter(rep)
	if err != nil {
		return err
	}
	return router.Run(addr)
}

// reportPage renders the report markdown and wraps it in the site page.
func reportPage(rep *marketwatch.Report) ([]byte, error) {
	source := renderer.RenderReport(renderer.NewReportView(rep))
	var body bytes.Buffer
	if err := md.Convert([]byte(source), &body); err != nil {
		return nil, fmt.Errorf("converting report markdown: %w", err)
	}
	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, map[string]any{
		"Title":   "台股觀測指標 TWMarketWatch",
		"Content": template.HTML(body.String()),
	}); err != nil {
		return nil, err
	}
	return page.Bytes(), nil
}
