package server

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/porticus-lab/go-attention/capture"
	"github.com/porticus-lab/go-attention/mdpdf"
	"github.com/porticus-lab/go-attention/regions"
)

type captureRequest struct {
	URL      string `json:"url" binding:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FullPage bool   `json:"full_page"`
	// SettleMS is the post-load wait in milliseconds. Zero uses the
	// default, a negative value skips the wait.
	SettleMS int `json:"settle_ms"`
}

// handleCapture takes a screenshot of a URL and returns it as base64
// PNG.
func (s *Server) handleCapture(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	shot, err := s.shots.Screenshot(c.Request.Context(), req.URL, capture.ShotConfig{
		Width:    req.Width,
		Height:   req.Height,
		FullPage: req.FullPage,
		Settle:   time.Duration(req.SettleMS) * time.Millisecond,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	success(c, gin.H{
		"url":          shot.URL,
		"width":        shot.Viewport[0],
		"height":       shot.Viewport[1],
		"image_base64": shot.Base64(),
	})
}

type analyzeRequest struct {
	ImageBase64 string            `json:"image_base64" binding:"required"`
	GoalBoxes   []regions.GoalBox `json:"goal_boxes"`
}

// handleAnalyze runs the attention analysis on an uploaded image and
// returns the full report.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		fail(c, http.StatusBadRequest, "image_base64 is not valid base64")
		return
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		fail(c, http.StatusBadRequest, "image data is not a supported format")
		return
	}

	rep, err := s.analyzer.Analyze(img, req.GoalBoxes)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, rep)
}

type markdownRequest struct {
	Markdown string `json:"markdown" binding:"required"`
	CSS      string `json:"css"`
}

// handleMarkdownPDF renders a markdown report to PDF and returns it as
// base64.
func (s *Server) handleMarkdownPDF(c *gin.Context) {
	var req markdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	css := req.CSS
	if css == "" {
		css = mdpdf.DefaultCSS
	}
	htmlDoc, err := mdpdf.Render([]byte(req.Markdown), "", css)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	pdf, err := s.pdfs.PrintHTML(c.Request.Context(), htmlDoc, mdpdf.ReportPageConfig())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	success(c, gin.H{"pdf_base64": pdf.Base64()})
}
