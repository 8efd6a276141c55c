// Package hocr imports line regions from hOCR, the HTML output of OCR
// engines such as Tesseract, as manuscript line records.
package hocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/folioview/internal/manuscript"
)

// lineSelector matches the hOCR classes that carry one line of text.
const lineSelector = ".ocr_line, .ocrx_line, .ocr_header, .ocr_caption, .ocr_textfloat"

// BBox is an hOCR bounding box in image pixels.
type BBox struct {
	X1, Y1, X2, Y2 float64
}

// ParseTitle breaks down an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBBox extracts the bbox property of a title attribute.
func ParseBBox(title string) (BBox, error) {
	vals, ok := ParseTitle(title)["bbox"]
	if !ok {
		return BBox{}, fmt.Errorf("no bbox in %q", title)
	}
	if len(vals) != 4 {
		return BBox{}, fmt.Errorf("bbox needs 4 values, got %d", len(vals))
	}
	var n [4]float64
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return BBox{}, fmt.Errorf("bbox value %q: %w", v, err)
		}
		n[i] = f
	}
	return BBox{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3]}, nil
}

// Result is what Parse found.
type Result struct {
	Lines []manuscript.LineRecord
	Pages int
	// Skipped counts lines that had no usable bbox or no text.
	Skipped int
}

// Parse reads an hOCR document. Each ocr_page becomes one page image,
// numbered from firstPage in document order; lines are numbered from 1
// within their page.
func Parse(r io.Reader, firstPage int) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}
	pages := doc.Find(".ocr_page")
	if pages.Length() == 0 {
		return nil, fmt.Errorf("no ocr_page elements found")
	}

	res := &Result{Pages: pages.Length()}
	pages.Each(func(i int, page *goquery.Selection) {
		id := strconv.Itoa(firstPage + i)
		n := 0
		page.Find(lineSelector).Each(func(_ int, line *goquery.Selection) {
			title, _ := line.Attr("title")
			box, err := ParseBBox(title)
			text := lineText(line)
			if err != nil || text == "" {
				res.Skipped++
				return
			}
			n++
			res.Lines = append(res.Lines, manuscript.LineRecord{
				ImageID:       id,
				Line:          n,
				StartX:        box.X1,
				StartY:        box.Y1,
				EndX:          box.X2,
				EndY:          box.Y2,
				Transcription: text,
			})
		})
	})
	return res, nil
}

// lineText joins the words of a line, or falls back to its whole text when
// the engine did not emit word spans.
func lineText(line *goquery.Selection) string {
	words := line.Find(".ocrx_word")
	if words.Length() == 0 {
		return strings.Join(strings.Fields(line.Text()), " ")
	}
	parts := make([]string, 0, words.Length())
	words.Each(func(_ int, w *goquery.Selection) {
		if t := strings.TrimSpace(w.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
