package pagetext

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
)

// TextLayer extracts the embedded text layer of a document, one string per
// page in page order.
type TextLayer interface {
	PageTexts(ctx context.Context, data []byte) ([]string, error)
}

// Rasterizer renders each document page to an image, in page order.
type Rasterizer interface {
	PageImages(ctx context.Context, data []byte) ([]image.Image, error)
}

// OCREngine recognizes the text of one page image.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Result is the outcome of one page-text acquisition.
type Result struct {
	Pages    []string
	Method   string // "pdf-ocr" | "pdf-text" | "raw-decode"
	Warnings []string
}

// Source resolves document bytes to per-page text through a strict fallback
// chain: OCR (when requested and available), then text layer, then a
// best-effort raw decode. Only one path's output is ever used. A capability
// left nil is a normal runtime configuration, not an error.
type Source struct {
	rasterizer Rasterizer
	ocr        OCREngine
	textLayer  TextLayer
	logger     *slog.Logger
}

func NewSource(rasterizer Rasterizer, ocr OCREngine, textLayer TextLayer, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{rasterizer: rasterizer, ocr: ocr, textLayer: textLayer, logger: logger}
}

// GetPages never fails: every capability error is converted into a warning
// and the chain moves on (or, for the exclusive OCR path, stops with what it
// has).
func (s *Source) GetPages(ctx context.Context, data []byte, useOCR bool) Result {
	if useOCR && s.rasterizer != nil && s.ocr != nil {
		return s.ocrPages(ctx, data)
	}

	if s.textLayer != nil {
		texts, err := s.textLayer.PageTexts(ctx, data)
		if err == nil {
			return Result{Pages: texts, Method: "pdf-text"}
		}
		s.logger.Warn("text layer extraction failed, falling back to raw decode", "error", err)
		res := s.rawDecode(data)
		res.Warnings = append([]string{fmt.Sprintf("text layer: %v", err)}, res.Warnings...)
		return res
	}

	return s.rawDecode(data)
}

// ocrPages is the exclusive OCR path: once selected there is no further
// fallback, even when recognition yields empty strings.
func (s *Source) ocrPages(ctx context.Context, data []byte) Result {
	res := Result{Method: "pdf-ocr"}
	imgs, err := s.rasterizer.PageImages(ctx, data)
	if err != nil {
		s.logger.Warn("rasterization failed", "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("rasterize: %v", err))
		return res
	}
	for i, img := range imgs {
		txt, err := s.ocr.Recognize(ctx, img)
		if err != nil {
			s.logger.Warn("ocr failed for page", "page", i+1, "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("ocr page %d: %v", i+1, err))
			txt = ""
		}
		res.Pages = append(res.Pages, txt)
	}
	return res
}

// rawDecode is the degraded fallback for non-PDF or unsupported content: a
// single-page sequence holding the bytes decoded as text, with invalid UTF-8
// dropped. Undecodable input yields one empty string.
func (s *Source) rawDecode(data []byte) Result {
	return Result{
		Pages:  []string{strings.ToValidUTF8(string(data), "")},
		Method: "raw-decode",
	}
}
