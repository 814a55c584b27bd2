package pagetext

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzTextLayer extracts the embedded text layer of each page via MuPDF.
type FitzTextLayer struct{}

func (FitzTextLayer) PageTexts(ctx context.Context, data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	texts := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		txt, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d text: %w", i+1, err)
		}
		texts = append(texts, txt)
	}
	return texts, nil
}

// FitzRasterizer renders document pages to images for OCR.
type FitzRasterizer struct {
	DPI      int // default 300
	MaxPages int // 0 = no limit
}

func (r FitzRasterizer) PageImages(ctx context.Context, data []byte) ([]image.Image, error) {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 300
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if r.MaxPages > 0 && n > r.MaxPages {
		n = r.MaxPages
	}
	imgs := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", i+1, err)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}
