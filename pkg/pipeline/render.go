package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/jsonizer/pkg/assembly"
	"github.com/matzehuels/jsonizer/pkg/render"
)

// Render generates output artifacts for one document in the requested formats.
func Render(ctx context.Context, doc *assembly.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		if format != FormatJSON && dot == "" {
			dot = render.ToDOT(doc.Root(), render.Options{Title: doc.ID, Detailed: opts.Detailed})
		}

		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data = []byte(doc.JSON)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
