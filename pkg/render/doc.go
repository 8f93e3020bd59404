// Package render turns part trees into Graphviz diagrams.
//
// Documents are already JSON, so this package only deals with the
// structural views: [ToDOT] emits Graphviz DOT source for a part tree,
// one node per part with containers pointing at their children, and
// [RenderSVG] lays the DOT out with Graphviz.
//
//	dot := render.ToDOT(doc.Root(), render.Options{Title: doc.ID})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Leaves are labelled with their key and literal, containers with their key,
// kind and size. Node fill colors distinguish the five kinds.
package render
