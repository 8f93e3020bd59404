// Package pkg provides the libraries behind jsonizer, a concurrent factory
// for arbitrarily nested JSON documents.
//
// # Overview
//
// Leaf values travel through an assembly line of pattern-matching factories.
// Each factory looks at the head of a shared work queue and either adopts it
// into the container it is building or leaves it for the next factory.
// Finished containers are recirculated for further nesting or promoted to
// products, which assemblies collect into documents.
//
// # Architecture
//
//	[values] pools ──order──▶ work queue ([queue])
//	                              │
//	                  [factory] stations (weighted dispatch)
//	                              │
//	               recirculate ◀──┴──▶ products ([producer])
//	                                        │
//	                              [assembly] per document
//	                                        │
//	                                 [render] json/dot/svg
//
// # Main Packages
//
//   - [part]: immutable JSON fragments with serials, keys and leaf counts
//   - [keys]: distinct, randomly ordered keys shared between factories
//   - [values]: grouped pools of raw leaf values
//   - [factory]: keyed-pair and container factories
//   - [queue]: the thread-safe deque used for work and products
//   - [producer]: the assembly line loop
//   - [assembly]: consumers that build one document each
//   - [config]: presets, factory specs and config files
//   - [pipeline]: one call that runs everything
//   - [render]: DOT and SVG views of a document tree
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  config.Default(),
//	    Targets: []part.Counts{{Ints: 5, Doubles: 5, Strings: 5}},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Documents[0].JSON)
//
// [part]: github.com/matzehuels/jsonizer/pkg/part
// [keys]: github.com/matzehuels/jsonizer/pkg/keys
// [values]: github.com/matzehuels/jsonizer/pkg/values
// [factory]: github.com/matzehuels/jsonizer/pkg/factory
// [queue]: github.com/matzehuels/jsonizer/pkg/queue
// [producer]: github.com/matzehuels/jsonizer/pkg/producer
// [assembly]: github.com/matzehuels/jsonizer/pkg/assembly
// [config]: github.com/matzehuels/jsonizer/pkg/config
// [pipeline]: github.com/matzehuels/jsonizer/pkg/pipeline
// [render]: github.com/matzehuels/jsonizer/pkg/render
package pkg
