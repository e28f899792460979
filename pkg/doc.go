// Package pkg provides the libraries behind fjscene, a scene builder for the
// Fujiyama renderer.
//
// # Overview
//
//  1. [protocol] - Renderer commands, verb table and the line codec
//  2. [convert] - Conversion table and the scheduler that plans converter jobs
//  3. [workspace] - Per-scene scratch directory for converted files
//  4. [scene] - Builder with one method per verb
//  5. [pipeline] - Runs conversions and the renderer as subprocesses
//
// Supporting packages: [config] (TOML settings), [errors] (coded errors),
// [observability] (hooks) and [buildinfo] (version).
//
// # Architecture
//
//	scene script / Builder calls
//	         ↓
//	    [scene] resolves resources through [convert]
//	         ↓
//	    pre conversions → renderer (protocol on stdin) → post conversions
//	         ↓
//	    [workspace] removed
//
// # Quick Start
//
//	b := scene.NewBuilder(scene.Options{})
//	defer b.Close()
//
//	b.NewTexture("tex1", "sky.hdr")
//	b.NewRenderer("ren1")
//	b.RenderScene("ren1")
//	b.SaveFrameBuffer("fb1", "out.exr")
//
//	runner, err := pipeline.NewRunner(pipeline.Config{LibraryPath: os.Getenv("FJ_LIBRARY_PATH")})
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Run(ctx, b)
//
// [protocol]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/protocol
// [convert]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/convert
// [workspace]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/workspace
// [scene]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fjscene/pkg/buildinfo
package pkg
