// Package backdrop is a decorative, animated 3D background for [Ebitengine].
//
// A [Background] owns one procedurally generated scene: drifting particles,
// orbiting polyhedra and tumbling planes of binary code, or, in the network
// variant, a field of nodes joined by proximity edges. Every frame the scene
// reacts to an eased pointer position and is projected through a perspective
// [Camera] onto a [Surface].
//
// Failure is never fatal to the host. [Initialize] returns an error for a
// missing container without emitting anything; a missing display or a failed
// construction also emits a [FailedEvent], so the host can fall back to a
// [StaticBackground].
//
// # Quick start
//
//	host := page.New(1280, 720)
//	host.AddContainer(backdrop.DefaultContainerID)
//
//	bg, err := backdrop.Initialize(host, backdrop.Options{})
//	if err != nil {
//		return backdrop.RunStatic(ctx, true, backdrop.RunConfig{})
//	}
//	return backdrop.Run(ctx, bg, backdrop.RunConfig{
//		Title: "CodeClash", Width: 1280, Height: 720,
//	})
//
// For full control, drive [Background.Frame] yourself or wrap a [Loop] in
// your own [ebiten.Game].
//
// # Events
//
// [Events] carries three synchronous signals: Started once a background is
// running, Failed when it could not start, and ThemeChanged to switch every
// background between the dark and light theme.
//
// # Testing
//
// [LoadTestScript] parses a JSON script of pointer, sweep, resize, theme,
// wait, screenshot and stop steps that a [Loop] replays frame by frame.
//
// [Ebitengine]: https://ebitengine.org
package backdrop
