// Package cadence is a real-time framework core for [Ebitengine]: a drawable
// scene graph with a time-driven transform scheduler, plus an audio channel
// manager in the audio subpackage.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for a [Host]:
//
//	host, err := cadence.NewHost(cadence.HostConfig{Config: cadence.DefaultConfig()})
//	if err != nil {
//		log.Fatal(err)
//	}
//	box := cadence.NewBox("box", cadence.Vec2{X: 64, Y: 64})
//	host.Scene.Root().AddChild(box)
//	box.MoveTo(cadence.Vec2{X: 200, Y: 100}, 500, cadence.EasingOutQuad)
//	log.Fatal(cadence.Run(host))
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Scene graph
//
// Every element is a [Drawable]. Drawables form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform, alpha and clock.
//
// # Clocks
//
// Times are milliseconds. A [Scene] wraps its source [Clock] in a
// [FramedClock] so every drawable sees the same time within one frame. A
// drawable may carry its own clock via [Drawable.SetClock]; otherwise it
// uses its nearest ancestor's.
//
// # Transforms
//
// Operations such as [Drawable.MoveTo] and [Drawable.FadeTo] register a
// [Transform] starting at the drawable's current time plus its chain
// cursor. [Drawable.Wait], [Drawable.Then] and [Drawable.Delay] move the
// cursor and return a [Sequence]; operations on one Sequence start
// together:
//
//	box.FadeIn(200, cadence.EasingNone).
//		Then().MoveTo(cadence.Vec2{X: 300}, 400, cadence.EasingInOutSine).ScaleTo(cadence.Vec2{X: 2, Y: 2}, 400, cadence.EasingNone).
//		Then().FadeOut(200, cadence.EasingNone)
//
// Transforms are evaluated by [Drawable.UpdateTransforms], which
// [Scene.Update] calls for every drawable. When transforms on the same
// property overlap, the last one registered wins.
//
// # Storyboards
//
// [LoadStoryboard] parses a YAML list of steps that can be replayed onto any
// drawable. [Host.WatchStoryboard] reloads one whenever its file changes.
//
// [Ebitengine]: https://ebitengine.org
package cadence
