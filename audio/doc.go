// Package audio implements channel playback timing and the manager that
// drives it.
//
// A [Channel] is one live playback instance. It tracks its own position in
// milliseconds and advances only when [Manager.Update] (or [Channel.Update])
// is called with the elapsed frame time, so the same state machine runs
// identically with a real device ([EbitenBackend]) or headless
// ([VirtualBackend]).
//
//	mgr := audio.NewManager(audio.NewVirtualBackend())
//	track, _ := mgr.NewTrackFromFile("music.ogg")
//	ch := track.Play()
//	ch.Ended.Subscribe(func(*audio.Channel) { ... })
//
//	// once per frame:
//	mgr.Update(elapsedMs)
//
// Completed non-looping channels are removed from the manager lazily, on the
// Update pass after the one that ended them.
package audio
