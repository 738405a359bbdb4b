// Package ecs provides ECS adapters for cadence's audio events.
//
// The primary adapter is [NewDonburiSink], which bridges audio channel
// lifecycle events (started, stopped, ended, removed) into a [Donburi] world
// as typed events and mirrors every live channel as an entity carrying
// [ChannelComponent]. Subscribe to [AudioEventType] in your ECS systems to
// receive the events.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	host, err := cadence.NewHost(cadence.HostConfig{Config: cfg, EventSink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
