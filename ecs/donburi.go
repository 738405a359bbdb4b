package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/cadence/audio"
)

// AudioEventType is the Donburi event type for audio channel events.
var AudioEventType = events.NewEventType[audio.ChannelEvent]()

// ChannelData is attached to the entity mirroring one audio channel.
type ChannelData struct {
	Name    string
	Channel *audio.Channel
}

// ChannelComponent marks entities that mirror a live audio channel.
var ChannelComponent = donburi.NewComponentType[ChannelData]()

// ChannelQuery matches every channel entity.
var ChannelQuery = donburi.NewQuery(filter.Contains(ChannelComponent))

type donburiSink struct {
	world    donburi.World
	entities map[*audio.Channel]donburi.Entity
}

// NewDonburiSink creates an audio.EventSink backed by a Donburi world.
// Events are published to AudioEventType and can be consumed with
// events.Subscribe and ProcessEvents. A channel gains an entity the first
// time it starts and loses it when the manager removes it.
func NewDonburiSink(world donburi.World) audio.EventSink {
	return &donburiSink{world: world, entities: make(map[*audio.Channel]donburi.Entity)}
}

func (s *donburiSink) EmitChannelEvent(event audio.ChannelEvent) {
	switch event.Type {
	case audio.ChannelStarted:
		if _, ok := s.entities[event.Channel]; !ok && event.Channel != nil {
			entity := s.world.Create(ChannelComponent)
			ChannelComponent.SetValue(s.world.Entry(entity), ChannelData{Name: event.Name, Channel: event.Channel})
			s.entities[event.Channel] = entity
		}
	case audio.ChannelRemoved:
		if entity, ok := s.entities[event.Channel]; ok {
			if s.world.Valid(entity) {
				s.world.Remove(entity)
			}
			delete(s.entities, event.Channel)
		}
	}
	AudioEventType.Publish(s.world, event)
}
