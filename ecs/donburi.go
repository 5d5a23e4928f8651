package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type carrying entity manager
// lifecycle events. Subscribe to it in Donburi systems and drain it with
// ProcessEvents.
var LifecycleEventType = events.NewEventType[LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink that publishes every event to
// LifecycleEventType in world. Events are queued until the world processes
// them.
func NewDonburiSink(world donburi.World) EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(ev LifecycleEvent) {
	LifecycleEventType.Publish(s.world, ev)
}
