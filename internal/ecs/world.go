package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/domain/entity"
)

// World is the actor registry: a donburi world plus the capture space
// every actor is tracked in
type World struct {
	donburi.World
	capture *system.CaptureSystem

	player  *donburi.Entry
	entries map[*entity.Actor]donburi.Entity
}

// NewWorld creates an empty world over stage
func NewWorld(stage *entity.Stage) *World {
	return &World{
		World:   donburi.NewWorld(),
		capture: system.NewCaptureSystem(stage),
		entries: make(map[*entity.Actor]donburi.Entity),
	}
}

// CreatePlayer adds the player actor. A world holds one player.
func (w *World) CreatePlayer(a *entity.Actor) *donburi.Entry {
	e := w.add(a, Player)
	w.player = e
	return e
}

// CreateMouse adds an NPC actor
func (w *World) CreateMouse(a *entity.Actor) *donburi.Entry {
	return w.add(a, Mouse)
}

func (w *World) add(a *entity.Actor, tag donburi.IComponentType) *donburi.Entry {
	id := w.Create(Actor, tag)
	e := w.Entry(id)
	Actor.SetValue(e, ActorData{
		Actor:  a,
		Object: w.capture.Track(a),
	})
	w.entries[a] = id
	return e
}

// Destroy removes an actor and its capture object
func (w *World) Destroy(a *entity.Actor) {
	id, ok := w.entries[a]
	if !ok {
		return
	}
	if e := w.Entry(id); e.Valid() {
		w.capture.Untrack(Actor.Get(e).Object)
	}
	w.Remove(id)
	delete(w.entries, a)
}

// Exists reports whether the actor is still in the world
func (w *World) Exists(a *entity.Actor) bool {
	_, ok := w.entries[a]
	return ok
}

// PlayerActor returns the player actor, nil before CreatePlayer
func (w *World) PlayerActor() *entity.Actor {
	if w.player == nil {
		return nil
	}
	return Actor.Get(w.player).Actor
}

// EachMouse calls fn for every NPC. fn must not add or remove actors.
func (w *World) EachMouse(fn func(a *entity.Actor)) {
	Mouse.Each(w.World, func(e *donburi.Entry) {
		fn(Actor.Get(e).Actor)
	})
}

// MouseCount returns the number of live NPCs
func (w *World) MouseCount() int {
	return len(w.entries) - w.playerCount()
}

func (w *World) playerCount() int {
	if w.player == nil {
		return 0
	}
	return 1
}

// sync moves an entry's capture object to its actor
func (w *World) sync(e *donburi.Entry) {
	w.capture.Sync(Actor.Get(e).Object)
}

// captures returns the mice overlapping the player
func (w *World) captures() []*entity.Actor {
	if w.player == nil {
		return nil
	}
	return w.capture.Captures(Actor.Get(w.player).Object)
}
