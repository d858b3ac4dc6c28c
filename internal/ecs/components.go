package ecs

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/younwookim/catscapade/internal/domain/entity"
)

// ActorData links an entity to its domain actor and capture object
type ActorData struct {
	Actor  *entity.Actor
	Object *resolv.Object
}

// Actor is attached to every moving entity
var Actor = donburi.NewComponentType[ActorData]()

// Tags
var (
	Player = donburi.NewTag().SetName("Player")
	Mouse  = donburi.NewTag().SetName("Mouse")
)
