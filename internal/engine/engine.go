package engine

import (
	"threadqube/internal/database"
	"threadqube/internal/engine/actors"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	userActor    *actor.PID
	postActor    *actor.PID
	commentActor *actor.PID
}

func NewEngine(system *actor.ActorSystem, store database.Store, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	// Spawn user actor
	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, metrics)
	})
	userPID := context.Spawn(userProps)

	// Spawn post actor
	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(store, metrics)
	})
	postPID := context.Spawn(postProps)

	// Spawn comment actor
	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, metrics)
	})
	commentPID := context.Spawn(commentProps)

	return &Engine{
		userActor:    userPID,
		postActor:    postPID,
		commentActor: commentPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}
