package ecs

// UpdateFrame is handed to every system during one World.Update
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, frame uint64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  newCommands(),
		World:     world,
	}
}
