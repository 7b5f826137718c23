package sekai

import "github.com/rotisserie/eris"

var (
	// ErrWorldDestroyed is raised when an operation reaches a world after Destroy.
	ErrWorldDestroyed = eris.New("world is destroyed")

	// ErrWorldExists is returned when a registry already holds a world with the requested name.
	ErrWorldExists = eris.New("world already exists")

	// ErrWorldNotFound is returned when a registry has no world with the requested name.
	ErrWorldNotFound = eris.New("world does not exist")

	// ErrSharedExists is returned when shared data of the same type is already attached to a world.
	ErrSharedExists = eris.New("shared data already exists")

	// ErrSharedNotFound is returned when a world holds no shared data of the requested type.
	ErrSharedNotFound = eris.New("shared data does not exist")

	// ErrEntityNotFound is returned when an entity handle is stale or belongs to another world.
	ErrEntityNotFound = eris.New("entity does not exist")
)
