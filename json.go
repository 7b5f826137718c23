package sekai

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// MarshalEntity renders e as a JSON object holding "_id", "_generation" and one field per
// component, named after the component type. Two component types sharing a name make it
// fail, as with Search. It is meant for inspection and logs; the output cannot be loaded
// back. A destroyed world panics.
func MarshalEntity(e Entity) ([]byte, error) {
	w := e.world
	if w == nil {
		return nil, eris.Wrapf(ErrEntityNotFound, "entity %s", e)
	}
	w.mustBeLive()
	if !w.isAlive(e) {
		return nil, eris.Wrapf(ErrEntityNotFound, "entity %s", e)
	}
	env, err := w.entityEnv(e)
	if err != nil {
		return nil, err
	}
	env["_id"] = e.ID
	env["_generation"] = e.Generation

	bz, err := json.Marshal(env)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to encode entity %s", e)
	}
	return bz, nil
}

