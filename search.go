package sekai

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rotisserie/eris"
)

// Search returns the entities matched by f for which the where expression is true.
//
// The expression sees one variable per component of the entity, named after the bare
// component type name, plus "_id" holding the entity id:
//
//	Health.HP > 50 && _id != 3
//
// A component the entity lacks reads as nil, and plain member access on it fails the whole
// search. Use nil-safe access when the filter does not require the component:
//
//	(Health?.HP ?? 0) > 50
//
// Two components of one entity whose types share a name in different packages make the
// search fail instead of shadowing each other. An empty where returns every matched entity.
func (w *World) Search(f *Filter, where string) ([]Entity, error) {
	w.mustBeLive()
	if f.world != w {
		return nil, eris.New("filter belongs to another world")
	}

	program, err := compileWhere(where)
	if err != nil {
		return nil, err
	}

	var (
		result []Entity
		runErr error
	)
	f.each(func(e Entity) bool {
		if program == nil {
			result = append(result, e)
			return true
		}
		env, err := w.entityEnv(e)
		if err != nil {
			runErr = err
			return false
		}
		ok, err := matchesWhere(program, env)
		if err != nil {
			runErr = eris.Wrapf(err, "entity %s", e)
			return false
		}
		if ok {
			result = append(result, e)
		}
		return true
	})
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

// compileWhere compiles a where clause, or returns a nil program for an empty one.
func compileWhere(where string) (*vm.Program, error) {
	if where == "" {
		return nil, nil //nolint:nilnil // no clause matches everything
	}
	program, err := expr.Compile(where, expr.AsBool())
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse where clause")
	}
	return program, nil
}

// matchesWhere runs a compiled clause against one entity environment.
func matchesWhere(program *vm.Program, env map[string]any) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, eris.Wrap(err, "failed to run where clause")
	}
	// The clause is compiled without an environment, so the result type is only known here.
	ok, isBool := output.(bool)
	if !isBool {
		return false, eris.New("where clause does not evaluate to a bool")
	}
	return ok, nil
}

// entityEnv maps the component type names of e to copies of its values.
func (w *World) entityEnv(e Entity) (map[string]any, error) {
	a := w.records[e.ID].arch
	env := make(map[string]any, a.sig.Count()+1)
	// expr compares untyped integer literals against int, not uint32.
	env["_id"] = int(e.ID)
	var err error
	a.sig.Range(func(id ComponentID) {
		p := w.pools[id]
		v, ok := p.getAny(e.ID)
		if !ok || err != nil {
			return
		}
		name := p.name()
		if _, taken := env[name]; taken {
			err = eris.Errorf("entity %s has two components named %q (%s)", e, name, p.typ())
			return
		}
		env[name] = v
	})
	if err != nil {
		return nil, err
	}
	return env, nil
}
