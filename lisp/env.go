package lisp

// LEnv is a lisp environment.  It is a view of one frame of the environment
// chain stored on the runtime heap.
type LEnv struct {
	Ref     Ref
	Runtime *Runtime
}

// NewEnv allocates a frame whose parent is parent and returns an environment
// for it.  A nil parent creates a root environment.
func NewEnv(rt *Runtime, parent Ref) *LEnv {
	return &LEnv{
		Ref:     rt.Heap.Frame(parent),
		Runtime: rt,
	}
}

// Child returns a new environment whose frame has env as its parent.
func (env *LEnv) Child() *LEnv {
	return NewEnv(env.Runtime, env.Ref)
}

// Parent returns the enclosing environment of env or nil if env is a root.
func (env *LEnv) Parent() *LEnv {
	parent := env.frame().Parent
	if parent.IsNil() {
		return nil
	}
	return &LEnv{Ref: parent, Runtime: env.Runtime}
}

// Heap returns the heap env and its values are allocated on.
func (env *LEnv) Heap() *Heap {
	return env.Runtime.Heap
}

func (env *LEnv) frame() *LVal {
	return env.Runtime.Heap.Get(env.Ref)
}

// Get returns the value bound to name in the nearest frame of the chain
// starting at env.  Binding cells are unwrapped.  Get returns a name
// condition if no frame binds name.
func (env *LEnv) Get(name string) (Ref, error) {
	h := env.Heap()
	for r := env.Ref; !r.IsNil(); {
		frame := h.Get(r)
		b, ok := frame.Scope[name]
		if ok {
			if h.IsType(b, LCell) {
				return h.Get(b).Held, nil
			}
			return b, nil
		}
		r = frame.Parent
	}
	return Nil(), ErrorConditionf(NameCondition, "unbound symbol: %s", name)
}

// Put binds name to v in env, replacing any binding name already has in
// env's own frame.  Frames further up the chain are never modified.
func (env *LEnv) Put(name string, v Ref) {
	env.frame().Scope[name] = env.binding(v)
}

// TrySet rebinds name in the nearest frame of the chain that binds it.  When
// the existing binding is a cell and v is not a procedure the cell is
// updated in place so every holder of the cell observes v.  TrySet returns a
// name condition if no frame binds name.
func (env *LEnv) TrySet(name string, v Ref) error {
	h := env.Heap()
	for r := env.Ref; !r.IsNil(); {
		frame := h.Get(r)
		b, ok := frame.Scope[name]
		if !ok {
			r = frame.Parent
			continue
		}
		if h.IsType(b, LCell) && !isProcedure(h, v) {
			h.Get(b).Held = v
			return nil
		}
		frame.Scope[name] = env.binding(v)
		return nil
	}
	return ErrorConditionf(NameCondition, "set!: unbound symbol: %s", name)
}

// binding returns the value stored in a frame for v.  Procedures are stored
// directly and anything else is wrapped in a mutable cell.
func (env *LEnv) binding(v Ref) Ref {
	h := env.Heap()
	if isProcedure(h, v) {
		return v
	}
	return h.Cell(v)
}

// AddSpecialOps binds the given special operators to their names in env.  When
// called with no arguments AddSpecialOps adds the DefaultSpecialOps to env.
func (env *LEnv) AddSpecialOps(ops ...LBuiltinDef) {
	if len(ops) == 0 {
		ops = DefaultSpecialOps()
	}
	env.addBuiltins(ops, true)
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	env.addBuiltins(funs, false)
}

func (env *LEnv) addBuiltins(defs []LBuiltinDef, special bool) {
	h := env.Heap()
	for _, def := range defs {
		if _, ok := env.frame().Scope[def.Name()]; ok {
			panic("symbol already defined: " + def.Name())
		}
		b := &langBuiltin{
			name:    def.Name(),
			formals: def.Formals(),
			fun:     def.Eval,
			special: special,
		}
		env.Put(def.Name(), h.Alloc(LVal{Type: LNative, Builtin: b}))
	}
}

func isProcedure(h *Heap, r Ref) bool {
	return !r.IsNil() && h.Get(r).IsCallable()
}
