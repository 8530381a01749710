package lisp

var userSpecialOps []*langBuiltin
var langSpecialOps = []*langBuiltin{
	{"quote", Formals("expr"), opQuote, true},
	{"'", Formals("expr"), opQuote, true},
	{"if", Formals("condition", "then", VarArgSymbol, "else"), opIf, true},
	{"define", Formals("name", VarArgSymbol, "expr"), opDefine, true},
	{"set!", Formals("name", "expr"), opSet, true},
	{"and", Formals(VarArgSymbol, "expr"), opAnd, true},
	{"or", Formals(VarArgSymbol, "expr"), opOr, true},
}

// RegisterDefaultSpecialOp adds the given function to the list returned by
// DefaultSpecialOps.
func RegisterDefaultSpecialOp(name string, formals []string, fn LBuiltin) {
	userSpecialOps = append(userSpecialOps, &langBuiltin{name, formals, fn, true})
}

// DefaultSpecialOps returns the default set of LBuiltinDef added to LEnv
// objects when LEnv.AddSpecialOps is called without arguments.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, 0, len(langSpecialOps)+len(userSpecialOps))
	for _, op := range langSpecialOps {
		ops = append(ops, op)
	}
	for _, op := range userSpecialOps {
		ops = append(ops, op)
	}
	return ops
}

func opQuote(env *LEnv, args []Ref) (Ref, error) {
	if len(args) != 1 {
		return Nil(), serrf("quote", "one argument expected (got %d)", len(args))
	}
	return args[0], nil
}

func opIf(env *LEnv, args []Ref) (Ref, error) {
	if len(args) != 2 && len(args) != 3 {
		return Nil(), serrf("if", "two or three arguments expected (got %d)", len(args))
	}
	h := env.Heap()
	r, err := env.Eval(args[0])
	if err != nil {
		return Nil(), err
	}
	if !h.IsType(r, LBool) {
		return Nil(), serrf("if", "condition is not a boolean: %s", h.Sprint(r))
	}
	if h.Get(r).Bool {
		return env.Eval(args[1])
	}
	if len(args) == 3 {
		return env.Eval(args[2])
	}
	return Nil(), nil
}

// opDefine handles both (define name expr) and the procedure shorthand
// (define (name formals...) body...).
func opDefine(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if len(args) == 0 {
		return Nil(), serrf("define", "too few arguments provided: 0")
	}
	if h.IsType(args[0], LPair) {
		head := h.Get(args[0])
		if !h.IsType(head.CAR, LSymbol) {
			return Nil(), serrf("define", "procedure name is not a symbol: %s", h.Sprint(head.CAR))
		}
		if len(args) < 2 {
			return Nil(), serrf("define", "procedure has no body")
		}
		formals, err := env.formals("define", head.CDR)
		if err != nil {
			return Nil(), err
		}
		fun := h.Closure(env.Ref, formals, args[1:])
		env.Put(h.Get(head.CAR).Str, fun)
		return fun, nil
	}
	if !h.IsType(args[0], LSymbol) {
		return Nil(), serrf("define", "first argument is not a symbol: %s", h.Sprint(args[0]))
	}
	if len(args) != 2 {
		return Nil(), serrf("define", "two arguments expected (got %d)", len(args))
	}
	v, err := env.Eval(args[1])
	if err != nil {
		return Nil(), err
	}
	env.Put(h.Get(args[0]).Str, v)
	return v, nil
}

func opSet(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if len(args) != 2 {
		return Nil(), serrf("set!", "two arguments expected (got %d)", len(args))
	}
	if !h.IsType(args[0], LSymbol) {
		return Nil(), serrf("set!", "first argument is not a symbol: %s", h.Sprint(args[0]))
	}
	v, err := env.Eval(args[1])
	if err != nil {
		return Nil(), err
	}
	err = env.TrySet(h.Get(args[0]).Str, v)
	if err != nil {
		return Nil(), err
	}
	return v, nil
}

func opAnd(env *LEnv, args []Ref) (Ref, error) {
	if len(args) == 0 {
		return env.Heap().Bool(true), nil
	}
	var r Ref
	for _, expr := range args {
		var err error
		r, err = env.Eval(expr)
		if err != nil {
			return Nil(), err
		}
		if env.Heap().IsFalse(r) {
			return r, nil
		}
	}
	return r, nil
}

func opOr(env *LEnv, args []Ref) (Ref, error) {
	if len(args) == 0 {
		return env.Heap().Bool(false), nil
	}
	var r Ref
	for _, expr := range args {
		var err error
		r, err = env.Eval(expr)
		if err != nil {
			return Nil(), err
		}
		if !env.Heap().IsFalse(r) {
			return r, nil
		}
	}
	return r, nil
}
