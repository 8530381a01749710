package lisp

import (
	"errors"
)

// Eval evaluates v in the context (scope) of env and returns the resulting
// value.
func (env *LEnv) Eval(v Ref) (Ref, error) {
	if v.IsNil() {
		return Nil(), ErrorConditionf(RuntimeCondition, "empty list is not an expression")
	}
	val := env.Heap().Get(v)
	switch val.Type {
	case LPair:
		return env.EvalCall(v)
	case LSymbol:
		return env.resolve(val.Str)
	case LInt, LBool, LClosure, LLambda, LNative:
		return v, nil
	default:
		return Nil(), ErrorConditionf(RuntimeCondition, "%v is not an expression", val.Type)
	}
}

// EvalSequence evaluates each expression of body in order and returns the
// value of the last one.  An empty body evaluates to the empty list.
func (env *LEnv) EvalSequence(body []Ref) (Ref, error) {
	ret := Nil()
	for _, expr := range body {
		var err error
		ret, err = env.Eval(expr)
		if err != nil {
			return Nil(), err
		}
	}
	return ret, nil
}

// resolve looks up a bare symbol.  The name lambda is special: when nothing
// along the chain binds it, it resolves to a closure builder capturing env.
func (env *LEnv) resolve(name string) (Ref, error) {
	v, err := env.Get(name)
	if err == nil {
		return v, nil
	}
	if name == LambdaSymbol && errors.Is(err, ErrName) {
		return env.Heap().Alloc(LVal{Type: LLambda, Env: env.Ref}), nil
	}
	return Nil(), err
}

// EvalCall evaluates the call form s.  The head of s must evaluate to a
// procedure, which is invoked with all of s.
func (env *LEnv) EvalCall(s Ref) (Ref, error) {
	h := env.Heap()
	if !h.IsType(s, LPair) {
		return Nil(), ErrorConditionf(RuntimeCondition, "not a call form")
	}
	f, err := env.Eval(h.Get(s).CAR)
	if err != nil {
		return Nil(), err
	}
	if !isProcedure(h, f) {
		return Nil(), ErrorConditionf(RuntimeCondition,
			"first element of expression is not a procedure: %s", h.Sprint(f))
	}
	return env.Invoke(f, s)
}

// Invoke calls the procedure fun with the unevaluated call form s, using env
// as the calling scope.  Strict builtins and closures evaluate the operands
// of s in env.  Special operators and the closure builder receive them as
// written.
func (env *LEnv) Invoke(fun Ref, s Ref) (ret Ref, err error) {
	h := env.Heap()
	if !isProcedure(h, fun) {
		return Nil(), ErrorConditionf(RuntimeCondition, "not a procedure: %s", h.Sprint(fun))
	}
	operands, ok := h.Slice(h.Get(s).CDR)
	if !ok {
		return Nil(), ErrorConditionf(SyntaxCondition, "call form is not a proper list")
	}

	f := h.Get(fun)
	stack := env.Runtime.Stack
	special := f.Type == LLambda || (f.Type == LNative && f.Builtin.special)
	err = stack.Push(env.frameName(f, h.Get(s).CAR), special)
	if err != nil {
		return Nil(), env.withStack(err)
	}
	defer stack.Pop()

	switch f.Type {
	case LNative:
		ret, err = env.callBuiltin(f.Builtin, operands)
	case LClosure:
		ret, err = env.callClosure(f, operands)
	case LLambda:
		ret, err = env.buildClosure(f.Env, operands)
	}
	if err != nil {
		return Nil(), env.withStack(err)
	}
	return ret, nil
}

func (env *LEnv) callBuiltin(b *langBuiltin, operands []Ref) (Ref, error) {
	if b.special {
		return b.fun(env, operands)
	}
	if err := b.checkArity(len(operands)); err != nil {
		return Nil(), err
	}
	args, err := env.evalArgs(operands)
	if err != nil {
		return Nil(), err
	}
	return b.fun(env, args)
}

// callClosure binds the evaluated operands to the formals of fun in a new
// frame whose parent is the frame fun captured, then evaluates the body of
// fun in that frame.
func (env *LEnv) callClosure(fun *LVal, operands []Ref) (Ref, error) {
	if len(operands) != len(fun.Formals) {
		return Nil(), berrf(LambdaSymbol, "expected %d arguments (got %d)",
			len(fun.Formals), len(operands))
	}
	args, err := env.evalArgs(operands)
	if err != nil {
		return Nil(), err
	}
	h := env.Heap()
	scope := NewEnv(env.Runtime, fun.Env)
	for i, sym := range fun.Formals {
		scope.Put(h.Get(sym).Str, args[i])
	}
	return scope.EvalSequence(fun.Body)
}

// buildClosure handles (lambda formals body...) for a closure builder that
// captured the frame capture.
func (env *LEnv) buildClosure(capture Ref, operands []Ref) (Ref, error) {
	if len(operands) < 2 {
		return Nil(), serrf(LambdaSymbol, "expected a parameter list and at least one body expression (got %d operands)", len(operands))
	}
	formals, err := env.formals(LambdaSymbol, operands[0])
	if err != nil {
		return Nil(), err
	}
	return env.Heap().Closure(capture, formals, operands[1:]), nil
}

// formals returns the parameter symbols of the list lis.  Dotted parameter
// lists are not supported.
func (env *LEnv) formals(op string, lis Ref) ([]Ref, error) {
	h := env.Heap()
	params, ok := h.Slice(lis)
	if !ok {
		return nil, serrf(op, "parameter list is not a proper list")
	}
	for _, p := range params {
		if !h.IsType(p, LSymbol) {
			return nil, serrf(op, "parameter is not a symbol: %s", h.Sprint(p))
		}
	}
	return params, nil
}

func (env *LEnv) evalArgs(operands []Ref) ([]Ref, error) {
	args := make([]Ref, len(operands))
	for i := range operands {
		var err error
		args[i], err = env.Eval(operands[i])
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

// frameName returns the name a call to f appears under in the call stack.
func (env *LEnv) frameName(f *LVal, head Ref) string {
	switch f.Type {
	case LNative:
		return f.Builtin.name
	case LLambda:
		return LambdaSymbol
	}
	if env.Heap().IsType(head, LSymbol) {
		return env.Heap().Get(head).Str
	}
	return "<lambda>"
}

// withStack attaches a copy of the call stack to err if err is an ErrorVal
// without one.
func (env *LEnv) withStack(err error) error {
	lerr, ok := err.(*ErrorVal)
	if ok && lerr.Stack == nil {
		lerr.Stack = env.Runtime.Stack.Copy()
	}
	return err
}
