package lisp

// LBuiltin is a function that executes a builtin procedure.  Strict builtins
// receive evaluated arguments.  Special operators receive their operands as
// written.
type LBuiltin func(env *LEnv, args []Ref) (Ref, error)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() []string
	Eval(env *LEnv, args []Ref) (Ref, error)
}

type langBuiltin struct {
	name    string
	formals []string
	fun     LBuiltin
	special bool
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args []Ref) (Ref, error) {
	return fun.fun(env, args)
}

// checkArity returns a runtime condition if a call with n arguments does not
// match the formals of fun.
func (fun *langBuiltin) checkArity(n int) error {
	for i, name := range fun.formals {
		if name == VarArgSymbol {
			if n < i {
				return berrf(fun.name, "at least %d arguments expected (got %d)", i, n)
			}
			return nil
		}
	}
	if n != len(fun.formals) {
		return berrf(fun.name, "%d arguments expected (got %d)", len(fun.formals), n)
	}
	return nil
}

// Formals returns a formal argument list containing argSymbols.  Any
// arguments after VarArgSymbol are optional.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"number?", Formals("x"), builtinIsNumber, false},
	{"boolean?", Formals("x"), builtinIsBoolean, false},
	{"symbol?", Formals("x"), builtinIsSymbol, false},
	{"pair?", Formals("x"), builtinIsPair, false},
	{"null?", Formals("x"), builtinIsNull, false},
	{"list?", Formals("x"), builtinIsList, false},
	{"not", Formals("x"), builtinNot, false},
	{"+", Formals(VarArgSymbol, "x"), builtinAdd, false},
	{"-", Formals("x", VarArgSymbol, "rest"), builtinSub, false},
	{"*", Formals(VarArgSymbol, "x"), builtinMul, false},
	{"/", Formals("x", VarArgSymbol, "rest"), builtinDiv, false},
	{"max", Formals("x", VarArgSymbol, "rest"), builtinMax, false},
	{"min", Formals("x", VarArgSymbol, "rest"), builtinMin, false},
	{"abs", Formals("x"), builtinAbs, false},
	{"=", Formals(VarArgSymbol, "x"), builtinEqNum, false},
	{">", Formals(VarArgSymbol, "x"), builtinGT, false},
	{">=", Formals(VarArgSymbol, "x"), builtinGEq, false},
	{"<", Formals(VarArgSymbol, "x"), builtinLT, false},
	{"<=", Formals(VarArgSymbol, "x"), builtinLEq, false},
	{"cons", Formals("head", "tail"), builtinCons, false},
	{"car", Formals("pair"), builtinCAR, false},
	{"cdr", Formals("pair"), builtinCDR, false},
	{"list", Formals(VarArgSymbol, "args"), builtinList, false},
	{"list-ref", Formals("lis", "k"), builtinListRef, false},
	{"list-tail", Formals("lis", "k"), builtinListTail, false},
	{"set-car!", Formals("pair", "x"), builtinSetCAR, false},
	{"set-cdr!", Formals("pair", "x"), builtinSetCDR, false},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals []string, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn, false})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, 0, len(langBuiltins)+len(userBuiltins))
	for _, fun := range langBuiltins {
		ops = append(ops, fun)
	}
	for _, fun := range userBuiltins {
		ops = append(ops, fun)
	}
	return ops
}

func builtinIsNumber(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	return h.Bool(h.IsType(args[0], LInt)), nil
}

func builtinIsBoolean(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	return h.Bool(h.IsType(args[0], LBool)), nil
}

func builtinIsSymbol(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	return h.Bool(h.IsType(args[0], LSymbol)), nil
}

func builtinIsPair(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	return h.Bool(h.IsType(args[0], LPair)), nil
}

func builtinIsNull(env *LEnv, args []Ref) (Ref, error) {
	return env.Heap().Bool(args[0].IsNil()), nil
}

func builtinIsList(env *LEnv, args []Ref) (Ref, error) {
	_, ok := env.Heap().Len(args[0])
	return env.Heap().Bool(ok), nil
}

func builtinNot(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	return h.Bool(h.IsFalse(args[0])), nil
}

// intArgs returns the values of args, which must all be integers.
func intArgs(env *LEnv, fun string, args []Ref) ([]int64, error) {
	h := env.Heap()
	xs := make([]int64, len(args))
	for i, r := range args {
		if !h.IsType(r, LInt) {
			return nil, berrf(fun, "argument is not an integer: %s", h.Sprint(r))
		}
		xs[i] = h.Get(r).Int
	}
	return xs, nil
}

// foldInt folds the integer arguments of fun with op, starting from the first
// argument.
func foldInt(env *LEnv, fun string, args []Ref, op func(acc, x int64) (int64, error)) (Ref, error) {
	xs, err := intArgs(env, fun, args)
	if err != nil {
		return Nil(), err
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc, err = op(acc, x)
		if err != nil {
			return Nil(), err
		}
	}
	return env.Heap().Int(acc), nil
}

func builtinAdd(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "+", prependInt(env, 0, args), func(acc, x int64) (int64, error) {
		return acc + x, nil
	})
}

func builtinMul(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "*", prependInt(env, 1, args), func(acc, x int64) (int64, error) {
		return acc * x, nil
	})
}

// prependInt returns args with the integer identity in front, so that an
// empty argument list folds to identity.
func prependInt(env *LEnv, identity int64, args []Ref) []Ref {
	ret := make([]Ref, 0, len(args)+1)
	ret = append(ret, env.Heap().Int(identity))
	return append(ret, args...)
}

func builtinSub(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "-", args, func(acc, x int64) (int64, error) {
		return acc - x, nil
	})
}

func builtinDiv(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "/", args, func(acc, x int64) (int64, error) {
		if x == 0 {
			return 0, berrf("/", "division by zero")
		}
		return acc / x, nil
	})
}

func builtinMax(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "max", args, func(acc, x int64) (int64, error) {
		if x > acc {
			return x, nil
		}
		return acc, nil
	})
}

func builtinMin(env *LEnv, args []Ref) (Ref, error) {
	return foldInt(env, "min", args, func(acc, x int64) (int64, error) {
		if x < acc {
			return x, nil
		}
		return acc, nil
	})
}

func builtinAbs(env *LEnv, args []Ref) (Ref, error) {
	xs, err := intArgs(env, "abs", args)
	if err != nil {
		return Nil(), err
	}
	if xs[0] < 0 {
		return env.Heap().Int(-xs[0]), nil
	}
	return args[0], nil
}

// compareInt reports whether every pair of consecutive integer arguments
// satisfies rel.
func compareInt(env *LEnv, fun string, args []Ref, rel func(a, b int64) bool) (Ref, error) {
	xs, err := intArgs(env, fun, args)
	if err != nil {
		return Nil(), err
	}
	for i := 1; i < len(xs); i++ {
		if !rel(xs[i-1], xs[i]) {
			return env.Heap().Bool(false), nil
		}
	}
	return env.Heap().Bool(true), nil
}

func builtinEqNum(env *LEnv, args []Ref) (Ref, error) {
	return compareInt(env, "=", args, func(a, b int64) bool { return a == b })
}

func builtinGT(env *LEnv, args []Ref) (Ref, error) {
	return compareInt(env, ">", args, func(a, b int64) bool { return a > b })
}

func builtinGEq(env *LEnv, args []Ref) (Ref, error) {
	return compareInt(env, ">=", args, func(a, b int64) bool { return a >= b })
}

func builtinLT(env *LEnv, args []Ref) (Ref, error) {
	return compareInt(env, "<", args, func(a, b int64) bool { return a < b })
}

func builtinLEq(env *LEnv, args []Ref) (Ref, error) {
	return compareInt(env, "<=", args, func(a, b int64) bool { return a <= b })
}

func builtinCons(env *LEnv, args []Ref) (Ref, error) {
	return env.Heap().Cons(args[0], args[1]), nil
}

func builtinCAR(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if !h.IsType(args[0], LPair) {
		return Nil(), berrf("car", "argument is not a pair: %s", h.Sprint(args[0]))
	}
	return h.Get(args[0]).CAR, nil
}

func builtinCDR(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if !h.IsType(args[0], LPair) {
		return Nil(), berrf("cdr", "argument is not a pair: %s", h.Sprint(args[0]))
	}
	return h.Get(args[0]).CDR, nil
}

func builtinList(env *LEnv, args []Ref) (Ref, error) {
	return env.Heap().List(args...), nil
}

// listIndex validates the arguments of list-ref and list-tail.  The index
// must be below the length of the list, or not exceed it when inclusive is
// true.
func listIndex(env *LEnv, fun string, args []Ref, inclusive bool) (int, error) {
	h := env.Heap()
	n, ok := h.Len(args[0])
	if !ok {
		return 0, berrf(fun, "first argument is not a proper list: %s", h.Sprint(args[0]))
	}
	if !h.IsType(args[1], LInt) {
		return 0, berrf(fun, "second argument is not an integer: %s", h.Sprint(args[1]))
	}
	k := h.Get(args[1]).Int
	limit := int64(n)
	if inclusive {
		limit++
	}
	if k < 0 || k >= limit {
		return 0, berrf(fun, "index out of range: %d", k)
	}
	return int(k), nil
}

func builtinListRef(env *LEnv, args []Ref) (Ref, error) {
	k, err := listIndex(env, "list-ref", args, false)
	if err != nil {
		return Nil(), err
	}
	h := env.Heap()
	return h.Get(nthTail(h, args[0], k)).CAR, nil
}

// builtinListTail returns the tail of the list itself.  Mutating the result
// mutates the argument.
func builtinListTail(env *LEnv, args []Ref) (Ref, error) {
	k, err := listIndex(env, "list-tail", args, true)
	if err != nil {
		return Nil(), err
	}
	return nthTail(env.Heap(), args[0], k), nil
}

func nthTail(h *Heap, lis Ref, k int) Ref {
	for ; k > 0; k-- {
		lis = h.Get(lis).CDR
	}
	return lis
}

func builtinSetCAR(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if !h.IsType(args[0], LPair) {
		return Nil(), berrf("set-car!", "first argument is not a pair: %s", h.Sprint(args[0]))
	}
	h.Get(args[0]).CAR = args[1]
	return args[1], nil
}

func builtinSetCDR(env *LEnv, args []Ref) (Ref, error) {
	h := env.Heap()
	if !h.IsType(args[0], LPair) {
		return Nil(), berrf("set-cdr!", "first argument is not a pair: %s", h.Sprint(args[0]))
	}
	h.Get(args[0]).CDR = args[1]
	return args[1], nil
}
