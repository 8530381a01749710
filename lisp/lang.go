package lisp

// VarArgSymbol is the symbol that indicates a variadic argument in the formal
// argument list of a builtin.
const VarArgSymbol = "&rest"

// LambdaSymbol is the name that evaluates to a closure builder when it is not
// bound anywhere along the environment chain.
const LambdaSymbol = "lambda"
