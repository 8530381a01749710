package schemetest

import "testing"

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"atoms", TestSequence{
			{"1", "1"},
			{"-2", "-2"},
			{"+3", "3"},
			{"#t", "#t"},
			{"#f", "#f"},
			{"x", "name-error"},
			{"'x", "x"},
			{"'#t", "#t"},
			{"(boolean? '#t)", "#f"},
			{"(boolean? #t)", "#t"},
			{"()", "runtime-error"},
			{"'()", "()"},
			{"", "syntax-error"},
			{"1 2", "syntax-error"},
			{"(1", "syntax-error"},
			{"\"\"", "syntax-error"},
		}},
		{"procedures print", TestSequence{
			{"+", "<builtin-function ``+''>"},
			{"car", "<builtin-function ``car''>"},
			{"if", "<special-op ``if''>"},
			{"quote", "<special-op ``quote''>"},
			{"lambda", "<special-op ``lambda''>"},
			{"(lambda (x) x)", "<lambda>"},
			{"(list car 1)", "(<builtin-function ``car''> 1)"},
		}},
		{"quote", TestSequence{
			{"(quote (1 2))", "(1 2)"},
			{"'(1 . 2)", "(1 . 2)"},
			{"''x", "(quote x)"},
			{"(quote)", "syntax-error"},
			{"(quote 1 2)", "syntax-error"},
		}},
		{"calls", TestSequence{
			{"(1 2)", "runtime-error"},
			{"(#t)", "runtime-error"},
			{"('car '(1))", "runtime-error"},
			{"((car (list + -)) 1 2)", "3"},
			{"(+ 1 . 2)", "syntax-error"},
		}},
		{"arithmetic", TestSequence{
			{"(+)", "0"},
			{"(*)", "1"},
			{"(+ 1 2 3)", "6"},
			{"(* 2 3 4)", "24"},
			{"(- 5)", "5"},
			{"(- 10 1 2)", "7"},
			{"(/ 5)", "5"},
			{"(/ 7 2)", "3"},
			{"(/ -7 2)", "-3"},
			{"(/ 100 5 2)", "10"},
			{"(/ 1 0)", "runtime-error"},
			{"(-)", "runtime-error"},
			{"(/)", "runtime-error"},
			{"(max 1 5 3)", "5"},
			{"(min 4 -2 9)", "-2"},
			{"(max 7)", "7"},
			{"(max)", "runtime-error"},
			{"(min)", "runtime-error"},
			{"(abs -7)", "7"},
			{"(abs 7)", "7"},
			{"(abs)", "runtime-error"},
			{"(abs 1 2)", "runtime-error"},
			{"(+ 1 #t)", "runtime-error"},
			{"(* 1 'a)", "runtime-error"},
			{"(- '(1))", "runtime-error"},
			{"(+ 1 (* 2 3))", "7"},
		}},
		{"comparison", TestSequence{
			{"(=)", "#t"},
			{"(< 1)", "#t"},
			{"(< 1 2 3)", "#t"},
			{"(< 1 3 2)", "#f"},
			{"(> 3 2 1)", "#t"},
			{"(> 3 3)", "#f"},
			{"(>= 3 3 2)", "#t"},
			{"(<= 1 1 2)", "#t"},
			{"(<= 2 1)", "#f"},
			{"(= 2 2 2)", "#t"},
			{"(= 2 2 3)", "#f"},
			{"(= 1 #f)", "runtime-error"},
			{"(< 'a 1)", "runtime-error"},
		}},
		{"predicates", TestSequence{
			{"(number? 1)", "#t"},
			{"(number? 'a)", "#f"},
			{"(number? '())", "#f"},
			{"(symbol? 'a)", "#t"},
			{"(symbol? 1)", "#f"},
			{"(boolean? #f)", "#t"},
			{"(boolean? 0)", "#f"},
			{"(pair? '(1))", "#t"},
			{"(pair? '(1 . 2))", "#t"},
			{"(pair? '())", "#f"},
			{"(null? '())", "#t"},
			{"(null? '(1))", "#f"},
			{"(null? 0)", "#f"},
			{"(list? '(1 2))", "#t"},
			{"(list? '())", "#t"},
			{"(list? '(1 . 2))", "#f"},
			{"(list? 1)", "#f"},
			{"(not #f)", "#t"},
			{"(not #t)", "#f"},
			{"(not 0)", "#f"},
			{"(not '())", "#f"},
			{"(number?)", "runtime-error"},
			{"(not 1 2)", "runtime-error"},
		}},
		{"lists", TestSequence{
			{"(cons 1 2)", "(1 . 2)"},
			{"(cons 1 '())", "(1)"},
			{"(cons 1 (cons 2 (cons 3 '())))", "(1 2 3)"},
			{"(cons 1)", "runtime-error"},
			{"(list 1 2 3)", "(1 2 3)"},
			{"(list)", "()"},
			{"(list 1 'a #t '())", "(1 a #t ())"},
			{"(car '(1 2))", "1"},
			{"(cdr '(1 2))", "(2)"},
			{"(cdr '(1 . 2))", "2"},
			{"(car '())", "runtime-error"},
			{"(cdr 1)", "runtime-error"},
			{"(list-ref '(1 2 3) 0)", "1"},
			{"(list-ref '(1 2 3) 2)", "3"},
			{"(list-ref '(1 2 3) 3)", "runtime-error"},
			{"(list-ref '(1 2 3) -1)", "runtime-error"},
			{"(list-ref '(1 2 . 3) 0)", "runtime-error"},
			{"(list-ref 5 0)", "runtime-error"},
			{"(list-ref '(1 2) 'a)", "runtime-error"},
			{"(list-tail '(1 2 3) 0)", "(1 2 3)"},
			{"(list-tail '(1 2 3) 1)", "(2 3)"},
			{"(list-tail '(1 2 3) 3)", "()"},
			{"(list-tail '() 0)", "()"},
			{"(list-tail '(1 2 3) 4)", "runtime-error"},
		}},
		{"mutation", TestSequence{
			{"(define x (list 1 2))", "(1 2)"},
			{"(set-car! x 5)", "5"},
			{"x", "(5 2)"},
			{"(set-cdr! x 3)", "3"},
			{"x", "(5 . 3)"},
			{"(set-car! 1 2)", "runtime-error"},
			{"(set-cdr! '() 2)", "runtime-error"},
			{"(set-car! x)", "runtime-error"},
			{"(define y (list 1 2 3))", "(1 2 3)"},
			{"(set-car! (list-tail y 2) 'c)", "c"},
			{"y", "(1 2 c)"},
		}},
		{"cycles", TestSequence{
			{"(define x (list 1 2))", "(1 2)"},
			{"(set-cdr! (cdr x) x)", "#0=(1 2 . #0#)"},
			{"x", "#0=(1 2 . #0#)"},
			{"(list? x)", "#f"},
			{"(pair? x)", "#t"},
			{"(car (cdr (cdr x)))", "1"},
			{"(list-ref x 0)", "runtime-error"},
			{"(set-car! x x)", "#0=(#0# 2 . #0#)"},
			{"(list x x)", "(#0=(#0# 2 . #0#) #0#)"},
			{"(define y (list 1))", "(1)"},
			{"(set-car! y y)", "#0=(#0#)"},
		}},
		{"if", TestSequence{
			{"(if #t 1 2)", "1"},
			{"(if #f 1 2)", "2"},
			{"(if #f 1)", "()"},
			{"(if (< 1 2) 'yes 'no)", "yes"},
			{"(if #t 1 (/ 1 0))", "1"},
			{"(if #f (/ 1 0) 2)", "2"},
			{"(if 1 2 3)", "syntax-error"},
			{"(if '() 2 3)", "syntax-error"},
			{"(if #t)", "syntax-error"},
			{"(if)", "syntax-error"},
			{"(if #t 1 2 3)", "syntax-error"},
			{"(if (car 1) 1 2)", "runtime-error"},
		}},
		{"and or", TestSequence{
			{"(and)", "#t"},
			{"(or)", "#f"},
			{"(and #f (/ 1 0))", "#f"},
			{"(or 1 (/ 1 0))", "1"},
			{"(and 1 2)", "2"},
			{"(and 1 #f 3)", "#f"},
			{"(or #f 3)", "3"},
			{"(or #f #f)", "#f"},
			{"(and 0 '())", "()"},
			{"(and (/ 1 0))", "runtime-error"},
			{"(define n 0)", "0"},
			{"(and (set! n (+ n 1)))", "1"},
			{"n", "1"},
			{"(or #f (set! n (+ n 1)))", "2"},
			{"n", "2"},
		}},
		{"define set!", TestSequence{
			{"(define x 1)", "1"},
			{"x", "1"},
			{"(set! x 2)", "2"},
			{"x", "2"},
			{"(define x 3)", "3"},
			{"x", "3"},
			{"(set! y 1)", "name-error"},
			{"y", "name-error"},
			{"(define)", "syntax-error"},
			{"(define x)", "syntax-error"},
			{"(define x 1 2)", "syntax-error"},
			{"(define 1 2)", "syntax-error"},
			{"(define '() 2)", "syntax-error"},
			{"(set! 1 2)", "syntax-error"},
			{"(set! x)", "syntax-error"},
			{"(set! x 1 2)", "syntax-error"},
			{"(define x (car 1))", "runtime-error"},
			{"x", "3"},
			{"(set! x (car 1))", "runtime-error"},
			{"x", "3"},
			{"(define z unbound)", "name-error"},
			{"z", "name-error"},
			{"(define + -)", "<builtin-function ``-''>"},
			{"(+ 5 2)", "3"},
		}},
	}
	RunTestSuite(t, tests)
}
