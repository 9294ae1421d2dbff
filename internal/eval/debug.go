package eval

import "github.com/kylelemons/godebug/pretty"

// DumpState pretty-prints the variable and function stacks, the way
// openconfig-goyang leans on the same package to render its YANG AST for
// diagnostics. Used for -v error reporting; never on the success path.
func (ip *Interp) DumpState() string {
	return pretty.Sprint(struct {
		Vars  []*Variable
		Funcs []*Function
	}{ip.vars, ip.funcs})
}
