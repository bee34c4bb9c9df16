package qm

import "strings"

// Namer maps a variable index to its display name. The alphabet is the
// caller's business: single letters, signal names, whatever. The engine
// never assumes a fixed letter set.
type Namer func(index int) (string, bool)

// Names builds a slice-backed Namer.
func Names(names ...string) Namer {
	return func(i int) (string, bool) {
		if i < 0 || i >= len(names) {
			return "", false
		}
		return names[i], true
	}
}

// renderTerm writes a cube as a product of named literals, negation as a
// trailing apostrophe. An index the Namer cannot name is a formatting
// resource problem, reported as ResourceExhausted rather than a panic.
func renderTerm(c Cube, nvar int, n Namer) (string, error) {
	lits := c.Literals(nvar)
	if len(lits) == 0 {
		return "1", nil
	}
	var sb strings.Builder
	for _, l := range lits {
		name, ok := n(l.Index)
		if !ok {
			return "", exhaustedf("no display name for input variable %d", l.Index)
		}
		sb.WriteString(name)
		if l.Neg {
			sb.WriteByte('\'')
		}
	}
	return sb.String(), nil
}

// Render writes the equation as "name = term + term + ...". A constant-0
// equation renders as "name = 0".
func (e Equation) Render(n Namer) (string, error) {
	var sb strings.Builder
	sb.WriteString(e.Name)
	sb.WriteString(" = ")
	if len(e.Terms) == 0 {
		sb.WriteString("0")
		return sb.String(), nil
	}
	for i, t := range e.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		s, err := renderTerm(t, e.Vars, n)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Render writes the shared form: one "if guard: a, b" line per hoisted
// guard, then each residual equation.
func (s SharedCover) Render(n Namer) (string, error) {
	var sb strings.Builder
	nvar := 0
	if len(s.Residual) > 0 {
		nvar = s.Residual[0].Vars
	}
	for _, sh := range s.Shared {
		g, err := renderTerm(sh.Guard, nvar, n)
		if err != nil {
			return "", err
		}
		sb.WriteString("if ")
		sb.WriteString(g)
		sb.WriteString(": ")
		for i, o := range sh.Outputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(s.Residual[o].Name)
		}
		sb.WriteByte('\n')
	}
	for _, eq := range s.Residual {
		line, err := eq.Render(n)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
