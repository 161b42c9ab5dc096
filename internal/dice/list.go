package dice

import "strings"

// List is the ordered product of parsing a full notation string. Entries are
// independent: rolling one never affects another.
type List []Expr

// Outcome pairs a list entry with the result of rolling it.
type Outcome struct {
	Expr   Expr
	Result Result
	Err    error
}

// Outcomes is the result of rolling every entry of a List.
type Outcomes []Outcome

// Roll evaluates every entry in order. An entry that cannot be rolled records
// its error and the remaining entries are still rolled.
func (l List) Roll(src Source) Outcomes {
	out := make(Outcomes, 0, len(l))
	for _, e := range l {
		res, err := e.Roll(src)
		out = append(out, Outcome{Expr: e, Result: res, Err: err})
	}
	return out
}

// Clone copies every entry of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	for i, e := range l {
		c[i] = e.Clone()
	}
	return c
}

// Notation renders the list as it would be typed, entries separated by "; ".
func (l List) Notation() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Notation()
	}
	return strings.Join(parts, " ; ")
}

// Total is the running total across the successfully rolled entries.
func (o Outcomes) Total() int {
	total := 0
	for _, oc := range o {
		if oc.Err == nil {
			total += oc.Result.Total
		}
	}
	return total
}

// Err returns the first entry error, if any.
func (o Outcomes) Err() error {
	for _, oc := range o {
		if oc.Err != nil {
			return oc.Err
		}
	}
	return nil
}

// Combined folds every successful entry into one Result.
func (o Outcomes) Combined() Result {
	res := Result{Values: []int{}}
	for _, oc := range o {
		if oc.Err == nil {
			res = Combine(res, oc.Result)
		}
	}
	return res
}
