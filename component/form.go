package component

import "fmt"

// Form is a combat preset. Base is the starting form; the Echo forms unlock
// roll, defend and the special attack.
type Form int

const (
	FormBase Form = iota
	FormEcho1
	FormEcho2
	FormEcho3
	FormEcho4
)

// FormCount is the number of selectable forms.
const FormCount = 5

var formNames = [FormCount]string{"base", "echo1", "echo2", "echo3", "echo4"}

func (f Form) String() string {
	if !f.Valid() {
		return fmt.Sprintf("form(%d)", int(f))
	}
	return formNames[f]
}

// Valid reports whether f names one of the selectable forms.
func (f Form) Valid() bool {
	return f >= FormBase && f < FormCount
}

// HasAbilities reports whether roll, defend and special attack are unlocked.
func (f Form) HasAbilities() bool {
	return f.Valid() && f != FormBase
}

// FormFromSelect maps a 1-based form-select key to a form.
func FormFromSelect(key int) (Form, bool) {
	f := Form(key - 1)
	if key <= 0 || !f.Valid() {
		return FormBase, false
	}
	return f, true
}

// ParseForm resolves a form by its lowercase name.
func ParseForm(name string) (Form, bool) {
	for i, n := range formNames {
		if n == name {
			return Form(i), true
		}
	}
	return FormBase, false
}
