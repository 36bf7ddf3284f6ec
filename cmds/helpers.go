package cmds

// Var defines name taking one argument. name+"." resets it to zero.
func Var[T any](name string, desc string) *T {
	var value T

	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))

	var zero T
	Define(name+".", Func(func() {
		value = zero
	}).Desc("reset "+name))

	return &value
}

// Switch defines name setting a flag and "!"+name clearing it.
func Switch(name string, desc string) *bool {
	var value bool

	Define(name, Func(func() {
		value = true
	}).Desc(desc))

	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset "+name))

	return &value
}

// Collect defines name appending its argument on every occurrence.
func Collect[T any](name string, desc string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc))
	return &value
}
