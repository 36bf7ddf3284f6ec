package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a flag, a sub command table, or both.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	command := &Command{
		Func: fnValue,
	}

	return command
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

// Usage renders the arguments the command consumes. Optional arguments
// are bracketed.
func (c *Command) Usage() string {
	if !c.Func.IsValid() {
		return ""
	}
	fnType := c.Func.Type()
	parts := make([]string, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			parts = append(parts, "["+t.Elem().Kind().String()+"]")
		} else {
			parts = append(parts, "<"+t.Kind().String()+">")
		}
	}
	return strings.Join(parts, " ")
}
