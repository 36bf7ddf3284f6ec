package debugs

import (
	"bytes"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/forte/forteparse"
	"github.com/reusee/forte/fortevm"
	"github.com/reusee/forte/modes"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestEval(t *testing.T) {
	program, err := forteparse.Parse("7{1}3 4 5")
	if err != nil {
		t.Fatal(err)
	}
	vm := fortevm.Load(program, fortevm.WithOutput(new(bytes.Buffer)))
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		eval Eval,
	) {
		for expr, expected := range map[string]starlark.Value{
			"stack[-1] + 1": starlark.MakeInt(6),
			"len(stack)":    starlark.MakeInt(3),
			"dictionary[7]": starlark.MakeInt(2),
			"code":          starlark.String("7{1}3 4 5"),
			"[x * 2 for x in stack]": starlark.NewList([]starlark.Value{
				starlark.MakeInt(6), starlark.MakeInt(8), starlark.MakeInt(10),
			}),
			"ip": starlark.MakeInt(7),
		} {
			value, err := eval(t.Context(), expr, vm.Inspect())
			if err != nil {
				t.Fatalf("%s: %v", expr, err)
			}
			equal, err := starlark.Equal(value, expected)
			if err != nil {
				t.Fatal(err)
			}
			if !equal {
				t.Fatalf("%s: got %v, want %v", expr, value, expected)
			}
		}

		if _, err := eval(t.Context(), "nope + 1", vm.Inspect()); err == nil {
			t.Fatal("expected error")
		}
	})
}
