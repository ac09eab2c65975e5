package ioc

import (
	"reflect"
	"testing"
)

func BenchmarkKeyFor(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		KeyFor[int]()
	}
}

func BenchmarkSlotKey(b *testing.B) {
	b.ReportAllocs()
	key := NewKey("", reflect.TypeFor[int](), reflect.TypeFor[int](), reflect.TypeFor[string]())
	args := []any{7, "seven"}
	m := map[slotKey]int{newSlotKey(key, args): 7}

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		sum += m[newSlotKey(key, args)]
	}
	if sum != b.N*7 {
		b.Errorf("sum != b.N * 7; sum == %d; b.N * 7 == %d;\n", sum, b.N*7)
	}
}

func BenchmarkStrongSlotLoaded(b *testing.B) {
	b.ReportAllocs()
	e := newInstances().slot(newSlotKey(KeyFor[int](), nil), newStrongSlot)
	build := func() (any, error) { return 7, nil }
	if _, _, err := e.getOrBuild(e, build); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		v, _, _ := e.getOrBuild(e, build)
		sum += v.(int)
	}
	if sum != b.N*7 {
		b.Errorf("sum != b.N * 7; sum == %d; b.N * 7 == %d;\n", sum, b.N*7)
	}
}

func BenchmarkDecoratedTransient(b *testing.B) {
	b.ReportAllocs()
	c := NewContainer()
	Register(c, Transient, func(c Dic) (int, error) { return 1, nil })
	for i := 0; i < 3; i++ {
		Decorate(c, func(c Dic, s int) int { return s + 2 })
	}

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		sum += MustResolve[int](c)
	}
	if sum != b.N*7 {
		b.Errorf("sum != b.N * 7; sum == %d; b.N * 7 == %d;\n", sum, b.N*7)
	}
}
