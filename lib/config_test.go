package lib

import "testing"

func TestConfigInt64(t *testing.T) {
	config := Config{"heap.superblocksize": int64(8192)}
	if v := config.Int64("heap.superblocksize"); v != 8192 {
		t.Fatalf("expected 8192, got %v", v)
	}
	if v := config.DefaultInt64("missing", 42); v != 42 {
		t.Fatalf("expected default 42, got %v", v)
	}
}

func TestConfigMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing required config")
		}
	}()
	Config{}.Int64("missing")
}

func TestConfigSectionTrim(t *testing.T) {
	config := Config{"heap.superblocksize": int64(8192), "sbrk.pages": int64(2)}
	section := config.Section("heap.").Trim("heap.")
	if _, ok := section["superblocksize"]; !ok {
		t.Fatal("expected superblocksize after section+trim")
	}
	if _, ok := section["pages"]; ok {
		t.Fatal("did not expect sbrk.pages in heap section")
	}
}

func TestMixinconfig(t *testing.T) {
	a := Config{"a": 1}
	b := map[string]interface{}{"b": 2}
	mixed := Mixinconfig(a, b)
	if mixed["a"] != 1 || mixed["b"] != 2 {
		t.Fatalf("unexpected mixin result: %v", mixed)
	}
}

func TestPadToAlign(t *testing.T) {
	cases := []struct{ addr, align, want uintptr }{
		{0, 8192, 0},
		{1, 8192, 8191},
		{8192, 8192, 0},
		{8193, 8192, 8191},
	}
	for _, c := range cases {
		if got := PadToAlign(c.addr, c.align); got != c.want {
			t.Fatalf("PadToAlign(%v,%v) = %v, want %v", c.addr, c.align, got, c.want)
		}
	}
}
