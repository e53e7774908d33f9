package vec

import "testing"

func TestToChunkCoords(t *testing.T) {
	cases := []struct {
		global Vec2
		chunk  Vec2
	}{
		{Vec2{X: 0, Z: 0}, Vec2{X: 0, Z: 0}},
		{Vec2{X: 15, Z: 15}, Vec2{X: 0, Z: 0}},
		{Vec2{X: 16, Z: 16}, Vec2{X: 1, Z: 1}},
		{Vec2{X: -1, Z: -1}, Vec2{X: -1, Z: -1}},
		{Vec2{X: -16, Z: -16}, Vec2{X: -1, Z: -1}},
		{Vec2{X: -17, Z: 33}, Vec2{X: -2, Z: 2}},
	}
	for _, c := range cases {
		if got := c.global.ToChunkCoords(); got != c.chunk {
			t.Errorf("ToChunkCoords(%v): ожидалось %v, получено %v", c.global, c.chunk, got)
		}
	}
}

func TestLocalInChunk(t *testing.T) {
	cases := []struct {
		global Vec2
		local  Vec2
	}{
		{Vec2{X: 0, Z: 0}, Vec2{X: 0, Z: 0}},
		{Vec2{X: 17, Z: 31}, Vec2{X: 1, Z: 15}},
		{Vec2{X: -1, Z: -16}, Vec2{X: 15, Z: 0}},
	}
	for _, c := range cases {
		if got := c.global.LocalInChunk(); got != c.local {
			t.Errorf("LocalInChunk(%v): ожидалось %v, получено %v", c.global, c.local, got)
		}
	}
}

func TestChebyshevDistance(t *testing.T) {
	a := Vec2{X: 0, Z: 0}
	if d := a.ChebyshevDistanceTo(Vec2{X: 3, Z: -5}); d != 5 {
		t.Errorf("Ожидалось расстояние 5, получено %d", d)
	}
	if d := a.ChebyshevDistanceTo(a); d != 0 {
		t.Errorf("Расстояние до себя должно быть 0, получено %d", d)
	}
}

func TestVec3FloatFloor(t *testing.T) {
	v := Vec3Float{X: 1.9, Y: -0.1, Z: -2.0}
	got := v.Floor()
	want := Vec3{X: 1, Y: -1, Z: -2}
	if !got.Equals(want) {
		t.Errorf("Floor(%v): ожидалось %v, получено %v", v, want, got)
	}
}

func TestVec3FloatNormalized(t *testing.T) {
	v := Vec3Float{X: 3, Y: 0, Z: 4}
	n := v.Normalized()
	if l := n.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("Длина нормализованного вектора должна быть 1, получено %f", l)
	}

	zero := Vec3Float{}
	if zero.Normalized() != zero {
		t.Error("Нулевой вектор должен нормализоваться в себя")
	}
}
