package catalog

import (
	"errors"
	"testing"
)

// validFrame 返回一个通过注册校验的帧
func validFrame() Frame {
	return Frame{
		DurationMs: 100,
		Region:     AtlasRegion{X: 0, Y: 0, Width: 64, Height: 64},
	}
}

// TestRegisterAndLookup 测试注册后可以按名称查找到同一定义
func TestRegisterAndLookup(t *testing.T) {
	cat := NewCatalog()

	err := cat.Register(AnimationDefinition{
		Name:   "Idle",
		Frames: []Frame{validFrame(), validFrame()},
		Policy: PolicyEnqueue,
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	def, err := cat.Lookup("Idle")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if def.Name != "Idle" {
		t.Errorf("Name: got %q, want %q", def.Name, "Idle")
	}
	if len(def.Frames) != 2 {
		t.Errorf("Frames: got %d, want 2", len(def.Frames))
	}
	if def.Policy != PolicyEnqueue {
		t.Errorf("Policy: got %v, want PolicyEnqueue", def.Policy)
	}
}

// TestLookupUnknown 测试查找未注册名称返回 UnknownAnimationError
func TestLookupUnknown(t *testing.T) {
	cat := NewCatalog()

	_, err := cat.Lookup("NoSuchAnim")
	if err == nil {
		t.Fatal("Lookup() should fail for unknown animation")
	}

	var unknownErr *UnknownAnimationError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error type: got %T, want *UnknownAnimationError", err)
	}
	if unknownErr.Name != "NoSuchAnim" {
		t.Errorf("Name: got %q, want %q", unknownErr.Name, "NoSuchAnim")
	}
}

// TestRegisterValidation 测试注册时的逐项校验
func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		desc string
		def  AnimationDefinition
	}{
		{
			desc: "empty name",
			def:  AnimationDefinition{Name: "", Frames: []Frame{validFrame()}},
		},
		{
			desc: "no frames",
			def:  AnimationDefinition{Name: "Empty", Frames: nil},
		},
		{
			desc: "zero duration",
			def: AnimationDefinition{Name: "Bad", Frames: []Frame{{
				DurationMs: 0,
				Region:     AtlasRegion{Width: 10, Height: 10},
			}}},
		},
		{
			desc: "negative duration",
			def: AnimationDefinition{Name: "Bad", Frames: []Frame{{
				DurationMs: -5,
				Region:     AtlasRegion{Width: 10, Height: 10},
			}}},
		},
		{
			desc: "zero region size",
			def: AnimationDefinition{Name: "Bad", Frames: []Frame{{
				DurationMs: 100,
				Region:     AtlasRegion{Width: 0, Height: 10},
			}}},
		},
		{
			desc: "negative region origin",
			def: AnimationDefinition{Name: "Bad", Frames: []Frame{{
				DurationMs: 100,
				Region:     AtlasRegion{X: -1, Width: 10, Height: 10},
			}}},
		},
	}

	for _, tc := range cases {
		cat := NewCatalog()
		err := cat.Register(tc.def)
		if err == nil {
			t.Errorf("%s: Register() should fail", tc.desc)
			continue
		}
		var invalidErr *InvalidFrameDefinitionError
		if !errors.As(err, &invalidErr) {
			t.Errorf("%s: error type: got %T, want *InvalidFrameDefinitionError", tc.desc, err)
		}
	}
}

// TestRegisterDuplicate 测试重名注册失败且不覆盖已有定义
func TestRegisterDuplicate(t *testing.T) {
	cat := NewCatalog()

	first := AnimationDefinition{Name: "Wave", Frames: []Frame{validFrame()}}
	if err := cat.Register(first); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}

	second := AnimationDefinition{Name: "Wave", Frames: []Frame{validFrame(), validFrame()}}
	if err := cat.Register(second); err == nil {
		t.Fatal("duplicate Register() should fail")
	}

	def, err := cat.Lookup("Wave")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if len(def.Frames) != 1 {
		t.Errorf("original definition should be kept, got %d frames", len(def.Frames))
	}
}

// TestValidateBounds 测试推迟到装载时的图集边界校验
func TestValidateBounds(t *testing.T) {
	cat := NewCatalog()

	err := cat.Register(AnimationDefinition{
		Name: "Idle",
		Frames: []Frame{{
			DurationMs: 100,
			Region:     AtlasRegion{X: 96, Y: 0, Width: 64, Height: 64},
		}},
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	// 图集足够大时校验通过
	if err := cat.ValidateBounds(160, 64); err != nil {
		t.Errorf("ValidateBounds(160, 64) error: %v", err)
	}

	// 区域超出图集宽度时校验失败
	err = cat.ValidateBounds(128, 64)
	if err == nil {
		t.Fatal("ValidateBounds(128, 64) should fail")
	}
	var invalidErr *InvalidFrameDefinitionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("error type: got %T, want *InvalidFrameDefinitionError", err)
	}
	if invalidErr.Animation != "Idle" {
		t.Errorf("Animation: got %q, want %q", invalidErr.Animation, "Idle")
	}
}

// TestNames 测试名称列表按字典序返回
func TestNames(t *testing.T) {
	cat := NewCatalog()
	for _, name := range []string{"Wave", "Idle", "Congratulate"} {
		if err := cat.Register(AnimationDefinition{Name: name, Frames: []Frame{validFrame()}}); err != nil {
			t.Fatalf("Register(%s) error: %v", name, err)
		}
	}

	names := cat.Names()
	want := []string{"Congratulate", "Idle", "Wave"}
	if len(names) != len(want) {
		t.Fatalf("Names() length: got %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}
