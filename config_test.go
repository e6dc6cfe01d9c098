package chanwire

import "testing"

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if !c.FlushOnSend || !c.CoalesceWrites || !c.UseHeaderChecksum {
		t.Fatalf("default sender-side flags should all be true: %+v", c)
	}
	if !c.VerifyOrder || !c.VerifyHeaderChecksum {
		t.Fatalf("default receiver-side flags should all be true: %+v", c)
	}
	if c.MaxSize != defaultMaxSize {
		t.Fatalf("MaxSize = %d, want %d", c.MaxSize, defaultMaxSize)
	}
	if c.RetryDelay >= 0 {
		t.Fatalf("default RetryDelay should be negative (non-blocking), got %v", c.RetryDelay)
	}
}

func TestOptionsComposeOverDefaults(t *testing.T) {
	c := build([]Option{
		WithMaxSize(128),
		WithVerifyOrder(false),
		WithBlock(),
		WithCoalesceWrites(false),
	})
	if c.MaxSize != 128 {
		t.Fatalf("MaxSize = %d, want 128", c.MaxSize)
	}
	if c.VerifyOrder {
		t.Fatalf("VerifyOrder should be false")
	}
	if c.RetryDelay != 0 {
		t.Fatalf("WithBlock should set RetryDelay=0, got %v", c.RetryDelay)
	}
	if c.CoalesceWrites {
		t.Fatalf("CoalesceWrites should be false")
	}
	// Untouched fields retain their defaults.
	if !c.FlushOnSend || !c.UseHeaderChecksum || !c.VerifyHeaderChecksum {
		t.Fatalf("untouched flags should remain at default true: %+v", c)
	}
}

func TestWithHeaderChecksumTogglesBothSides(t *testing.T) {
	c := build([]Option{WithHeaderChecksum(false)})
	if c.UseHeaderChecksum || c.VerifyHeaderChecksum {
		t.Fatalf("WithHeaderChecksum(false) should clear both sides: %+v", c)
	}
}
