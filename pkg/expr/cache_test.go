package expr

import (
	"fmt"
	"testing"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

func TestCacheReusesAnalysis(t *testing.T) {
	c := NewCache(4)

	first, err := c.Trace("2+3*4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Trace("2+3*4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached analysis to be returned")
	}
	if second.Result.Value != 14 {
		t.Errorf("got %v, want 14", second.Result.Value)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("got hits=%d misses=%d, want 1/1", hits, misses)
	}
}

func TestCacheKeepsErrors(t *testing.T) {
	c := NewCache(4)
	for i := 0; i < 2; i++ {
		a, err := c.Trace("2+*3")
		if types.KindOf(err) != types.KindMissingOperand {
			t.Fatalf("run %d: expected MissingOperand, got %v", i, err)
		}
		if a.PostfixString() != "2 3 * + " {
			t.Errorf("run %d: partial postfix %q", i, a.PostfixString())
		}
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := NewCache(3)
	for i := 0; i < 5; i++ {
		if _, err := c.Trace(fmt.Sprintf("%d+1", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 cached analyses, got %d", c.Len())
	}

	// "0+1" was evicted, "4+1" was not.
	c.Trace("4+1")
	c.Trace("0+1")
	hits, misses := c.Stats()
	if hits != 1 || misses != 6 {
		t.Errorf("got hits=%d misses=%d, want 1/6", hits, misses)
	}
}
