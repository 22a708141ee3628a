package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/qsolve/tdprep/internal/model"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)

	key := Key("detailed|H:[H0,H1:s]|C:[]")
	if _, found := c.Get(key); found {
		t.Error("Expected miss on empty cache")
	}

	if err := c.Set(key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "value" {
		t.Errorf("Expected hit with 'value', got %q found=%v", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after delete")
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("fingerprint")
	b := Key("fingerprint")
	if a != b {
		t.Errorf("Key not deterministic: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "tdprep:v1:") {
		t.Errorf("Missing key prefix: %s", a)
	}
	if Key("other") == a {
		t.Error("Distinct fingerprints share a key")
	}
}

func TestResultRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)
	key := Key("result")

	tt := model.TimeTypeExprHConstC
	res := &model.Result{
		Mode:     model.ModeDetailed,
		TimeType: &tt,
		H:        model.Partition{Const: []int{1}, Exprs: []int{0}},
	}
	if err := SetResult(c, key, res, time.Minute); err != nil {
		t.Fatalf("SetResult failed: %v", err)
	}

	got, found := GetResult(c, key)
	if !found {
		t.Fatal("Expected cached result")
	}
	if got.TimeType == nil || *got.TimeType != tt || len(got.H.Const) != 1 || got.H.Const[0] != 1 {
		t.Errorf("Round-tripped result differs: %+v", got)
	}
}

func TestGetResult_CorruptEntry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2*time.Minute)
	key := Key("corrupt")

	if err := c.Set(key, []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := GetResult(c, key); found {
		t.Error("Expected corrupt entry to read as a miss")
	}
	if _, found := c.Get(key); found {
		t.Error("Expected corrupt entry to be evicted")
	}
}
