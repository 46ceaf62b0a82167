package utils

import (
	"testing"
	"time"
)

func TestSnowflake_同一毫秒内单调递增且不重复(t *testing.T) {
	s, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("NewSnowflake err=%v", err)
	}
	fixed := time.UnixMilli(1760000000000)
	s.now = func() time.Time { return fixed }

	seen := make(map[int64]struct{}, 5000)
	var last int64
	for i := 0; i < 5000; i++ {
		id := s.NextID()
		if id <= last {
			t.Fatalf("期望单调递增, i=%d last=%d id=%d", i, last, id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("期望不重复, id=%d", id)
		}
		seen[id] = struct{}{}
		last = id
	}
}

func TestNewSnowflake_节点号越界(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望节点号越界时返回错误")
	}
}
