package format

import (
	"fmt"
	"time"
)

// DescribeBytes renders a byte count as "n B", "n.n kB" or "n.nn MB".
func DescribeBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	kb := float64(n) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f kB", kb)
	}
	return fmt.Sprintf("%.2f MB", kb/1024)
}

// DescribeDuration renders d in milliseconds with one decimal, or "<1 ms".
func DescribeDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 1 {
		return "<1 ms"
	}
	return fmt.Sprintf("%.1f ms", ms)
}

// Summary is the metrics line shown next to the status, e.g. "13 B • <1 ms".
func (s Stats) Summary() string {
	return DescribeBytes(s.Bytes) + " • " + DescribeDuration(s.Duration)
}
