package parallel

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBands(t *testing.T) {
	tests := []struct {
		name      string
		height, n int
		want      []Band
	}{
		{"zero height", 0, 4, nil},
		{"single", 10, 1, []Band{{0, 10}}},
		{"even", 10, 2, []Band{{0, 5}, {5, 10}}},
		{"uneven", 10, 3, []Band{{0, 4}, {4, 7}, {7, 10}}},
		{"more bands than rows", 2, 8, []Band{{0, 1}, {1, 2}}},
		{"non-positive n", 3, 0, []Band{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Bands(tt.height, tt.n)); diff != "" {
				t.Errorf("Bands(%d, %d) mismatch (-want +got):\n%s", tt.height, tt.n, diff)
			}
		})
	}
}

func TestForEachBandCoversAllRows(t *testing.T) {
	pools := map[string]*WorkerPool{
		"nil":      nil,
		"single":   NewWorkerPool(1),
		"parallel": NewWorkerPool(4),
	}
	for name, p := range pools {
		t.Run(name, func(t *testing.T) {
			if p != nil {
				defer p.Close()
			}

			const height = 37
			var mu sync.Mutex
			seen := make([]int, height)
			ForEachBand(p, height, func(b Band) {
				mu.Lock()
				defer mu.Unlock()
				for y := b.Y0; y < b.Y1; y++ {
					seen[y]++
				}
			})

			for y, n := range seen {
				if n != 1 {
					t.Errorf("row %d visited %d times, want 1", y, n)
				}
			}
		})
	}
}
