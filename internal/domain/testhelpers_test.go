package domain

import (
	"fmt"
	"time"
)

// fixedRandom never reorders and always returns coin.
type fixedRandom struct {
	coin int
}

func (f fixedRandom) Intn(n int) int                     { return f.coin % n }
func (f fixedRandom) Shuffle(n int, swap func(i, j int)) {}

func testPool(n int) []ImageItem {
	pool := make([]ImageItem, n)
	for i := range pool {
		pool[i] = ImageItem{
			ID:          fmt.Sprintf("img%03d", i+1),
			Locator:     fmt.Sprintf("https://example.test/%d.jpg", i+1),
			AIGenerated: i%2 == 1,
		}
	}
	return pool
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
