package utils

import (
	"fmt"
	"math"
)

// Pagination computes the total page count and the "showing" text of a list page.
func Pagination(page, limit int, total int64) (totalPages int, showing string) {
	if total == 0 || limit <= 0 {
		return 0, "0 of 0"
	}

	totalPages = int(math.Ceil(float64(total) / float64(limit)))
	showing = fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	return totalPages, showing
}
