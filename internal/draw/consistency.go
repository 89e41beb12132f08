package draw

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoDraws is returned when the parsed table yielded no data rows.
// An empty history must fail here rather than export empty files.
var ErrNoDraws = errors.New("empty set of draws")

// ConsistencyError reports gaps in the draw-number sequence. Missing
// holds every absent number in ascending order.
type ConsistencyError struct {
	Missing []int
}

func (e *ConsistencyError) Error() string {
	nums := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		nums[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("incomplete set of draws: %d missing: %s", len(e.Missing), strings.Join(nums, ", "))
}

// CheckComplete verifies the rows cover every draw number from 1 up to
// the highest one observed. It is the single gate that must pass before
// any loader artifact is written.
func CheckComplete(rows []Row) error {
	if len(rows) == 0 {
		return ErrNoDraws
	}

	found := make(map[int]bool, len(rows))
	max := 0
	for _, row := range rows {
		number, err := parseInt(row, KeyNumber)
		if err != nil {
			return err
		}
		found[number] = true
		if number > max {
			max = number
		}
	}

	var missing []int
	for n := 1; n <= max; n++ {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &ConsistencyError{Missing: missing}
	}
	return nil
}
