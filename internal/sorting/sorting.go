package sorting

import (
	"fmt"

	"github.com/desertthunder/tunebox/internal/shared"
)

// Sort reorders items in place by c. The sort is stable.
//
// A nil alloc is treated as [shared.Unbounded]. If a merge buffer cannot be reserved the error is
// returned immediately and items may be left partially sorted; callers must treat it as fatal.
func Sort[T Record](items []T, c Comparator, alloc shared.Allocator) error {
	if alloc == nil {
		alloc = shared.Unbounded{}
	}
	if len(items) < 2 {
		return nil
	}
	return mergeSort(items, 0, len(items)-1, Decode(int(c)), alloc)
}

// mergeSort sorts the inclusive range [low, high].
func mergeSort[T Record](items []T, low, high int, c Comparator, alloc shared.Allocator) error {
	if low >= high {
		return nil
	}

	middle := low + (high-low)/2
	if err := mergeSort(items, low, middle, c, alloc); err != nil {
		return err
	}
	if err := mergeSort(items, middle+1, high, c, alloc); err != nil {
		return err
	}
	return merge(items, low, middle, high, c, alloc)
}

// merge combines the sorted ranges [low, middle] and [middle+1, high].
func merge[T Record](items []T, low, middle, high int, c Comparator, alloc shared.Allocator) error {
	size := high - low + 1
	if err := alloc.Reserve(size); err != nil {
		return fmt.Errorf("merge buffer of %d: %w", size, err)
	}
	defer alloc.Release(size)

	left := make([]T, middle-low+1)
	right := make([]T, high-middle)
	copy(left, items[low:middle+1])
	copy(right, items[middle+1:high+1])

	i, j, k := 0, 0, low
	for i < len(left) && j < len(right) {
		// Ties keep the left element; it came first in the input.
		if c.IsFirstHigher(left[i], right[j]) {
			items[k] = right[j]
			j++
		} else {
			items[k] = left[i]
			i++
		}
		k++
	}

	k += copy(items[k:], left[i:])
	copy(items[k:], right[j:])

	return nil
}
