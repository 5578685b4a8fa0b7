package store

import (
	"encoding/json"
	"fmt"
)

// jsonb int arrays come back from pgx as raw bytes

func decodeInts(raw []byte) ([]int, error) {
	if len(raw) == 0 {
		return []int{}, nil
	}
	var nums []int
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, fmt.Errorf("failed to decode int array: %w", err)
	}
	if nums == nil {
		nums = []int{}
	}
	return nums, nil
}

func encodeInts(nums []int) ([]byte, error) {
	if nums == nil {
		nums = []int{}
	}
	raw, err := json.Marshal(nums)
	if err != nil {
		return nil, fmt.Errorf("failed to encode int array: %w", err)
	}
	return raw, nil
}
