package probe

import (
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/process"
)

func expandGlobs(patterns []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("illegal device pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			result[match] = struct{}{}
		}
	}
	return result, nil
}

func anyOpenOf(devices map[string]struct{}, open []process.OpenFilesStat) bool {
	if len(devices) == 0 {
		return false
	}
	for _, f := range open {
		if _, ok := devices[f.Path]; ok {
			return true
		}
	}
	return false
}
