package s3

import "fmt"

// FormatBytes renders a byte count for error messages shown to uploaders.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d bytes", n)
	}
	value, suffixes := float64(n), []string{"KB", "MB", "GB", "TB"}
	for i, suffix := range suffixes {
		value /= unit
		if value < unit || i == len(suffixes)-1 {
			return fmt.Sprintf("%.2f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d bytes", n)
}
