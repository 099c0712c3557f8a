package timeutil

import (
	"time"
)

// BST is the Bangladesh Standard Time location (UTC+6)
var BST *time.Location

func init() {
	var err error
	BST, err = time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// Fallback: create fixed zone if Asia/Dhaka not available
		BST = time.FixedZone("BST", 6*60*60) // UTC+6
	}
}

// Now returns the current time in BST
func Now() time.Time {
	return time.Now().In(BST)
}

// ToBST converts any time to BST
func ToBST(t time.Time) time.Time {
	return t.In(BST)
}

// ParseInBST parses a time string and returns it in BST
func ParseInBST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, BST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatBST formats a time in BST using the given layout
func FormatBST(t time.Time, layout string) string {
	return t.In(BST).Format(layout)
}
