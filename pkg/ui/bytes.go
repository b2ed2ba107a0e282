package ui

import (
	"github.com/c2h5oh/datasize"
)

// FormatBytes renders a byte count for humans, e.g. "1.2 GB".
// Negative counts mean unknown and render as "?".
func FormatBytes(n int64) string {
	if n < 0 {
		return "?"
	}
	return datasize.ByteSize(n).HumanReadable()
}

// FormatTransfer renders "written / total", or just written when total is unknown
func FormatTransfer(written, total int64) string {
	if total < 0 {
		return FormatBytes(written)
	}
	return FormatBytes(written) + " / " + FormatBytes(total)
}
