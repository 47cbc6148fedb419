package db

import (
	"errors"
	"io"
	"strings"
	"syscall"
)

var retryableErrs = []error{
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	io.EOF,
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	for _, retryableErr := range retryableErrs {
		if errors.Is(err, retryableErr) {
			return true
		}

		// Drivers often stringify the underlying network error, so match on the message as well.
		if strings.Contains(err.Error(), retryableErr.Error()) {
			return true
		}
	}

	return false
}
