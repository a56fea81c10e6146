// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package router

import (
	"errors"
	"os"
	"syscall"
)

// ERROR_NOT_SAME_DEVICE
const errNotSameDevice = syscall.Errno(17)

func isCrossDevice(err *os.LinkError) bool {
	return errors.Is(err.Err, errNotSameDevice)
}
