// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package router

import (
	"errors"
	"os"
	"syscall"
)

func isCrossDevice(err *os.LinkError) bool {
	return errors.Is(err.Err, syscall.EXDEV)
}
