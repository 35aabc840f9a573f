package utils

import (
	"github.com/go-logr/logr"
)

var logger logr.Logger = logr.Discard()

func SetLogger(l logr.Logger) {
	logger = l
}

func Log() logr.Logger {
	return logger
}
