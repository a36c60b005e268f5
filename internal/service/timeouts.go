package service

import "time"

const (
	shutdownTimeout = 10 * time.Second
	dialTimeout     = 10 * time.Second
)
