package server

import "errors"

var ErrNotFound = errors.New("not found")

// errAlreadyDone signals a submission against an exhausted question list.
var errAlreadyDone = errors.New("already completed")

// deviceSession links a bearer token to its device.
type deviceSession struct {
	DeviceID string `json:"deviceId"`
}

// adminSession is the payload behind the admin cookie.
type adminSession struct {
	CreatedAt string `json:"createdAt"`
}
