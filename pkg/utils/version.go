// Package utils holds small helpers shared by the unibot commands and
// packages, plus the build stamp set through -ldflags.
package utils

var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
