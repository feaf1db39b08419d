//go:build !darwin && !windows

package commands

const (
	_etc = "/usr/local/etc/sheets-reshape"
	_var = "/usr/local/var/sheets-reshape"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
