package commands

const (
	_etc = "/usr/local/etc/com.github.twyst.sheets-reshape"
	_var = "/usr/local/var/com.github.twyst.sheets-reshape"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
