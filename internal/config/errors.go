package config

import (
	"errors"
	"fmt"
)

var errConfigPath = errors.New("config path is not set: use -config or CONFIG_PATH")

type invalidValueError struct {
	key   string
	value string
}

func (e *invalidValueError) Error() string {
	return fmt.Sprintf("config: invalid %s %q", e.key, e.value)
}
