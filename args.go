package main

import (
	"strconv"

	"github.com/pkg/errors"
)

const serverDisplayName = "ft_irc.min"

// parseArgs validates the positional `<port> <password>` command line:
// port must be a decimal integer in [1, 65535], password must be
// non-empty. Matches original_source/src/main.cpp's argc != 3 check plus
// parsePort's range validation.
func parseArgs(args []string) (serverConfig, error) {
	if len(args) != 2 {
		return serverConfig{}, errors.Errorf("usage: <port> <password>")
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return serverConfig{}, errors.Wrapf(err, "invalid port %q", args[0])
	}
	if port < 1 || port > 65535 {
		return serverConfig{}, errors.Errorf("port %d out of range [1, 65535]", port)
	}

	password := args[1]
	if password == "" {
		return serverConfig{}, errors.New("password must not be empty")
	}

	return serverConfig{
		name:     serverDisplayName,
		port:     port,
		password: password,
	}, nil
}
