// Package env captures the explicit environment handed to child processes.
// Build tools are invoked with a curated variable set rather than the full
// ambient environment, so generated projects behave the same from a terminal
// and from an IDE.
package env

import (
	"fmt"
	"os"
)

// Env is the base environment shared by every platform.
type Env struct {
	home        string
	path        string
	term        string
	sshAuthSock string
}

// New reads the required base variables, failing if HOME or PATH is unset.
func New() (*Env, error) {
	home, ok := os.LookupEnv("HOME")
	if !ok {
		return nil, fmt.Errorf("the `HOME` environment variable isn't set, which is pretty weird")
	}
	path, ok := os.LookupEnv("PATH")
	if !ok {
		return nil, fmt.Errorf("the `PATH` environment variable isn't set, which is super weird")
	}
	return &Env{
		home:        home,
		path:        path,
		term:        os.Getenv("TERM"),
		sshAuthSock: os.Getenv("SSH_AUTH_SOCK"),
	}, nil
}

// Path returns the captured PATH.
func (e *Env) Path() string {
	return e.path
}

// PrependToPath returns the PATH with dir in front.
func (e *Env) PrependToPath(dir string) string {
	return dir + string(os.PathListSeparator) + e.path
}

// ExplicitEnv returns the base variables in KEY=value form.
func (e *Env) ExplicitEnv() []string {
	vars := []string{
		"HOME=" + e.home,
		"PATH=" + e.path,
	}
	if e.term != "" {
		vars = append(vars, "TERM="+e.term)
	}
	if e.sshAuthSock != "" {
		vars = append(vars, "SSH_AUTH_SOCK="+e.sshAuthSock)
	}
	return vars
}
