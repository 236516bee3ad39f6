package util

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Run executes a command with stdout/stderr wired to the terminal.
func Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("`%s %s` failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// RunIn is Run with an explicit working directory and extra environment.
func RunIn(ctx context.Context, dir string, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("`%s %s` failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Output runs a command and returns its trimmed stdout.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("`%s %s` failed: %s: %w", name, strings.Join(args, " "), msg, err)
		}
		return "", fmt.Errorf("`%s %s` failed: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommandPresent reports whether name resolves on PATH.
func CommandPresent(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// RunAndSearch runs a command and returns the first capture group of re
// applied to its output.
func RunAndSearch(ctx context.Context, re *regexp.Regexp, name string, args ...string) (string, error) {
	out, err := Output(ctx, name, args...)
	if err != nil {
		return "", err
	}
	m := re.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("no match for %q in `%s` output", re, name)
	}
	return m[1], nil
}

// Pipe connects tx's stdout to rx's stdin, returning whether rx produced any
// output.
func Pipe(ctx context.Context, tx, rx *exec.Cmd) (bool, error) {
	pipe, err := tx.StdoutPipe()
	if err != nil {
		return false, fmt.Errorf("failed to create pipe: %w", err)
	}
	rx.Stdin = pipe
	var out bytes.Buffer
	rx.Stdout = &out
	rx.Stderr = os.Stderr
	if err := tx.Start(); err != nil {
		return false, fmt.Errorf("failed to start %q: %w", tx.Path, err)
	}
	if err := rx.Run(); err != nil {
		return false, fmt.Errorf("failed to run %q: %w", rx.Path, err)
	}
	if err := tx.Wait(); err != nil {
		return false, fmt.Errorf("%q failed: %w", tx.Path, err)
	}
	hadOutput := out.Len() > 0
	if hadOutput {
		os.Stdout.Write(out.Bytes())
	}
	return hadOutput, nil
}
