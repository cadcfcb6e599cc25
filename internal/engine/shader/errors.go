package shader

import (
	"errors"
	"fmt"

	"github.com/Faultbox/planetgl/internal/engine/gpu"
)

var (
	// ErrCompile matches any *CompileError.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink matches any *LinkError.
	ErrLink = errors.New("shader link failed")
)

// CompileError carries the backend's info log for a rejected stage.
type CompileError struct {
	Schema string
	Stage  gpu.Stage
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %s shader: %s", e.Schema, e.Stage, e.Log)
}

func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

// LinkError carries the backend's info log for a rejected program.
type LinkError struct {
	Schema string
	Log    string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s link: %s", e.Schema, e.Log)
}

func (e *LinkError) Is(target error) bool {
	return target == ErrLink
}
