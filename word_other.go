//go:build !windows

package word2pdf

import (
	"context"
	"fmt"
	"runtime"
)

// Launch implements Launcher. Word automation needs COM, so it always
// fails off Windows.
func (WordLauncher) Launch(context.Context) (Engine, error) {
	return nil, fmt.Errorf("%w: Microsoft Word automation requires Windows (running on %s)",
		ErrEngineUnavailable, runtime.GOOS)
}
