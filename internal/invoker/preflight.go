package invoker

import (
	"fmt"
	"os/exec"
)

// Preflight checks that the agent binary is available before a batch starts,
// so a missing install fails once up front instead of once per task.
func Preflight(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("required binary %q not found in PATH", binary)
	}
	return nil
}
