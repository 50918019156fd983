package export

import (
	"bytes"
	"fmt"
	"os/exec"
)

// RenderSVG renders a dot file to svg by running the Graphviz dot command,
// equivalent to: dot -Tsvg -Kdot <dotPath> -o <svgPath>.
func RenderSVG(dotPath, svgPath string) error {
	if _, err := exec.LookPath("dot"); err != nil {
		return fmt.Errorf("graphviz is not installed, dot not found in PATH: %v", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command("dot", "-Tsvg", "-Kdot", dotPath, "-o", svgPath)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot failed: %v: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
