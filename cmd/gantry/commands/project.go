package commands

import (
	"fmt"
	"os"

	"github.com/gantryci/gantry/pkg/paths"
)

// defaultProjectFile is the file name searched for when no project path is
// given, from the working directory up to the workspace root.
const defaultProjectFile = "gantry.xml"

func discoverProjectFile() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := paths.FindRepoRoot(wd)
	if err != nil {
		root = wd
	}

	path, err := paths.FindProjectFile(root, wd, defaultProjectFile)
	if err != nil {
		return "", fmt.Errorf("discover project file: %w", err)
	}

	return path, nil
}
