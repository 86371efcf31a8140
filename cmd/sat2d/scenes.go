package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/sat2d/internal/config"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in scenes",
	Long:  `Shows the scenes embedded in the binary. Any of them can be passed to 'sat2d run'.`,
	RunE:  runScenes,
}

func runScenes(cmd *cobra.Command, args []string) error {
	names := config.Builtins()
	if len(names) == 0 {
		fmt.Println("No scenes available.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, name := range names {
		maxNameLen = max(maxNameLen, len(name))
	}

	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxNameLen, "Name", "Bodies", "Joints", "Description")
	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxNameLen, "----", "------", "------", "-----------")
	for _, name := range names {
		scene, err := config.Load(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-*s  %-6d  %-6d  %s\n", maxNameLen, name, len(scene.Bodies), len(scene.Joints), scene.Description)
	}

	fmt.Println()
	fmt.Println("Run 'sat2d run <name>' to simulate a scene.")
	return nil
}
