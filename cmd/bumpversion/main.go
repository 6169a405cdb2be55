// bumpversion maintains version.json: semantic version plus git metadata.
// Wired into the commit/push hooks so every build carries its provenance.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gtdflow/internal/version"
)

var versionFile string

func main() {
	root := &cobra.Command{
		Use:   "bumpversion",
		Short: "Bump the semantic version in version.json",
	}
	root.PersistentFlags().StringVarP(&versionFile, "file", "f", version.DefaultFile, "path to the version file")

	root.AddCommand(
		bumpCommand("patch"),
		bumpCommand("minor"),
		bumpCommand("major"),
		showCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bumpCommand(part string) *cobra.Command {
	return &cobra.Command{
		Use:   part,
		Short: fmt.Sprintf("Increment the %s version", part),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Load(versionFile)

			next, err := bump(info.Version, part)
			if err != nil {
				return err
			}

			info.Version = next
			info.GitCommit = gitOutput("rev-parse", "--short", "HEAD")
			info.GitBranch = gitOutput("rev-parse", "--abbrev-ref", "HEAD")
			info.BuiltAt = time.Now().UTC().Format(time.RFC3339)

			if err := write(versionFile, info); err != nil {
				return err
			}

			fmt.Printf("version bumped to %s\n", next)
			return nil
		},
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Load(versionFile).Version)
		},
	}
}

// bump parses "major.minor.patch" (a trailing pre-release suffix is
// dropped) and increments the requested part.
func bump(current, part string) (string, error) {
	base := current
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}

	fields := strings.Split(base, ".")
	if len(fields) != 3 {
		return "", fmt.Errorf("malformed version %q", current)
	}

	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return "", fmt.Errorf("malformed version %q: %w", current, err)
		}
		nums[i] = n
	}

	switch part {
	case "major":
		nums[0]++
		nums[1] = 0
		nums[2] = 0
	case "minor":
		nums[1]++
		nums[2] = 0
	case "patch":
		nums[2]++
	default:
		return "", fmt.Errorf("unknown version part %q", part)
	}

	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

func write(path string, info version.Info) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// gitOutput returns the trimmed output of a git command; empty when git is
// unavailable (e.g. building from a source tarball).
func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
