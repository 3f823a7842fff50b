/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2020-2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version info variables are set in the Makefile
var GitLastTag string
var GitHead string
var GitBranch string
var GitPatch string

// DevelopmentTag is reported when the binary was not built by the Makefile and
// the toolchain recorded no module version.
const DevelopmentTag = "dev"

// buildInfoVersion returns the module version and the VCS revision recorded
// by the toolchain.
func buildInfoVersion(info *debug.BuildInfo) (tag, head string) {
	if info == nil {
		return "", ""
	}

	if info.Main.Version != "(devel)" {
		tag = info.Main.Version
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			head = s.Value
		}
	}

	return tag, head
}

func formatVersion(tag, patch, branch, head string) string {
	if tag == "" {
		tag = DevelopmentTag
	}

	if patch != "" {
		tag = fmt.Sprintf("%s-%s", tag, patch)
	}

	if branch == "" && head == "" {
		return tag
	}

	return fmt.Sprintf("%s (%s: %s)", tag, branch, head)
}

func VersionToString() string {
	tag, head := GitLastTag, GitHead
	if tag == "" && head == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			tag, head = buildInfoVersion(info)
		}
	}

	return formatVersion(tag, GitPatch, GitBranch, head)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Version: %s\n", VersionToString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
