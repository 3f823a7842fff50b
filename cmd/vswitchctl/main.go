/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package main

import "github.com/wind-river/cloud-platform-vswitch-resolver/cmd/vswitchctl/cmd"

func main() {
	cmd.Execute()
}
