// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"os"

	"github.com/outpost-sec/warden/internal/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:]))
}
