// SPDX-License-Identifier: EPL-2.0

// Command kwsprep prepares keyword-spotting datasets.
package main

import "github.com/Nannigalaxy/audio-preprocessing/internal/cli"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
