// swatch - dominant colour palette extraction
//
// swatch samples an image, clusters its pixels with k-means and prints the
// dominant colours with hex, RGB and CMYK encodings.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
