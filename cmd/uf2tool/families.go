// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/devboard/uf2tool/uf2"
)

func familiesCmd() *cli.Command {
	return &cli.Command{
		Name:  "families",
		Usage: "list known UF2 family IDs",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			for _, f := range uf2.Families() {
				fmt.Fprintf(w, "%s\t%#010x\t%s\n", f.Name, f.ID, f.Description)
			}
			return w.Flush()
		},
	}
}
