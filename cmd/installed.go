package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// installedMessage is printed by "installed"; no local registry exists yet
const installedMessage = "no rootfses installed"

func (o *rootOptions) runInstalled(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), installedMessage)
	return nil
}
