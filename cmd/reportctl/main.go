package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Render back-office reports offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewRenderCmd())

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("reportctl failed")
		os.Exit(1)
	}
}
