package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jsbundle/esmbundle/internal/bundlererr"
	"github.com/jsbundle/esmbundle/internal/logger"
	"github.com/jsbundle/esmbundle/pkg/bundler"
)

var buildCmd = &cobra.Command{
	Use:   "build <entry>",
	Short: "Bundle the module graph reachable from <entry>",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("outfile", "o", "", "write the bundle here instead of stdout")
}

func runBuild(cmd *cobra.Command, args []string) error {
	entry := args[0]
	outfile, err := cmd.Flags().GetString("outfile")
	if err != nil {
		return err
	}

	useColor := !viper.GetBool("noColor") && !color.NoColor
	diagnostics := logger.New(logger.LevelWarning, useColor)

	script, err := bundler.Bundle(entry)
	if err != nil {
		reportBundleError(diagnostics, err)
		return errors.New("bundle failed")
	}

	if outfile == "" {
		fmt.Print(script.Text)
		return nil
	}
	return os.WriteFile(outfile, []byte(script.Text), 0o644)
}

// reportBundleError unwraps a bundlererr.Error (if that's what failed) into
// a located diagnostic; anything else is reported as a bare message.
func reportBundleError(diagnostics *logger.Log, err error) {
	var be *bundlererr.Error
	if errors.As(err, &be) {
		diagnostics.AddError(be.Location, be.Referrer, be.Cause.Error())
		return
	}
	diagnostics.AddMsg(logger.Msg{Kind: logger.Error, Text: err.Error()})
}
