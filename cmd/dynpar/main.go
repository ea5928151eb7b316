// Copyright 2026 dynpar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dynpar reads a param(...) block specification and prints the full
// source of a function with conditionally present parameters.
//
// Usage:
//
//	dynpar -i spec.psd1 -n Test-Connect                  # powershell function to stdout
//	dynpar -i spec.psd1 -t go -o generated.go --check    # go function, compile-checked
//	dynpar -i spec.psd1 --clip                           # copy the result to the clipboard
//
// Warnings about degraded input (untyped parameters, reserved-name
// collisions, malformed conditions) are logged to stderr; they never change
// the exit status or suppress the generated output.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TobiasPSP/Modules.dynpar/dynpar"
)

var (
	inputFile    string
	functionName string
	targetName   string
	outputFile   string
	toClipboard  bool
	check        bool
	verbose      bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dynpar",
		Short:         "Generate a function with conditionally present parameters",
		Long:          "dynpar compiles a declarative param(...) block into the full source of a\nfunction whose annotated parameters are registered only when their binding\ncondition holds at call time.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file containing the param(...) block (required)")
	cmd.Flags().StringVarP(&functionName, "name", "n", "", "generated function name (target default when empty)")
	cmd.Flags().StringVarP(&targetName, "target", "t", "powershell",
		"output language ("+strings.Join(dynpar.AvailableTargets(), ", ")+")")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVar(&toClipboard, "clip", false, "copy the generated source to the clipboard")
	cmd.Flags().BoolVar(&check, "check", false, "go target only: compile the result in-process and fail on error")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	data, err := os.ReadFile(inputFile)
	if err != nil {
		logger.Error("read input", zap.Error(err))
		return err
	}

	res, err := dynpar.Generate(string(data), dynpar.Options{
		FunctionName: functionName,
		Target:       targetName,
	})
	if err != nil {
		logger.Error("generate", zap.Error(err))
		return err
	}
	logger.Debug("generated",
		zap.String("function", res.FunctionName),
		zap.String("target", targetName),
		zap.Int("warnings", len(res.Diagnostics)))

	for _, d := range res.Diagnostics {
		logger.Warn(d.Message,
			zap.String("code", string(d.Code)),
			zap.String("parameter", d.Parameter))
	}

	if check {
		if !strings.EqualFold(targetName, "go") {
			return fmt.Errorf("--check requires -t go")
		}
		if _, err := dynpar.Load(res.Source, res.FunctionName); err != nil {
			logger.Error("check", zap.Error(err))
			return err
		}
		logger.Debug("check passed", zap.String("function", res.FunctionName))
	}

	if toClipboard {
		if err := clipboard.WriteAll(res.Source); err != nil {
			logger.Error("copy to clipboard", zap.Error(err))
			return err
		}
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(res.Source), 0o644)
	}
	fmt.Print(res.Source)
	return nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
