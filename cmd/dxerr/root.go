/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/config"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/expected"
	"dirpx.dev/dxerrors/internal/logger"
	"dirpx.dev/dxerrors/present"
	"dirpx.dev/dxerrors/status"
)

type app struct {
	cfg      config.Config
	log      zerolog.Logger
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dxerr",
		Short:         "Decode and present database backend errors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = a.logLevel
			}
			a.log = logger.NewConsole(level, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides DX_LOG_LEVEL)")

	root.AddCommand(a.decodeCmd(), a.presentCmd(), a.retryableCmd(), a.expectedCmd())
	return root
}

func (a *app) decodeCmd() *cobra.Command {
	var backendCode string
	cmd := &cobra.Command{
		Use:   "decode [message]",
		Short: "Decode a backend error message into its inner errors (JSON)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.input(cmd, args, backendCode)
			if err != nil {
				return err
			}
			res := decode.DecodeDetailed(in)
			ev := a.log.Debug().Str("flavor", res.Flavor.String())
			if res.Cause != nil {
				ev = ev.AnErr("cause", res.Cause)
			}
			ev.Msg("decoded")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Records)
		},
	}
	cmd.Flags().StringVarP(&backendCode, "code", "c", "", "backend code attached to the message")
	return cmd
}

func (a *app) presentCmd() *cobra.Command {
	var (
		backendCode string
		internal    bool
		httpStatus  int
	)
	cmd := &cobra.Command{
		Use:   "present [message]",
		Short: "Print the user-facing message for a backend error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.input(cmd, args, backendCode)
			if err != nil {
				return err
			}
			ctx := present.Context{IsInternalSubscription: internal || a.cfg.InternalSubscription}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, present.Records(decode.Decode(in), ctx))
			if present.ShouldNotify(httpStatus, rawText(in)) {
				fmt.Fprintln(out, "notify: ForbiddenError")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&backendCode, "code", "c", "", "backend code attached to the message")
	cmd.Flags().BoolVar(&internal, "internal", false, "present for an internal subscription")
	cmd.Flags().IntVarP(&httpStatus, "status", "s", 0, "HTTP status of the failed call")
	return cmd
}

func (a *app) retryableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retryable <status>...",
		Short: "Classify HTTP statuses as retryable or fatal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return fmt.Errorf("invalid status %q: %w", s, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", n, status.Classify(n))
			}
			return nil
		},
	}
}

func (a *app) expectedCmd() *cobra.Command {
	var (
		backendCode string
		authCode    string
		httpStatus  int
	)
	cmd := &cobra.Command{
		Use:   "expected [message]",
		Short: "Report whether a failure is an expected (user-caused) one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := ""
			if len(args) == 1 {
				msg = args[0]
			}
			c, err := parseCode(backendCode)
			if err != nil {
				return err
			}
			sig := expected.Signal{Code: c, AuthCode: authCode, Status: httpStatus, Message: msg}
			fmt.Fprintln(cmd.OutOrStdout(), expected.IsExpected(sig))
			return nil
		},
	}
	cmd.Flags().StringVarP(&backendCode, "code", "c", "", "backend code")
	cmd.Flags().StringVar(&authCode, "auth-code", "", "authentication library error code")
	cmd.Flags().IntVarP(&httpStatus, "status", "s", 0, "HTTP status of the failed call")
	return cmd
}

// input reads the message from the argument or, when absent, from stdin.
// Without a code the text is decoded as a plain string.
func (a *app) input(cmd *cobra.Command, args []string, backendCode string) (decode.Input, error) {
	var msg string
	if len(args) == 1 {
		msg = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		msg = strings.TrimRight(string(b), "\r\n")
	}

	c, err := parseCode(backendCode)
	if err != nil {
		return nil, err
	}
	if c == code.Empty {
		return decode.String(msg), nil
	}
	return decode.SDK{Message: msg, Code: c}, nil
}

// parseCode accepts a blank flag as "no code".
func parseCode(s string) (code.Code, error) {
	if strings.TrimSpace(s) == "" {
		return code.Empty, nil
	}
	return code.Parse(s)
}

func rawText(in decode.Input) string {
	switch v := in.(type) {
	case decode.String:
		return string(v)
	case decode.SDK:
		return v.Message
	}
	return ""
}
