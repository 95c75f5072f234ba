package main

import (
	"encoding/json"
	"fmt"

	"beacon/pkg/onboarding"

	"github.com/spf13/cobra"
)

func newOnboardingCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Inspect or change the saved setup progress",
		Long: `Read and modify the onboarding state without starting the dashboard.

The state lives under the "analytics-onboarding" key of the configured
storage backend, so changes are picked up by a running dashboard that
watches the storage file.`,
	}

	cmd.AddCommand(
		newOnboardingStatusCmd(opts),
		newOnboardingMutateCmd(opts, "complete", "Mark setup as finished", func(s *onboarding.Store) error {
			return s.Complete()
		}),
		newOnboardingMutateCmd(opts, "reset", "Clear setup progress and lock the analytics pages", func(s *onboarding.Store) error {
			return s.Reset()
		}),
		newOnboardingCompleteStepCmd(opts),
	)
	return cmd
}

func newOnboardingStatusCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show setup progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			state := rt.store.State()
			if !asJSON {
				return printStatus(cmd.OutOrStdout(), state)
			}

			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON value")
	return cmd
}

func newOnboardingMutateCmd(opts *options, use, short string, mutate func(*onboarding.Store) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := mutate(rt.store); err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), rt.store.State())
		},
	}
}

func newOnboardingCompleteStepCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete-step <id>",
		Short: "Record a single completed setup step",
		Long: `Append a step id to the completed step log.

Known steps: connect-store, setup-tracking, configure-goals, verify-data.
Recording steps never unlocks the analytics pages; use "complete" for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := onboarding.StepID(args[0])
			if !onboarding.IsCanonical(id) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is not a known setup step\n", id)
			}

			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.CompleteStep(id); err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), rt.store.State())
		},
	}
}
