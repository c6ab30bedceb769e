package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-home-api/internal/models"
	"github.com/noah-isme/course-home-api/internal/service"
)

type chatVisibilityResult struct {
	Mode    string  `json:"mode" yaml:"mode"`
	Paid    bool    `json:"paid" yaml:"paid"`
	Staff   bool    `json:"staff" yaml:"staff"`
	Enabled bool    `json:"enabled" yaml:"enabled"`
	EndDate *string `json:"end_date" yaml:"end_date"`
	Now     string  `json:"now" yaml:"now"`
	Visible bool    `json:"visible" yaml:"visible"`
}

func newChatVisibilityCmd(opts *Options) *cobra.Command {
	var (
		mode    string
		staff   bool
		enabled bool
		endDate string
		now     string
	)
	cmd := &cobra.Command{
		Use:   "chat-visibility",
		Short: "Evaluate learning assistant visibility",
		Example: `  coursehome-cli chat-visibility --mode verified --enabled --end-date 2030-01-01T00:00:00Z
  coursehome-cli chat-visibility --mode audit --staff --enabled -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := opts.Now()
			if now != "" {
				parsed, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				at = parsed
			}
			var end *time.Time
			if endDate != "" {
				parsed, err := time.Parse(time.RFC3339, endDate)
				if err != nil {
					return fmt.Errorf("invalid --end-date: %w", err)
				}
				end = &parsed
			}

			parsedMode := models.ParseEnrollmentMode(mode)
			visible := service.IsChatVisible(service.ChatVisibilityInput{
				EnrollmentMode: parsedMode,
				IsStaff:        staff,
				Enabled:        enabled,
				EndDate:        end,
				Now:            at,
			})

			result := chatVisibilityResult{
				Mode:    mode,
				Paid:    parsedMode.IsPaid(),
				Staff:   staff,
				Enabled: enabled,
				Now:     at.UTC().Format(time.RFC3339),
				Visible: visible,
			}
			if end != nil {
				formatted := end.UTC().Format(time.RFC3339)
				result.EndDate = &formatted
			}
			return printOutput(cmd.OutOrStdout(), opts.outputFormat, result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "enrollment mode (empty when not enrolled)")
	cmd.Flags().BoolVar(&staff, "staff", false, "viewer is staff")
	cmd.Flags().BoolVar(&enabled, "enabled", false, "learning assistant feature flag")
	cmd.Flags().StringVar(&endDate, "end-date", "", "course end date (RFC3339); empty for no end")
	cmd.Flags().StringVar(&now, "now", "", "evaluation time (RFC3339); defaults to the current time")
	return cmd
}

type outlineAlertResult struct {
	Enrolled  bool   `json:"enrolled" yaml:"enrolled"`
	Staff     bool   `json:"staff" yaml:"staff"`
	Kind      string `json:"kind" yaml:"kind"`
	Severity  string `json:"severity,omitempty" yaml:"severity,omitempty"`
	CanEnroll bool   `json:"can_enroll" yaml:"can_enroll"`
}

func newOutlineAlertCmd(opts *Options) *cobra.Command {
	var input service.OutlineAlertInput
	cmd := &cobra.Command{
		Use:   "outline-alert",
		Short: "Select the outline enrollment alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			alert := service.SelectEnrollmentAlert(input)
			kind := string(alert.Kind)
			if !alert.Shown() {
				kind = "none"
			}
			return printOutput(cmd.OutOrStdout(), opts.outputFormat, outlineAlertResult{
				Enrolled:  input.IsEnrolled,
				Staff:     input.IsStaff,
				Kind:      kind,
				Severity:  string(alert.Severity),
				CanEnroll: alert.CanEnroll,
			})
		},
	}
	cmd.Flags().BoolVar(&input.IsEnrolled, "enrolled", false, "viewer is enrolled")
	cmd.Flags().BoolVar(&input.IsStaff, "staff", false, "viewer is staff")
	cmd.Flags().BoolVar(&input.CanEnroll, "can-enroll", false, "self-enrollment is open")
	return cmd
}
