package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-home-api/internal/models"
	"github.com/noah-isme/course-home-api/internal/service"
)

type tokenResult struct {
	Token     string `json:"token" yaml:"token"`
	UserID    string `json:"user_id" yaml:"user_id"`
	Role      string `json:"role" yaml:"role"`
	ExpiresAt string `json:"expires_at" yaml:"expires_at"`
}

func newTokenCmd(opts *Options) *cobra.Command {
	var (
		userID string
		role   string
		email  string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole := models.UserRole(strings.ToUpper(strings.TrimSpace(role)))
			switch parsedRole {
			case models.RoleSuperAdmin, models.RoleStaff, models.RoleInstructor, models.RoleLearner:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			cfg, err := opts.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			auth := service.NewAuthService(zap.NewNop(), service.AuthConfig{
				AccessTokenSecret: cfg.JWT.Secret,
				AccessTokenExpiry: cfg.JWT.Expiration,
				Issuer:            cfg.JWT.Issuer,
			})
			token, expires, err := auth.IssueAccessToken(userID, parsedRole, email)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.outputFormat, tokenResult{
				Token:     token,
				UserID:    userID,
				Role:      string(parsedRole),
				ExpiresAt: expires.UTC().Format(time.RFC3339),
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the token")
	cmd.Flags().StringVar(&role, "role", string(models.RoleLearner), "SUPERADMIN, STAFF, INSTRUCTOR or LEARNER")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
