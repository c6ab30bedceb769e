package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-home-api/internal/repository"
	"github.com/noah-isme/course-home-api/internal/service"
	"github.com/noah-isme/course-home-api/pkg/cache"
)

type purgeResult struct {
	Scope  string   `json:"scope" yaml:"scope"`
	Keys   []string `json:"keys" yaml:"keys"`
	Purged bool     `json:"purged" yaml:"purged"`
}

type purger interface {
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Close() error
}

func newPurgeCacheCmd(opts *Options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "purge-cache [courseId]",
		Short: "Drop cached course records and outlines",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) == 0 {
				return nil
			}
			if !all && len(args) == 1 {
				return nil
			}
			return fmt.Errorf("pass exactly one course id, or --all without arguments")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client, err := cache.NewRedis(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			repo := repository.NewCacheRepository(client, repository.CachePrefix)
			defer repo.Close() //nolint:errcheck

			result, err := purge(ctx, repo, args, all)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.outputFormat, result)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "purge every cached course")
	return cmd
}

func purge(ctx context.Context, repo purger, args []string, all bool) (purgeResult, error) {
	if all {
		patterns := []string{service.CourseKey("*"), "outline:*"}
		for _, pattern := range patterns {
			if err := repo.DeleteByPattern(ctx, pattern); err != nil {
				return purgeResult{}, err
			}
		}
		return purgeResult{Scope: "all", Keys: patterns, Purged: true}, nil
	}
	courseID := args[0]
	keys := []string{service.CourseKey(courseID), service.OutlineKey(courseID)}
	for _, key := range keys {
		if err := repo.Delete(ctx, key); err != nil {
			return purgeResult{}, err
		}
	}
	return purgeResult{Scope: courseID, Keys: keys, Purged: true}, nil
}
