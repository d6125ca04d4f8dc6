package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackslip/stackslip/internal/model"
	"github.com/stackslip/stackslip/internal/render"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect profile data without the receipt dressing",
	Long: `Direct access to the profile API: resolved records, raw
name-search candidate lists, and top tags.`,
}

// ─── user get ─────────────────────────────────────────────────────────────────

var userGetCmd = &cobra.Command{
	Use:   "get <user-id|display-name>",
	Short: "Resolve a user and print the normalized profile record",
	Example: `  stackslip user get 22656
  stackslip user get "Jon Skeet"
  stackslip user get 22656 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return errors.New("user id or display name must not be empty")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		start := time.Now()
		rec, err := deps.Client.ResolveProfile(cmd.Context(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}

		result := &model.Result{
			Kind:        model.KindProfile,
			GeneratedAt: time.Now(),
			Command:     fmt.Sprintf("user get %s", args[0]),
			Data:        rec,
			Stats: model.ResultStats{
				DurationMs: time.Since(start).Milliseconds(),
				Items:      1,
			},
		}
		if err := render.RenderTo(globalFlags.Out, result, resolveFormat(deps.Config.Format)); err != nil {
			return err
		}
		render.PrintFooter(cmd.OutOrStdout(), result, deps.Config.Verbose)
		return nil
	},
}

// ─── user search ──────────────────────────────────────────────────────────────

var userSearchCmd = &cobra.Command{
	Use:   "search <display-name>",
	Short: "List name-search candidates in the site's own ranking order",
	Example: `  stackslip user search jon
  stackslip user search "skeet" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return errors.New("search text must not be empty")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		start := time.Now()
		users, err := deps.Client.SearchUsers(cmd.Context(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}

		result := &model.Result{
			Kind:        model.KindSearchResult,
			GeneratedAt: time.Now(),
			Command:     fmt.Sprintf("user search %q", args[0]),
			Data:        &model.SearchResult{Query: args[0], Users: users},
			Stats: model.ResultStats{
				DurationMs: time.Since(start).Milliseconds(),
				Items:      len(users),
			},
		}
		if err := render.RenderTo(globalFlags.Out, result, resolveFormat(deps.Config.Format)); err != nil {
			return err
		}
		render.PrintFooter(cmd.OutOrStdout(), result, deps.Config.Verbose)
		return nil
	},
}

// ─── user tags ────────────────────────────────────────────────────────────────

var userTagsCmd = &cobra.Command{
	Use:   "tags <user-id|display-name>",
	Short: "Print a user's five most popular tags",
	Example: `  stackslip user tags 22656
  stackslip user tags "Jon Skeet"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return errors.New("user id or display name must not be empty")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		query := strings.TrimSpace(args[0])
		start := time.Now()

		userID, err := strconv.Atoi(query)
		if err != nil {
			// Not numeric: resolve the display name first.
			rec, rerr := deps.Client.ResolveProfile(cmd.Context(), query)
			if rerr != nil {
				return rerr
			}
			userID = rec.UserID
		}

		tags := deps.Client.FetchTags(cmd.Context(), userID)
		result := &model.Result{
			Kind:        model.KindTags,
			GeneratedAt: time.Now(),
			Command:     fmt.Sprintf("user tags %s", args[0]),
			Data:        tags,
			Stats: model.ResultStats{
				DurationMs: time.Since(start).Milliseconds(),
				Items:      len(tags),
			},
		}
		if err := render.RenderTo(globalFlags.Out, result, resolveFormat(deps.Config.Format)); err != nil {
			return err
		}
		render.PrintFooter(cmd.OutOrStdout(), result, deps.Config.Verbose)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userSearchCmd)
	userCmd.AddCommand(userTagsCmd)
}
