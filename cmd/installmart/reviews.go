package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/review"
)

func reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write reviews of installment plans",
		Long: `Read the reviews of an installment plan, or write, edit and delete your own.
Writing requires you to be logged in.`,
	}

	cmd.AddCommand(reviewsListCmd())
	cmd.AddCommand(reviewsAddCmd())
	cmd.AddCommand(reviewsEditCmd())
	cmd.AddCommand(reviewsDeleteCmd())
	cmd.AddCommand(reviewsHelpfulCmd())

	return cmd
}

func reviewsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <plan-id>",
		Short: "List the reviews of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				if userID == "" {
					userID = savedUser(ctx, e)
				}
				stop := loading(cmd, "Loading reviews")
				reviews, err := review.New(e.client).List(ctx, args[0])
				stop()
				if err != nil {
					return err
				}
				writeReviews(cmd.OutOrStdout(), reviews, userID)
				return nil
			})
		},
	}
	cmd.Flags().String("user", "", "your user ID, to mark your own review (default: from the saved token)")
	return cmd
}

func writeReviews(out io.Writer, reviews []model.Review, userID string) {
	writeReviewSummary(out, review.Summarize(reviews))
	if len(reviews) == 0 {
		return
	}

	if mine := review.FindByUser(reviews, userID); mine != nil {
		fmt.Fprintln(out, cli.FormatInfo("Your review: "+mine.ID))
	}
	fmt.Fprintln(out)

	for i := range reviews {
		r := &reviews[i]
		author := orDash(r.UserName)
		if userID != "" && r.UserID == userID {
			author += " (you)"
		}
		fmt.Fprintf(out, "%s  %s  %s\n", cli.FormatStars(r.Rating), cli.BoldStyle.Render(author), cli.SubtleStyle.Render(r.ID))
		if c := strings.TrimSpace(r.Comment); c != "" {
			fmt.Fprintf(out, "  %s\n", c)
		}
		meta := fmt.Sprintf("  %d found this helpful", r.HelpfulCount())
		if userID != "" && r.IsHelpfulFor(userID) {
			meta += ", including you"
		}
		if !r.CreatedAt.IsZero() {
			meta += " · " + r.CreatedAt.Local().Format("2006-01-02")
		}
		fmt.Fprintln(out, cli.SubtleStyle.Render(meta))
	}
}

func writeReviewSummary(out io.Writer, s model.ReviewSummary) {
	fmt.Fprintln(out)
	if s.Count == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No reviews yet."))
		return
	}
	fmt.Fprintf(out, "%s %.1f from %d reviews\n", cli.FormatStars(int(s.Average+0.5)), s.Average, s.Count)
	for stars := model.MaxRating; stars >= model.MinRating; stars-- {
		fmt.Fprintf(out, "  %d %s %d\n", stars, cli.StarIcon, s.Distribution[stars])
	}
}

func reviewInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("rating", "r", 0, "rating from 1 to 5 (required)")
	cmd.Flags().StringP("comment", "m", "", "review text")
	_ = cmd.MarkFlagRequired("rating")
}

func reviewInput(cmd *cobra.Command, planID string) (model.ReviewInput, error) {
	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")
	if err := review.ValidateRating(rating); err != nil {
		return model.ReviewInput{}, common.NewUserError("Invalid rating", err)
	}
	return model.ReviewInput{PlanID: planID, Rating: rating, Comment: strings.TrimSpace(comment)}, nil
}

func reviewsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <plan-id>",
		Short: "Review a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := reviewInput(cmd, args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				result, err := review.New(e.client).Create(ctx, input)
				if err != nil {
					return err
				}
				writeSubmitResult(cmd.OutOrStdout(), result, "Review posted")
				return nil
			})
		},
	}
	reviewInputFlags(cmd)
	return cmd
}

func reviewsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <review-id>",
		Short: "Edit your review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, _ := cmd.Flags().GetString("plan")
			input, err := reviewInput(cmd, planID)
			if err != nil {
				return err
			}
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				result, err := review.New(e.client).Update(ctx, args[0], input)
				if err != nil {
					return err
				}
				writeSubmitResult(cmd.OutOrStdout(), result, "Review updated")
				return nil
			})
		},
	}
	reviewInputFlags(cmd)
	cmd.Flags().String("plan", "", "plan the review belongs to")
	return cmd
}

func reviewsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete your review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				out := cmd.OutOrStdout()
				if !force {
					reader := cli.NewNonBlockingReader(cmd.InOrStdin())
					ok, err := reader.Confirm(ctx, out, fmt.Sprintf("Delete review %s?", args[0]))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Operation canceled.")
						return nil
					}
				}
				result, err := review.New(e.client).Delete(ctx, args[0])
				if err != nil {
					return err
				}
				writeSubmitResult(out, result, "Review deleted")
				return nil
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	return cmd
}

func reviewsHelpfulCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "helpful <review-id>",
		Short: "Mark or unmark a review as helpful",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				result, err := review.New(e.client).ToggleHelpful(ctx, args[0])
				if err != nil {
					return err
				}
				writeSubmitResult(cmd.OutOrStdout(), result, "Thanks for your feedback")
				return nil
			})
		},
	}
}
