package cli

import (
	"fmt"
	"sort"
	"strings"

	"team-formation/internal/app"
	"team-formation/internal/database/seeder"
	"team-formation/internal/domain/assignment"
	"team-formation/internal/domain/graph"
	"team-formation/internal/domain/matching"
	"team-formation/internal/domain/project"
	"team-formation/internal/usecase"

	"github.com/spf13/cobra"
)

func newRecommendCommand(o *options) *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "recommend <project-id>",
		Short: "Recommend a team for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := graph.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				rec, err := c.Teams.RecommendTeam(cmd.Context(), args[0], algo)
				if err != nil {
					return err
				}
				if o.jsonOut {
					return o.printJSON(cmd.OutOrStdout(), rec)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "project %s (%s): %d/%d members\n", rec.ProjectID, rec.Algorithm, len(rec.Team), rec.RequiredSize)
				for _, m := range rec.Team {
					fmt.Fprintf(out, "  %s\t%s\tmatching=%d\n", m.ID, m.Name, m.MatchingSkills)
				}
				if !rec.Complete {
					fmt.Fprintln(out, "  team is incomplete")
				}
				fmt.Fprintf(out, "clique score: %s\n", assignment.FormatScore(rec.Score.CliqueScore))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(graph.AlgorithmDFS), "traversal algorithm: dfs or bfs")
	return cmd
}

func newScoreCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score <project-id> <employee-id>...",
		Short: "Score a candidate team against a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				score, err := c.Teams.ScoreTeam(cmd.Context(), args[0], args[1:])
				if err != nil {
					return err
				}
				if o.jsonOut {
					return o.printJSON(cmd.OutOrStdout(), score)
				}
				out := cmd.OutOrStdout()
				ids := make([]string, 0, len(score.PerMember))
				for id := range score.PerMember {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(out, "member %s\t%s\n", id, assignment.FormatScore(score.PerMember[id]))
				}
				for _, p := range score.Pairs {
					fmt.Fprintf(out, "pair %s\t%s\n", matching.PairKey(p.A, p.B), assignment.FormatScore(p.Score))
				}
				fmt.Fprintf(out, "clique score: %s\n", assignment.FormatScore(score.CliqueScore))
				return nil
			})
		},
	}
}

func newCompareCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <project-id>",
		Short: "Run dfs and bfs selection side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				cmp, err := c.Teams.CompareAlgorithms(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if o.jsonOut {
					return o.printJSON(cmd.OutOrStdout(), cmp)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cmp.String())
				return nil
			})
		},
	}
}

func newCommitCommand(o *options) *cobra.Command {
	var cliqueScore float64
	cmd := &cobra.Command{
		Use:   "commit <project-id> <employee-id>...",
		Short: "Persist a team and start the project",
		Long:  "Persist a team and start the project. Without --clique-score the team is scored first.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				in := usecase.CommitTeamInput{ProjectID: args[0], Team: args[1:], CliqueScore: cliqueScore}
				if !cmd.Flags().Changed("clique-score") {
					score, err := c.Teams.ScoreTeam(cmd.Context(), args[0], args[1:])
					if err != nil {
						return err
					}
					in.CliqueScore = score.CliqueScore
				}
				saved, err := c.Teams.CommitTeam(cmd.Context(), in)
				if err != nil {
					return err
				}
				if o.jsonOut {
					return o.printJSON(cmd.OutOrStdout(), saved)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "committed %s: %s -> %s (score %s)\n",
					saved.ID, strings.Join(saved.Members, ","), saved.ProjectID, assignment.FormatScore(saved.CliqueScore))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&cliqueScore, "clique-score", 0, "clique score to store instead of the computed one")
	return cmd
}

func newStatusCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id> <not_started|on_going|completed>",
		Short: "Move a project through its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, ok := project.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("%w: %q", project.ErrUnknownStatus, args[1])
			}
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				p, err := c.Lifecycle.TransitionProjectStatus(cmd.Context(), args[0], to)
				if err != nil {
					return err
				}
				if o.jsonOut {
					return o.printJSON(cmd.OutOrStdout(), p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "project %s is now %s\n", p.ID, p.Status)
				return nil
			})
		},
	}
}

func newSeedCommand(o *options) *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture into the record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				f   seeder.Fixture
				err error
			)
			if fixturePath == "" {
				f, err = seeder.DefaultFixture()
			} else {
				f, err = seeder.LoadFixtureFile(fixturePath)
			}
			if err != nil {
				return err
			}
			return o.withContainer(cmd.Context(), func(c *app.Container) error {
				r := seeder.Runner{Seeders: seeder.Defaults(f), Log: o.log.Named("seeder")}
				n, err := r.Run(cmd.Context(), c.Records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "fixture file (default is the built-in sample data)")
	return cmd
}
